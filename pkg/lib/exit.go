package lib

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var errorPrefix = color.New(color.FgRed, color.Bold)

// PrintError writes err to w behind a red "Error:" prefix, followed by any
// hint lines.
func PrintError(w io.Writer, err error, hints ...string) {
	fmt.Fprintln(w, errorPrefix.Sprint("Error:"), err.Error())
	for _, h := range hints {
		fmt.Fprintln(w, h)
	}
}

// Exit prints the error and exits the program with code 1
func Exit(err error, hints ...string) {
	PrintError(os.Stderr, err, hints...)
	os.Exit(1)
}
