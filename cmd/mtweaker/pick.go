package main

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
)

// pickRecipeFile uses go-fuzzyfinder to let the user select one recipe file
// interactively in the terminal.
func pickRecipeFile(files []string) (string, error) {
	if len(files) == 1 {
		return files[0], nil
	}
	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return files[i]
		},
		fuzzyfinder.WithPromptString("Select recipe file: "),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", fmt.Errorf("no recipe file selected")
	}
	if err != nil {
		return "", err
	}
	return files[idx], nil
}
