package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleOK = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	stylePath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	styleDryRun = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// createdNotice returns the notifier scripts run after being written.
func createdNotice(w io.Writer) func(path string) {
	return func(path string) {
		fmt.Fprintf(w, "%s %s! Have fun.\n", styleOK.Render("Created"), stylePath.Render(path))
	}
}
