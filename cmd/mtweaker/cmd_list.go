package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/pkg/tweaker"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagNoTUI bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts defined in the loaded recipe files",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(flagLogLevel, flagLogFormat, os.Stderr)
		if err != nil {
			return err
		}
		doc, manifest, err := load(flagFiles, flagPick, logger)
		if err != nil {
			return err
		}
		entries, err := collectScripts(doc, manifest.outputDir())
		if err != nil {
			return err
		}
		if flagNoTUI {
			printScripts(cmd.OutOrStdout(), entries)
			return nil
		}
		_, err = tea.NewProgram(newListModel(entries), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagNoTUI, "no-tui", false, "plain text output without the interactive table")
}

// scriptEntry is one row of the list: a built script and where it came from.
type scriptEntry struct {
	name       string
	statements int // recipe statements; header and imports excluded
	path       string
	source     string
	script     *tweaker.Script
}

// collectScripts builds every script in memory so the list shows exactly
// what would be written.
func collectScripts(doc recipe.Document, outDir string) ([]scriptEntry, error) {
	entries := make([]scriptEntry, 0, len(doc.Scripts))
	for _, def := range doc.Scripts {
		s, err := recipe.Build(def, discardLogger, tweaker.WithNotifier(nil))
		if err != nil {
			return nil, err
		}
		entries = append(entries, scriptEntry{
			name:       def.Name,
			statements: len(def.Statements),
			path:       filepath.Join(outDir, s.Path()),
			source:     def.Source,
			script:     s,
		})
	}
	return entries, nil
}

// printScripts prints all entries aligned.
func printScripts(w io.Writer, entries []scriptEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no scripts found")
		return
	}
	nameLen, pathLen := len("SCRIPT"), len("OUTPUT")
	for _, e := range entries {
		nameLen = max(nameLen, len(e.name))
		pathLen = max(pathLen, len(e.path))
	}
	fmt.Fprintf(w, "%-*s  %-10s  %-*s  %s\n", nameLen, "SCRIPT", "STATEMENTS", pathLen, "OUTPUT", "SOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %-10d  %-*s  %s\n", nameLen, e.name, e.statements, pathLen, e.path, e.source)
	}
}

// ---- interactive table -----------------------------------------------------

type listState int

const (
	stateTable listState = iota
	statePreview
)

var stylePreview = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("214")).
	Padding(0, 1).
	MarginLeft(2)

type listModel struct {
	table   table.Model
	entries []scriptEntry
	state   listState
}

func newListModel(entries []scriptEntry) listModel {
	columns := []table.Column{
		{Title: "SCRIPT", Width: 24},
		{Title: "STATEMENTS", Width: 10},
		{Title: "OUTPUT", Width: 32},
		{Title: "SOURCE", Width: 32},
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{e.name, strconv.Itoa(e.statements), e.path, e.source}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return listModel{table: t, entries: entries, state: stateTable}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.state == stateTable && len(m.entries) > 0 {
				m.state = statePreview
			} else {
				m.state = stateTable
			}
			return m, nil
		case "esc":
			m.state = stateTable
			return m, nil
		}
	}
	if m.state == statePreview {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	title := styleTitle.Render(strings.ToUpper(appName) + " · scripts")
	tableView := styleBase.Render(m.table.View())

	if m.state == statePreview {
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.entries) {
			e := m.entries[idx]
			preview := stylePreview.Render(stylePath.Render(e.path) + "\n\n" + e.script.Render())
			help := styleHelp.Render("enter / esc  back    q  quit")
			return title + "\n" + preview + "\n" + help
		}
	}

	help := styleHelp.Render("↑/↓  navigate    enter  preview    q  quit")
	if len(m.entries) == 0 {
		help = styleHelp.Render("No scripts.  q  quit")
	}
	return title + "\n" + tableView + "\n" + help
}
