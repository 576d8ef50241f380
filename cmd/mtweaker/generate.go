package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/pkg/tweaker"
)

type generateOptions struct {
	names  []string // scripts to build; empty means all
	outDir string
	dryRun bool
}

// generate builds the selected scripts and materializes them under
// opts.outDir, or prints them to w on a dry run. Scripts are processed in
// document order and the first failure stops the run.
func generate(doc recipe.Document, opts generateOptions, w io.Writer, logger *slog.Logger) error {
	defs, err := selectScripts(doc, opts.names)
	if err != nil {
		return err
	}
	for _, def := range defs {
		s := tweaker.NewScript(filepath.Join(opts.outDir, def.Name), tweaker.WithNotifier(createdNotice(w)))
		if err := recipe.Apply(def, s, logger); err != nil {
			return err
		}
		if opts.dryRun {
			dryRunScript(w, def, s)
			continue
		}
		if dir := filepath.Dir(s.Path()); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := s.Materialize(); err != nil {
			return err
		}
		logger.Debug("materialized script", "script", def.Name, "path", s.Path(), "lines", s.Len())
	}
	return nil
}

// selectScripts returns the named scripts in the order given, or every
// script when names is empty.
func selectScripts(doc recipe.Document, names []string) ([]recipe.ScriptDef, error) {
	if len(names) == 0 {
		return doc.Scripts, nil
	}
	defs := make([]recipe.ScriptDef, 0, len(names))
	for _, name := range names {
		def, ok := doc.Find(name)
		if !ok {
			return nil, fmt.Errorf("script %q not found\navailable: %s", name, strings.Join(doc.Names(), ", "))
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// dryRunScript prints the script that would be written.
func dryRunScript(w io.Writer, def recipe.ScriptDef, s *tweaker.Script) {
	fmt.Fprintf(w, "%s script %q → %s\n", styleDryRun.Render("[dry-run]"), def.Name, stylePath.Render(s.Path()))
	if def.Source != "" {
		fmt.Fprintf(w, "%s\n", styleDim.Render("  source: "+def.Source))
	}
	fmt.Fprintln(w, s.Render())
	fmt.Fprintln(w)
}
