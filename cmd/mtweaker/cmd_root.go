package main

import (
	"log/slog"
	"os"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [script ...]",
	Short: "Generate MineTweaker scripts from recipe files",
	Long: "Generate MineTweaker (ZenScript) .zs files from YAML or HCL recipe files.\n\n" +
		"Every script defined in the loaded files is written to <out-dir>/<name>.zs.\n" +
		"Pass script names to build only those; names are auto-completable via shell completion (Tab).",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dynamicCompletion(args, toComplete)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(flagLogLevel, flagLogFormat, os.Stderr)
		if err != nil {
			return err
		}
		doc, manifest, err := load(flagFiles, flagPick, logger)
		if err != nil {
			return err
		}
		outDir := flagOutDir
		if outDir == "" {
			outDir = manifest.outputDir()
		}
		return generate(doc, generateOptions{
			names:  args,
			outDir: outDir,
			dryRun: flagDryRun,
		}, cmd.OutOrStdout(), logger)
	},
}

// load resolves the recipe files from every source, optionally narrows them
// to one picked interactively, and parses them into a single document.
func load(flagFiles []string, pick bool, logger *slog.Logger) (recipe.Document, *projectManifest, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return recipe.Document{}, nil, err
	}
	manifest, found, err := loadManifest(".")
	if err != nil {
		return recipe.Document{}, nil, err
	}
	if found {
		logger.Debug("using project manifest", "path", manifest.Path)
	}
	files, err := resolveRecipeFiles(configDir, manifest.recipeFiles(), flagFiles)
	if err != nil {
		return recipe.Document{}, nil, err
	}
	if pick && len(files) > 0 {
		picked, err := pickRecipeFile(files)
		if err != nil {
			return recipe.Document{}, nil, err
		}
		files = []string{picked}
	}
	doc, err := loadSources(files, logger)
	if err != nil {
		return recipe.Document{}, nil, err
	}
	return doc, manifest, nil
}

// dynamicCompletion suggests script names not yet present on the command line.
func dynamicCompletion(args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	doc, _, err := load(flagFiles, false, discardLogger)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return completeNames(doc, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeNames(doc recipe.Document, args []string, toComplete string) []string {
	used := map[string]bool{}
	for _, a := range args {
		used[a] = true
	}
	var suggestions []string
	for _, name := range doc.Names() {
		if !used[name] && strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions
}
