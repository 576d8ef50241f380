package main

import (
	"strings"

	"mtweaker/pkg/lib"
)

var (
	flagFiles     []string
	flagOutDir    string
	flagDryRun    bool
	flagPick      bool
	flagLogLevel  string
	flagLogFormat string
)

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().StringArrayVarP(&flagFiles, "file", "f", nil,
		"recipe file, YAML or HCL (repeatable; default: ~/.config/"+appName+"/recipes/*)")
	rootCmd.PersistentFlags().BoolVar(&flagPick, "pick", false,
		"choose a single recipe file interactively")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text",
		"log format: text or json")
	rootCmd.Flags().StringVarP(&flagOutDir, "out-dir", "o", "",
		"directory the .zs scripts are written to (default: "+manifestName+" output.dir, else the working directory)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false,
		"print the generated scripts without writing anything")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		var hints []string
		if isEmptyInputError(err) {
			hints = append(hints, "\nhint: create a starter file with `"+appName+" init`, or print one with `"+appName+" example`")
		}
		lib.Exit(err, hints...)
	}
}

// isEmptyInputError reports whether the error means no recipe files were loaded.
func isEmptyInputError(err error) bool {
	return strings.Contains(err.Error(), "no recipe files found")
}
