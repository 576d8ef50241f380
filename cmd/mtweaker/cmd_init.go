package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

//go:embed examples/starter.yml
var starterYAML []byte

const initHeader = `# mtweaker recipes
# ─────────────────────────────────────────────────────────────────────────────
# Each file defines one or more scripts; each script becomes <name>.zs.
# Quick reference:  mtweaker example
# HCL reference:    mtweaker example --hcl
# ─────────────────────────────────────────────────────────────────────────────

`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter recipe file in the config directory",
	Long: "Create <config>/recipes/<name>.yml with a small working script.\n" +
		"Without --name the script name is asked for interactively.\n\n" +
		"The default config directory follows the same priority as the main command:\n" +
		"  $MTWEAKER_CONFIG_DIR > $XDG_CONFIG_HOME/mtweaker > ~/.config/mtweaker",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")
		name, _ := cmd.Flags().GetString("name")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}
		if name == "" {
			var err error
			name, err = promptScriptName()
			if err != nil {
				return err
			}
		}
		if err := validateScriptName(name); err != nil {
			return err
		}

		recipesDir := filepath.Join(dir, "recipes")
		if err := os.MkdirAll(recipesDir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", recipesDir, err)
		}

		path := filepath.Join(recipesDir, name+".yml")
		if err := writeInitFile(path, starterDocument(name), force); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		fmt.Fprintf(os.Stderr, "  %s\n", path)
		fmt.Fprintf(os.Stderr, "\nRun `%s --dry-run %s` to preview the script.\n", appName, name)
		return nil
	},
}

// starterDocument returns the starter recipe file for a script called name.
func starterDocument(name string) []byte {
	return []byte(initHeader + "name: " + strconv.Quote(name) + "\n" + string(starterYAML))
}

func validateScriptName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("script name must not be empty")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("script name %q must not contain path separators", name)
	case strings.HasSuffix(name, ".zs"):
		return fmt.Errorf("script name %q must not include the .zs extension", name)
	}
	return nil
}

func promptScriptName() (string, error) {
	var name string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Script name").
			Description("Written to <out-dir>/<name>.zs").
			Value(&name).
			Validate(validateScriptName),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func writeInitFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
	initCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
	initCmd.Flags().String("name", "", "script name (default: prompt)")
}
