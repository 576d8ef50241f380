package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/cmd/mtweaker/recipehcl"
	"mtweaker/cmd/mtweaker/recipeyaml"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "mtweaker"

// Env var names derived from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envRecipes   = strings.ToUpper(appName) + "_RECIPES"
)

// recipeExts are the file extensions recognised as recipe documents.
var recipeExts = []string{".yml", ".yaml", ".hcl"}

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveRecipeFiles returns all recipe files to load, in order:
// configDir/recipes/*, $MTWEAKER_RECIPES, manifest files, then --file flags.
// A file reached through more than one source is kept once, at its first
// position, so its scripts do not collide with themselves in Merge. Paths
// that do not exist are kept and fail at read time.
func resolveRecipeFiles(configDir string, manifestFiles, flagFiles []string) ([]string, error) {
	files, err := globRecipes(filepath.Join(configDir, "recipes"))
	if err != nil {
		return nil, err
	}
	files = append(files, splitColon(os.Getenv(envRecipes))...)
	files = append(files, manifestFiles...)
	files = append(files, flagFiles...)

	seen := make(map[string]bool, len(files))
	out := files[:0]
	for _, f := range files {
		key := filepath.Clean(f)
		if abs, err := filepath.Abs(f); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out, nil
}

// globRecipes returns the recipe files in dir, in directory order.
// Returns nil without error if dir does not exist.
func globRecipes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isRecipeFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func isRecipeFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range recipeExts {
		if ext == e {
			return true
		}
	}
	return false
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadSources reads and parses every file, then merges the documents in
// file order. Script names must be unique across all files.
func loadSources(files []string, logger *slog.Logger) (recipe.Document, error) {
	if len(files) == 0 {
		return recipe.Document{}, fmt.Errorf(
			"no recipe files found: add *.yml or *.hcl files to ~/.config/%s/recipes/, "+
				"set $%s, list them in %s, or use --file",
			appName, envRecipes, manifestName,
		)
	}

	docs := make([]recipe.Document, 0, len(files))
	for _, f := range files {
		doc, err := loadFile(f)
		if err != nil {
			return recipe.Document{}, err
		}
		logger.Debug("loaded recipe file", "file", f, "scripts", len(doc.Scripts))
		docs = append(docs, doc)
	}
	return recipe.Merge(docs...)
}

// loadFile parses a single recipe file, choosing the front-end by extension.
func loadFile(path string) (recipe.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recipe.Document{}, fmt.Errorf("recipe file %s: %w", path, err)
	}
	if filepath.Ext(path) == ".hcl" {
		return recipehcl.Parse(data, path)
	}
	doc, err := recipeyaml.Parse(data)
	if err != nil {
		return recipe.Document{}, fmt.Errorf("recipe file %s: %w", path, err)
	}
	for i := range doc.Scripts {
		doc.Scripts[i].Source = path
	}
	return doc, nil
}
