package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const manifestName = appName + ".toml"

// projectManifest is an mtweaker.toml found in the working directory or one
// of its parents.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Output  outputConfig  `toml:"output"`
	Recipes recipesConfig `toml:"recipes"`
}

type outputConfig struct {
	Dir string `toml:"dir"`
}

type recipesConfig struct {
	Files []string `toml:"files"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest returns the nearest manifest above startDir. The boolean is
// false when none exists, which is not an error.
func loadManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// recipeFiles returns the manifest's recipe files resolved against its directory.
func (m *projectManifest) recipeFiles() []string {
	if m == nil {
		return nil
	}
	files := make([]string, 0, len(m.Config.Recipes.Files))
	for _, f := range m.Config.Recipes.Files {
		files = append(files, m.resolve(f))
	}
	return files
}

// outputDir returns the manifest's output directory, or "" when unset.
func (m *projectManifest) outputDir() string {
	if m == nil || m.Config.Output.Dir == "" {
		return ""
	}
	return m.resolve(m.Config.Output.Dir)
}

func (m *projectManifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
