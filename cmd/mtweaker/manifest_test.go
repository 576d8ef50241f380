package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), `
[output]
dir = "scripts"

[recipes]
files = ["recipes/base.yml", "/abs/extra.hcl"]
`)
	nested := filepath.Join(root, "a", "b")
	writeFile(t, filepath.Join(nested, ".keep"), "")

	m, found, err := loadManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("manifest not found")
	}

	// TempDir may sit behind a symlink; compare against the resolved root.
	wantRoot := filepath.Dir(m.Path)
	if m.Root != wantRoot || filepath.Base(m.Path) != manifestName {
		t.Errorf("unexpected location: path=%q root=%q", m.Path, m.Root)
	}

	if got, want := m.outputDir(), filepath.Join(wantRoot, "scripts"); got != want {
		t.Errorf("outputDir() = %q, want %q", got, want)
	}
	want := []string{filepath.Join(wantRoot, "recipes", "base.yml"), "/abs/extra.hcl"}
	if diff := cmp.Diff(want, m.recipeFiles()); diff != "" {
		t.Errorf("recipeFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestAbsent(t *testing.T) {
	m, found, err := loadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if found || m != nil {
		t.Fatalf("expected no manifest, got %+v", m)
	}
	// A nil manifest contributes nothing.
	if m.outputDir() != "" || m.recipeFiles() != nil {
		t.Error("nil manifest should yield empty values")
	}
}

func TestLoadManifestEmptyOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), "[recipes]\nfiles = []\n")

	m, _, err := loadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.outputDir(); got != "" {
		t.Errorf("outputDir() = %q, want empty", got)
	}
	if got := m.recipeFiles(); len(got) != 0 {
		t.Errorf("recipeFiles() = %v, want empty", got)
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), "[output\ndir = ")

	_, found, err := loadManifest(root)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !found {
		t.Error("found should be true when the file exists")
	}
	mustContain(t, err.Error(), manifestName, "failed to parse TOML")
}
