package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/cmd/mtweaker/recipehcl"
	"mtweaker/cmd/mtweaker/recipeyaml"
)

// The embedded files are what users start from; they must always build.

func TestEmbeddedYAMLExampleBuilds(t *testing.T) {
	doc, err := recipeyaml.Parse([]byte(exampleYAMLHeader + string(exampleYAML)))
	if err != nil {
		t.Fatalf("example.yml: %v", err)
	}
	kinds := map[recipe.Kind]bool{}
	for _, def := range doc.Scripts {
		if _, err := recipe.Build(def, quietLogger()); err != nil {
			t.Fatalf("build %s: %v", def.Name, err)
		}
		for _, st := range def.Statements {
			kinds[st.Kind] = true
		}
	}
	for _, k := range recipe.Kinds {
		if !kinds[k] {
			t.Errorf("example.yml does not demonstrate %q", k)
		}
	}
}

func TestEmbeddedHCLExampleBuilds(t *testing.T) {
	doc, err := recipehcl.Parse(exampleHCL, "example.hcl")
	if err != nil {
		t.Fatalf("example.hcl: %v", err)
	}
	def, ok := doc.Find("prova")
	if !ok {
		t.Fatalf("example.hcl has no prova script, got %v", doc.Names())
	}
	s, err := recipe.Build(def, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, s.Render(),
		"import mods.tconstruct.Casting;",
		`recipes.addShaped(<minecraft:stick> * 8, [["<minecraft:log>","null"],["<minecraft:log>","null"]]);`,
		"furnace.remove(<*>, <minecraft:cactus>);",
	)
}

func TestStarterDocument(t *testing.T) {
	doc, err := recipeyaml.Parse(starterDocument("mypack"))
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	if got := doc.Names(); len(got) != 1 || got[0] != "mypack" {
		t.Fatalf("names = %v, want [mypack]", got)
	}
	s, err := recipe.Build(doc.Scripts[0], quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, s.Render(), `print("Hello from mtweaker");`, "<minecraft:stick> * 4")
}

func TestStarterDocumentQuotesName(t *testing.T) {
	for _, name := range []string{"a: b", "#x", `say "hi"`, "- item", "null", "42"} {
		t.Run(name, func(t *testing.T) {
			doc, err := recipeyaml.Parse(starterDocument(name))
			if err != nil {
				t.Fatalf("starter for %q: %v", name, err)
			}
			if got := doc.Names(); len(got) != 1 || got[0] != name {
				t.Fatalf("names = %q, want [%q]", got, name)
			}
		})
	}
}

func TestValidateScriptName(t *testing.T) {
	for _, ok := range []string{"prova", "my-pack_2"} {
		if err := validateScriptName(ok); err != nil {
			t.Errorf("validateScriptName(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "  ", "a/b", `a\b`, "prova.zs"} {
		if err := validateScriptName(bad); err == nil {
			t.Errorf("validateScriptName(%q) should fail", bad)
		}
	}
}

func TestWriteInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prova.yml")

	if err := writeInitFile(path, []byte("first"), false); err != nil {
		t.Fatal(err)
	}
	err := writeInitFile(path, []byte("second"), false)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected an already-exists error, got %v", err)
	}
	if err := writeInitFile(path, []byte("second"), true); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}
