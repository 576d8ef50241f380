package tweaker

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type write struct {
	path    string
	content string
}

// memStorage records writes instead of touching the filesystem.
type memStorage struct {
	writes []write
	err    error
}

func (m *memStorage) WriteWholeFile(path, content string) error {
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, write{path, content})
	return nil
}

func (m *memStorage) ReadWholeFile(path string) (string, error) {
	for i := len(m.writes) - 1; i >= 0; i-- {
		if m.writes[i].path == path {
			return m.writes[i].content, nil
		}
	}
	return "", errors.New("not found: " + path)
}

func newTestScript(name string) (*Script, *memStorage) {
	st := &memStorage{}
	return NewScript(name, WithStorage(st), WithNotifier(nil)), st
}

func requireLines(t *testing.T, s *Script, want ...string) {
	t.Helper()
	want = append([]string{Header}, want...)
	if diff := cmp.Diff(want, s.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScript_Header(t *testing.T) {
	s, _ := newTestScript("fresh")
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Render() != Header {
		t.Fatalf("Render() = %q, want %q", s.Render(), Header)
	}
	if s.Path() != "fresh.zs" {
		t.Fatalf("Path() = %q", s.Path())
	}
}

func TestScript_ShapelessEndToEnd(t *testing.T) {
	s, _ := newTestScript("prova")
	apple := Ref("minecraft:apple")
	inputs := []Reference{apple, apple, apple, apple, Empty, apple, apple, apple, apple}

	s.AddShapelessRecipe(apple, 1, inputs)

	want := Header + "\n" +
		`recipes.addShapeless(<minecraft:apple>, ["<minecraft:apple>","<minecraft:apple>","<minecraft:apple>","<minecraft:apple>","null","<minecraft:apple>","<minecraft:apple>","<minecraft:apple>","<minecraft:apple>"]);`
	if got := s.Render(); got != want {
		t.Fatalf("render mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestScript_RenderOrderAndIdempotence(t *testing.T) {
	s, _ := newTestScript("order")
	s.Append("a")
	s.Print(`"b"`)
	s.RemoveRecipe(Ref("minecraft:furnace"))

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	first := s.Render()
	if first != s.Render() {
		t.Fatal("Render is not repeatable")
	}
	if got := strings.Count(first, "\n") + 1; got != 4 {
		t.Fatalf("rendered line count = %d, want 4", got)
	}
	requireLines(t, s, "a", `print("b");`, "recipes.remove(<minecraft:furnace>);")
}

func TestScript_LinesIsCopy(t *testing.T) {
	s, _ := newTestScript("copy")
	lines := s.Lines()
	lines[0] = "mutated"
	if s.Lines()[0] != Header {
		t.Fatal("Lines() exposed internal state")
	}
}

func TestScript_Include(t *testing.T) {
	s, _ := newTestScript("imports")
	s.Include("mods.tconstruct.Casting")
	s.Include("flat")
	requireLines(t, s,
		"//Importing Casting\nimport mods.tconstruct.Casting;",
		"//Importing flat\nimport flat;",
	)
}

func TestScript_ShapedRecipe(t *testing.T) {
	t.Run("grid with empty cells and override", func(t *testing.T) {
		s, _ := newTestScript("shaped")
		planks := Ref("minecraft:planks")
		err := s.AddShapedRecipe(Ref("minecraft:stick").Times(2), 4, [][]Reference{
			{planks, Empty},
			{planks, Empty},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		requireLines(t, s, `recipes.addShaped(<minecraft:stick> * 4, [["<minecraft:planks>","null"],["<minecraft:planks>","null"]]);`)
	})

	t.Run("cell tags are kept", func(t *testing.T) {
		s, _ := newTestScript("shaped")
		wool := Ref("minecraft:wool").WithTag("onlyDamage(14)")
		if err := s.AddShapedRecipe(Ref("minecraft:bed"), 0, [][]Reference{{wool, wool, wool}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		requireLines(t, s, `recipes.addShaped(<minecraft:bed>, [["<minecraft:wool>.onlyDamage(14)","<minecraft:wool>.onlyDamage(14)","<minecraft:wool>.onlyDamage(14)"]]);`)
	})

	t.Run("ragged grid rejected", func(t *testing.T) {
		s, _ := newTestScript("shaped")
		err := s.AddShapedRecipe(Ref("a"), 1, [][]Reference{{Ref("b"), Ref("b")}, {Ref("b")}})
		if !errors.Is(err, ErrRaggedGrid) {
			t.Fatalf("want ErrRaggedGrid, got %v", err)
		}
		if s.Len() != 1 {
			t.Fatalf("rejected grid appended a statement")
		}
	})

	t.Run("empty grid rejected", func(t *testing.T) {
		s, _ := newTestScript("shaped")
		if err := s.AddShapedRecipe(Ref("a"), 1, nil); !errors.Is(err, ErrEmptyGrid) {
			t.Fatalf("want ErrEmptyGrid, got %v", err)
		}
		if err := s.AddShapedRecipe(Ref("a"), 1, [][]Reference{{}}); !errors.Is(err, ErrEmptyGrid) {
			t.Fatalf("want ErrEmptyGrid for zero-width row, got %v", err)
		}
	})
}

func TestScript_ShapelessQuotesInTagsAreEscaped(t *testing.T) {
	s, _ := newTestScript("escape")
	named := Ref("minecraft:paper").WithTag(`withTag({display: {Name: "Map"}})`)
	s.AddShapelessRecipe(Ref("minecraft:map"), 0, []Reference{named})
	requireLines(t, s, `recipes.addShapeless(<minecraft:map>, ["<minecraft:paper>.withTag({display: {Name: \"Map\"}})"]);`)
}

func TestScript_ShapelessNoInputs(t *testing.T) {
	s, _ := newTestScript("none")
	s.AddShapelessRecipe(Ref("a"), 0, nil)
	requireLines(t, s, "recipes.addShapeless(<a>, []);")
}

func TestScript_Smelting(t *testing.T) {
	s, _ := newTestScript("furnace")
	s.AddSmeltingRecipe(Ref("minecraft:iron_ingot").Times(2), Reference{ID: "minecraft:iron_ore", Quantity: 3, Tag: "t"})
	s.RemoveSmeltingByOutput(Reference{ID: "minecraft:glass", Quantity: 2})
	s.RemoveSmeltingByInput(Reference{ID: "x", Tag: "y", Quantity: 5})

	requireLines(t, s,
		"furnace.addRecipe(<minecraft:iron_ingot> * 2, <minecraft:iron_ore>);",
		"furnace.remove(<minecraft:glass>);",
		"furnace.remove(<*>, <x>);",
	)
}

func TestScript_RemoveRecipeDropsQuantityAndTag(t *testing.T) {
	s, _ := newTestScript("remove")
	s.RemoveRecipe(Reference{ID: "minecraft:torch", Quantity: 4, Tag: "t"})
	requireLines(t, s, "recipes.remove(<minecraft:torch>);")
}

func TestScript_Casting(t *testing.T) {
	s, _ := newTestScript("casting")
	iron := Ref("liquid:iron").Times(1296)
	gold := Ref("liquid:gold").Times(144)
	ingotCast := Cast{Item: Ref("TConstruct:metalPattern"), Consumed: false}

	s.AddBasinRecipe(Ref("minecraft:iron_block"), iron, 100)
	s.AddBasinCastRecipe(Ref("minecraft:gold_block"), gold, Cast{Item: Ref("minecraft:stone"), Consumed: true}, 80)
	s.AddTableRecipe(Ref("minecraft:iron_ingot"), Ref("liquid:iron").Times(144), 40)
	s.AddTableCastRecipe(Ref("minecraft:gold_ingot"), gold, ingotCast, 20)
	s.RemoveBasinRecipe(Ref("minecraft:iron_block"))
	s.RemoveTableRecipe(Ref("minecraft:iron_ingot"))

	requireLines(t, s,
		"mods.tconstruct.Casting.addBasinRecipe(<minecraft:iron_block>, <liquid:iron> * 1296, 100);",
		"mods.tconstruct.Casting.addBasinRecipe(<minecraft:gold_block>, <liquid:gold> * 144, <minecraft:stone>, true, 80);",
		"mods.tconstruct.Casting.addTableRecipe(<minecraft:iron_ingot>, <liquid:iron> * 144, 40);",
		"mods.tconstruct.Casting.addTableRecipe(<minecraft:gold_ingot>, <liquid:gold> * 144, <TConstruct:metalPattern>, false, 20);",
		"mods.tconstruct.Casting.removeBasinRecipe(<minecraft:iron_block>);",
		"mods.tconstruct.Casting.removeTableRecipe(<minecraft:iron_ingot>);",
	)
}

func TestScript_CastingDropsFluidTagAndCastQuantity(t *testing.T) {
	s, _ := newTestScript("casting")
	fluid := Ref("liquid:iron").Times(144).WithTag("t")
	cast := Cast{Item: Ref("TConstruct:metalPattern").Times(3).WithTag("onlyDamage(0)")}

	s.AddTableCastRecipe(Ref("minecraft:iron_ingot"), fluid, cast, 20)
	s.AddBasinCastRecipe(Ref("minecraft:iron_block"), fluid, Cast{Item: Ref("c").Times(3), Consumed: true}, 80)

	requireLines(t, s,
		"mods.tconstruct.Casting.addTableRecipe(<minecraft:iron_ingot>, <liquid:iron> * 144, <TConstruct:metalPattern>.onlyDamage(0), false, 20);",
		"mods.tconstruct.Casting.addBasinRecipe(<minecraft:iron_block>, <liquid:iron> * 144, <c>, true, 80);",
	)
}

func TestArrayLiteral_Escaping(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"brackets kept", []string{"<a>", "null"}, `["<a>","null"]`},
		{"line separator escaped", []string{"<a\u2028b>"}, `["<a\u2028b>"]`},
		{"invalid utf8 replaced", []string{"<q\xffz>"}, `["<q\ufffdz>"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := arrayLiteral(tc.in); got != tc.want {
				t.Errorf("arrayLiteral(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestScript_Materialize(t *testing.T) {
	st := &memStorage{}
	var notified []string
	s := NewScript("out", WithStorage(st), WithNotifier(func(p string) { notified = append(notified, p) }))
	s.RemoveRecipe(Ref("minecraft:tnt"))

	if err := s.Materialize(); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	want := []write{{path: "out.zs", content: s.Render()}}
	if diff := cmp.Diff(want, st.writes, cmp.AllowUnexported(write{})); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"out.zs"}, notified); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
	got, err := st.ReadWholeFile("out.zs")
	if err != nil || got != s.Render() {
		t.Fatalf("read back %q, %v", got, err)
	}
}

func TestScript_MaterializeError(t *testing.T) {
	boom := errors.New("permission denied")
	st := &memStorage{err: boom}
	called := false
	s := NewScript("dir/out", WithStorage(st), WithNotifier(func(string) { called = true }))

	err := s.Materialize()
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped storage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "dir/out.zs") {
		t.Fatalf("error %q does not name the path", err)
	}
	if called {
		t.Fatal("notifier ran after a failed write")
	}
}

func TestOSStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewScript(dir+"/pack", WithNotifier(nil))
	s.Print(`"hi"`)
	if err := s.Materialize(); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	got, err := OSStorage{}.ReadWholeFile(dir + "/pack.zs")
	if err != nil {
		t.Fatalf("ReadWholeFile: %v", err)
	}
	if got != Header+"\nprint(\"hi\");" {
		t.Fatalf("file content = %q", got)
	}
}
