package recipe

import (
	"fmt"

	"mtweaker/pkg/tweaker"
)

// Kind names one statement type of a recipe document.
type Kind string

const (
	KindPrint        Kind = "print"
	KindRaw          Kind = "raw"
	KindShaped       Kind = "shaped"
	KindShapeless    Kind = "shapeless"
	KindRemove       Kind = "remove"
	KindSmelt        Kind = "smelt"
	KindUnsmelt      Kind = "unsmelt"
	KindUnsmeltInput Kind = "unsmelt-input"
	KindBasin        Kind = "basin"
	KindTable        Kind = "table"
	KindRemoveBasin  Kind = "remove-basin"
	KindRemoveTable  Kind = "remove-table"
)

// Kinds lists every known kind in documentation order.
var Kinds = []Kind{
	KindPrint, KindRaw,
	KindShaped, KindShapeless, KindRemove,
	KindSmelt, KindUnsmelt, KindUnsmeltInput,
	KindBasin, KindTable, KindRemoveBasin, KindRemoveTable,
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Fields returns the body fields a statement of kind k accepts, in
// documentation order.
func (k Kind) Fields() []string {
	switch k {
	case KindPrint, KindRaw:
		return []string{"text"}
	case KindRemove, KindUnsmelt, KindRemoveBasin, KindRemoveTable:
		return []string{"output"}
	case KindUnsmeltInput:
		return []string{"input"}
	case KindShaped:
		return []string{"output", "quantity", "grid"}
	case KindShapeless:
		return []string{"output", "quantity", "inputs"}
	case KindSmelt:
		return []string{"output", "input"}
	case KindBasin, KindTable:
		return []string{"output", "fluid", "cast", "ticks"}
	}
	return nil
}

// Document is the format-agnostic content of one recipe file.
type Document struct {
	Scripts []ScriptDef
}

// ScriptDef describes one output script.
// Source is the file the definition came from; it is informational only.
type ScriptDef struct {
	Name       string
	Source     string
	Imports    []string
	Statements []Statement
}

// Statement is a single recipe operation. Which fields matter depends on Kind:
//
//   - print, raw:                       Text
//   - shaped:                           Output, Quantity, Grid
//   - shapeless:                        Output, Quantity, Inputs
//   - remove, unsmelt, remove-basin,
//     remove-table:                     Output
//   - unsmelt-input:                    Input
//   - smelt:                            Output, Input
//   - basin, table:                     Output, Fluid, Cast (optional), Ticks
type Statement struct {
	Kind     Kind
	Text     string
	Output   tweaker.Reference
	Quantity int
	Grid     [][]tweaker.Reference
	Inputs   []tweaker.Reference
	Input    tweaker.Reference
	Fluid    tweaker.Reference
	Cast     *tweaker.Cast
	Ticks    int
}

// Merge concatenates the scripts of docs in order.
// A script name may appear only once across all documents.
func Merge(docs ...Document) (Document, error) {
	var out Document
	seen := map[string]string{}
	for _, doc := range docs {
		for _, s := range doc.Scripts {
			if prev, ok := seen[s.Name]; ok {
				return Document{}, fmt.Errorf("phase=merge path=%s: %w (first defined in %s)", s.Name, ErrDuplicateScript, sourceOrUnknown(prev))
			}
			seen[s.Name] = s.Source
			out.Scripts = append(out.Scripts, s)
		}
	}
	return out, nil
}

// Find returns the script named name.
func (d Document) Find(name string) (ScriptDef, bool) {
	for _, s := range d.Scripts {
		if s.Name == name {
			return s, true
		}
	}
	return ScriptDef{}, false
}

// Names returns all script names in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Scripts))
	for i, s := range d.Scripts {
		names[i] = s.Name
	}
	return names
}

func sourceOrUnknown(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}
