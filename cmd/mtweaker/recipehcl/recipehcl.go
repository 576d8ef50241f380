// Package recipehcl reads recipe documents written in HCL.
//
//	script "prova" {
//	  imports = ["mods.tconstruct.Casting"]
//
//	  statement "shapeless" {
//	    output = "minecraft:apple"
//	    inputs = ["minecraft:apple", null]
//	  }
//	}
//
// Every statement uses the same block type with the kind as its label, so
// their relative order survives decoding.
package recipehcl

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/pkg/tweaker"

	"fortio.org/safecast"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of a recipe file for decoding.
type hclFile struct {
	Scripts []*hclScript `hcl:"script,block"`
}

type hclScript struct {
	Name       string          `hcl:"name,label"`
	Imports    []string        `hcl:"imports,optional"`
	Statements []*hclStatement `hcl:"statement,block"`
}

// hclStatement carries every attribute any kind accepts. References stay
// as cty values because they may be strings, objects or null.
type hclStatement struct {
	Kind     string    `hcl:"kind,label"`
	Text     *string   `hcl:"text,optional"`
	Output   cty.Value `hcl:"output,optional"`
	Quantity *int      `hcl:"quantity,optional"`
	Grid     cty.Value `hcl:"grid,optional"`
	Inputs   cty.Value `hcl:"inputs,optional"`
	Input    cty.Value `hcl:"input,optional"`
	Fluid    cty.Value `hcl:"fluid,optional"`
	Cast     cty.Value `hcl:"cast,optional"`
	Ticks    *int      `hcl:"ticks,optional"`
}

// Parse decodes and validates an HCL recipe document. filename is used in
// diagnostics and recorded as each script's Source.
func Parse(src []byte, filename string) (recipe.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w", filename, diags)
	}

	var doc recipe.Document
	for _, hs := range parsed.Scripts {
		def := recipe.ScriptDef{Name: hs.Name, Source: filename, Imports: hs.Imports}
		for i, hst := range hs.Statements {
			st, err := convertStatement(hst)
			if err != nil {
				return recipe.Document{}, fmt.Errorf("phase=parse path=%s.statements[%d]: %w", hs.Name, i, err)
			}
			def.Statements = append(def.Statements, st)
		}
		doc.Scripts = append(doc.Scripts, def)
	}

	if err := recipe.Validate(doc); err != nil {
		return recipe.Document{}, err
	}
	return doc, nil
}

func convertStatement(h *hclStatement) (recipe.Statement, error) {
	kind, err := recipe.ParseKind(h.Kind)
	if err != nil {
		return recipe.Statement{}, err
	}
	if err := checkAttributes(kind, h); err != nil {
		return recipe.Statement{}, err
	}
	st := recipe.Statement{Kind: kind}
	if h.Text != nil {
		st.Text = *h.Text
	}
	if h.Quantity != nil {
		st.Quantity = *h.Quantity
	}
	if h.Ticks != nil {
		st.Ticks = *h.Ticks
	}
	if st.Output, err = decodeRef(h.Output); err != nil {
		return st, fmt.Errorf("output: %w", err)
	}
	if st.Input, err = decodeRef(h.Input); err != nil {
		return st, fmt.Errorf("input: %w", err)
	}
	if st.Fluid, err = decodeRef(h.Fluid); err != nil {
		return st, fmt.Errorf("fluid: %w", err)
	}
	if !h.Inputs.IsNull() {
		if st.Inputs, err = decodeRefList(h.Inputs); err != nil {
			return st, fmt.Errorf("inputs: %w", err)
		}
	}
	if !h.Grid.IsNull() {
		if st.Grid, err = decodeGrid(h.Grid); err != nil {
			return st, fmt.Errorf("grid: %w", err)
		}
	}
	if !h.Cast.IsNull() {
		c, err := decodeCast(h.Cast)
		if err != nil {
			return st, fmt.Errorf("cast: %w", err)
		}
		st.Cast = &c
	}
	return st, nil
}

// checkAttributes rejects attributes that kind does not use. hclStatement
// accepts the union of all kinds, so without this a stray attribute would be
// dropped silently.
func checkAttributes(kind recipe.Kind, h *hclStatement) error {
	attrs := []struct {
		name    string
		present bool
	}{
		{"text", h.Text != nil},
		{"output", !h.Output.IsNull()},
		{"quantity", h.Quantity != nil},
		{"grid", !h.Grid.IsNull()},
		{"inputs", !h.Inputs.IsNull()},
		{"input", !h.Input.IsNull()},
		{"fluid", !h.Fluid.IsNull()},
		{"cast", !h.Cast.IsNull()},
		{"ticks", h.Ticks != nil},
	}
	allowed := kind.Fields()
	for _, a := range attrs {
		if a.present && !slices.Contains(allowed, a.name) {
			return fmt.Errorf("%w: attribute %q is not used by %s statements (want %s)",
				recipe.ErrInvalidField, a.name, kind, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// decodeRef accepts null, a string identifier, or an object with item,
// quantity and tag attributes. An absent attribute decodes as null.
func decodeRef(v cty.Value) (tweaker.Reference, error) {
	if v.IsNull() {
		return tweaker.Empty, nil
	}
	if !v.IsWhollyKnown() {
		return tweaker.Reference{}, fmt.Errorf("%w: value is not known", recipe.ErrInvalidField)
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return tweaker.Ref(v.AsString()), nil
	case ty.IsObjectType():
		var r tweaker.Reference
		err := eachAttr(v, map[string]func(cty.Value) error{
			"item":     func(a cty.Value) (err error) { r.ID, err = toString(a); return err },
			"tag":      func(a cty.Value) (err error) { r.Tag, err = toString(a); return err },
			"quantity": func(a cty.Value) (err error) { r.Quantity, err = toInt(a); return err },
		})
		return r, err
	default:
		return tweaker.Reference{}, fmt.Errorf("%w: reference must be a string or an object, got %s", recipe.ErrInvalidField, ty.FriendlyName())
	}
}

func decodeRefList(v cty.Value) ([]tweaker.Reference, error) {
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%w: expected a list, got %s", recipe.ErrInvalidField, ty.FriendlyName())
	}
	refs := make([]tweaker.Reference, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		r, err := decodeRef(ev)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(refs), err)
		}
		refs = append(refs, r)
	}
	return refs, nil
}

func decodeGrid(v cty.Value) ([][]tweaker.Reference, error) {
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%w: grid must be a list of rows, got %s", recipe.ErrInvalidField, ty.FriendlyName())
	}
	grid := make([][]tweaker.Reference, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, rv := it.Element()
		row, err := decodeRefList(rv)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(grid), err)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// decodeCast accepts a bare reference or an object {item, tag, consumed}.
func decodeCast(v cty.Value) (tweaker.Cast, error) {
	if v.Type().IsObjectType() {
		var c tweaker.Cast
		err := eachAttr(v, map[string]func(cty.Value) error{
			"item": func(a cty.Value) (err error) { c.Item.ID, err = toString(a); return err },
			"tag":  func(a cty.Value) (err error) { c.Item.Tag, err = toString(a); return err },
			"consumed": func(a cty.Value) error {
				if a.IsNull() {
					return nil
				}
				if a.Type() != cty.Bool {
					return fmt.Errorf("%w: consumed must be a bool, got %s", recipe.ErrInvalidField, a.Type().FriendlyName())
				}
				c.Consumed = a.True()
				return nil
			},
		})
		return c, err
	}
	item, err := decodeRef(v)
	return tweaker.Cast{Item: item}, err
}

// eachAttr runs the handler for every attribute of object v, rejecting
// attributes without a handler.
func eachAttr(v cty.Value, handlers map[string]func(cty.Value) error) error {
	for name := range v.Type().AttributeTypes() {
		if _, ok := handlers[name]; !ok {
			return fmt.Errorf("%w: unknown attribute %q", recipe.ErrInvalidField, name)
		}
	}
	for name, h := range handlers {
		if !v.Type().HasAttribute(name) {
			continue
		}
		if err := h(v.GetAttr(name)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func toString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if v.Type() != cty.String {
		return "", fmt.Errorf("%w: expected a string, got %s", recipe.ErrInvalidField, v.Type().FriendlyName())
	}
	return v.AsString(), nil
}

func toInt(v cty.Value) (int, error) {
	if v.IsNull() {
		return 0, nil
	}
	if v.Type() != cty.Number {
		return 0, fmt.Errorf("%w: expected a number, got %s", recipe.ErrInvalidField, v.Type().FriendlyName())
	}
	i64, acc := v.AsBigFloat().Int64()
	if acc != big.Exact {
		return 0, fmt.Errorf("%w: %s is not an integer", recipe.ErrInvalidField, v.AsBigFloat().String())
	}
	n, err := safecast.Conv[int](i64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", recipe.ErrInvalidField, err)
	}
	return n, nil
}
