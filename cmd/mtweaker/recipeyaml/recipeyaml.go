package recipeyaml

import (
	"fmt"
	"slices"
	"strings"

	"mtweaker/cmd/mtweaker/recipe"
	"mtweaker/pkg/tweaker"

	"gopkg.in/yaml.v3"
)

// Two YAML forms are supported:
//   - Mapping form (preferred): a mapping with a "scripts" list.
//   - Single-script form: a mapping with "name" at the root.
//
// Each statement is a one-key mapping from kind to body:
//
//	statements:
//	  - remove: minecraft:furnace
//	  - shapeless:
//	      output: minecraft:apple
//	      inputs: [minecraft:apple, null]

// ---- Internal YAML parsing structs ----------------------------------------

type yamlDocument struct {
	Scripts []*yaml.Node `yaml:"scripts"`
}

// scriptKeys are the keys a script mapping may carry.
var scriptKeys = []string{"name", "imports", "statements"}

// yamlScript keeps statements as raw nodes: bodies are polymorphic per kind.
type yamlScript struct {
	Name       string      `yaml:"name"`
	Imports    []string    `yaml:"imports,omitempty"`
	Statements []yaml.Node `yaml:"statements,omitempty"`
}

// ---- Parse -----------------------------------------------------------------

// Parse parses a recipe document in either form and validates it.
func Parse(in []byte) (recipe.Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return recipe.Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return recipe.Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]
	if root.Kind != yaml.MappingNode {
		return recipe.Document{}, fmt.Errorf("phase=parse path=<doc>: expected a mapping, got YAML kind %d", root.Kind)
	}

	scriptNodes := []*yaml.Node{root}
	if findKey(root, "scripts") != nil {
		if err := checkKeys(root, "scripts"); err != nil {
			return recipe.Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
		}
		var yd yamlDocument
		if err := root.Decode(&yd); err != nil {
			return recipe.Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
		}
		scriptNodes = yd.Scripts
	}

	scripts := make([]yamlScript, 0, len(scriptNodes))
	for i, n := range scriptNodes {
		path := fmt.Sprintf("scripts[%d]", i)
		if n == nil || n.Kind != yaml.MappingNode {
			return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w: script must be a mapping", path, recipe.ErrInvalidField)
		}
		if err := checkKeys(n, scriptKeys...); err != nil {
			return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w", path, err)
		}
		var ys yamlScript
		if err := n.Decode(&ys); err != nil {
			return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w", path, err)
		}
		scripts = append(scripts, ys)
	}

	doc, err := convertScripts(scripts)
	if err != nil {
		return recipe.Document{}, err
	}
	if err := recipe.Validate(doc); err != nil {
		return recipe.Document{}, err
	}
	return doc, nil
}

// ---- Convert: yaml nodes → recipe types -----------------------------------

func convertScripts(raw []yamlScript) (recipe.Document, error) {
	var doc recipe.Document
	for i, ys := range raw {
		path := ys.Name
		if path == "" {
			path = fmt.Sprintf("scripts[%d]", i)
		}
		def := recipe.ScriptDef{Name: ys.Name, Imports: ys.Imports}
		for j := range ys.Statements {
			stPath := fmt.Sprintf("%s.statements[%d]", path, j)
			st, err := convertStatement(&ys.Statements[j])
			if err != nil {
				return recipe.Document{}, fmt.Errorf("phase=parse path=%s: %w", stPath, err)
			}
			def.Statements = append(def.Statements, st)
		}
		doc.Scripts = append(doc.Scripts, def)
	}
	return doc, nil
}

// convertStatement reads a one-key mapping {kind: body}.
func convertStatement(node *yaml.Node) (recipe.Statement, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return recipe.Statement{}, fmt.Errorf("%w: statement must be a mapping with exactly one kind key (line %d)", recipe.ErrInvalidField, node.Line)
	}
	kind, err := recipe.ParseKind(node.Content[0].Value)
	if err != nil {
		return recipe.Statement{}, err
	}
	body := node.Content[1]
	st := recipe.Statement{Kind: kind}

	switch kind {
	case recipe.KindPrint, recipe.KindRaw:
		if body.Kind != yaml.ScalarNode {
			return st, fmt.Errorf("%w: %s body must be a string (line %d)", recipe.ErrInvalidField, kind, body.Line)
		}
		st.Text = body.Value

	case recipe.KindRemove, recipe.KindUnsmelt, recipe.KindRemoveBasin, recipe.KindRemoveTable:
		st.Output, err = decodeRef(body)

	case recipe.KindUnsmeltInput:
		st.Input, err = decodeRef(body)

	case recipe.KindShaped:
		err = decodeFields(body, map[string]fieldDecoder{
			"output":   refField(&st.Output),
			"quantity": intField(&st.Quantity),
			"grid":     gridField(&st.Grid),
		})

	case recipe.KindShapeless:
		err = decodeFields(body, map[string]fieldDecoder{
			"output":   refField(&st.Output),
			"quantity": intField(&st.Quantity),
			"inputs":   refListField(&st.Inputs),
		})

	case recipe.KindSmelt:
		err = decodeFields(body, map[string]fieldDecoder{
			"output": refField(&st.Output),
			"input":  refField(&st.Input),
		})

	case recipe.KindBasin, recipe.KindTable:
		err = decodeFields(body, map[string]fieldDecoder{
			"output": refField(&st.Output),
			"fluid":  refField(&st.Fluid),
			"cast":   castField(&st.Cast),
			"ticks":  intField(&st.Ticks),
		})
	}
	return st, err
}

// fieldDecoder decodes the value node of one mapping key.
type fieldDecoder func(*yaml.Node) error

// decodeFields walks a mapping node and dispatches each key to its decoder.
// Unknown and repeated keys are rejected.
func decodeFields(node *yaml.Node, fields map[string]fieldDecoder) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping, got YAML kind %d (line %d)", recipe.ErrInvalidField, node.Kind, node.Line)
	}
	seen := map[string]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		dec, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: unknown key %q (line %d)", recipe.ErrInvalidField, key, node.Content[i].Line)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate key %q (line %d)", recipe.ErrInvalidField, key, node.Content[i].Line)
		}
		seen[key] = true
		if err := dec(node.Content[i+1]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func refField(dst *tweaker.Reference) fieldDecoder {
	return func(n *yaml.Node) (err error) {
		*dst, err = decodeRef(n)
		return err
	}
}

func intField(dst *int) fieldDecoder {
	return func(n *yaml.Node) error {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
			return fmt.Errorf("%w: expected an integer, got %q (line %d)", recipe.ErrInvalidField, n.Value, n.Line)
		}
		return n.Decode(dst)
	}
}

func refListField(dst *[]tweaker.Reference) fieldDecoder {
	return func(n *yaml.Node) (err error) {
		*dst, err = decodeRefList(n)
		return err
	}
}

func gridField(dst *[][]tweaker.Reference) fieldDecoder {
	return func(n *yaml.Node) error {
		if n.Kind != yaml.SequenceNode {
			return fmt.Errorf("%w: grid must be a list of rows (line %d)", recipe.ErrInvalidField, n.Line)
		}
		grid := make([][]tweaker.Reference, 0, len(n.Content))
		for r, rowNode := range n.Content {
			row, err := decodeRefList(rowNode)
			if err != nil {
				return fmt.Errorf("row %d: %w", r, err)
			}
			grid = append(grid, row)
		}
		*dst = grid
		return nil
	}
}

// castField accepts either a bare reference (consumed=false) or a mapping
// {item, tag, consumed}.
func castField(dst **tweaker.Cast) fieldDecoder {
	return func(n *yaml.Node) error {
		var c tweaker.Cast
		if n.Kind == yaml.MappingNode {
			err := decodeFields(n, map[string]fieldDecoder{
				"item": func(v *yaml.Node) error { return scalarString(v, &c.Item.ID) },
				"tag":  func(v *yaml.Node) error { return scalarString(v, &c.Item.Tag) },
				"consumed": func(v *yaml.Node) error {
					if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!bool" {
						return fmt.Errorf("%w: expected true or false, got %q (line %d)", recipe.ErrInvalidField, v.Value, v.Line)
					}
					return v.Decode(&c.Consumed)
				},
			})
			if err != nil {
				return err
			}
		} else {
			item, err := decodeRef(n)
			if err != nil {
				return err
			}
			c.Item = item
		}
		*dst = &c
		return nil
	}
}

func decodeRefList(n *yaml.Node) ([]tweaker.Reference, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list (line %d)", recipe.ErrInvalidField, n.Line)
	}
	refs := make([]tweaker.Reference, 0, len(n.Content))
	for i, item := range n.Content {
		r, err := decodeRef(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		refs = append(refs, r)
	}
	return refs, nil
}

// decodeRef reads a reference written as a scalar identifier or as a
// mapping {item, quantity, tag}. YAML null and the empty string yield
// tweaker.Empty.
func decodeRef(n *yaml.Node) (tweaker.Reference, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return tweaker.Empty, nil
		}
		return tweaker.Ref(n.Value), nil

	case yaml.MappingNode:
		var r tweaker.Reference
		err := decodeFields(n, map[string]fieldDecoder{
			"item":     func(v *yaml.Node) error { return scalarString(v, &r.ID) },
			"quantity": intField(&r.Quantity),
			"tag":      func(v *yaml.Node) error { return scalarString(v, &r.Tag) },
		})
		return r, err

	default:
		return tweaker.Reference{}, fmt.Errorf("%w: reference must be a string or a mapping (line %d)", recipe.ErrInvalidField, n.Line)
	}
}

func scalarString(n *yaml.Node, dst *string) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a string (line %d)", recipe.ErrInvalidField, n.Line)
	}
	if n.ShortTag() == "!!null" {
		*dst = ""
		return nil
	}
	*dst = n.Value
	return nil
}

// checkKeys rejects mapping keys outside allowed, so a misspelled key fails
// instead of leaving its section empty.
func checkKeys(m *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("%w: unknown key %q (line %d), want one of %s",
				recipe.ErrInvalidField, key.Value, key.Line, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// findKey returns the value node for key in a mapping node, or nil.
func findKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
