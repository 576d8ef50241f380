package recipe

import (
	"fmt"
	"strings"
)

// Validate checks a document before it is applied: at least one script,
// unique non-empty names, and per-kind field constraints.
func Validate(doc Document) error {
	if len(doc.Scripts) == 0 {
		return fmt.Errorf("phase=validate path=<doc>: %w", ErrEmptyDocument)
	}
	names := map[string]struct{}{}
	for i, s := range doc.Scripts {
		path := s.Name
		if path == "" {
			path = fmt.Sprintf("scripts[%d]", i)
		}
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("phase=validate path=%s: %w: name", path, ErrMissingField)
		}
		if _, exists := names[s.Name]; exists {
			return fmt.Errorf("phase=validate path=%s: %w", path, ErrDuplicateScript)
		}
		names[s.Name] = struct{}{}
		if err := ValidateScript(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScript checks the imports and statements of a single script.
func ValidateScript(s ScriptDef) error {
	for i, imp := range s.Imports {
		if strings.TrimSpace(imp) == "" {
			return fmt.Errorf("phase=validate path=%s.imports[%d]: %w: import path is empty", s.Name, i, ErrInvalidField)
		}
	}
	for i, st := range s.Statements {
		path := fmt.Sprintf("%s.statements[%d]", s.Name, i)
		if err := validateStatement(st); err != nil {
			return fmt.Errorf("phase=validate path=%s (%s): %w", path, st.Kind, err)
		}
	}
	return nil
}

func validateStatement(st Statement) error {
	switch st.Kind {
	case KindPrint, KindRaw:
		if strings.TrimSpace(st.Text) == "" {
			return fmt.Errorf("%w: text", ErrMissingField)
		}

	case KindShaped:
		if err := requireRef("output", st.Output.ID); err != nil {
			return err
		}
		if err := requireQuantity(st.Quantity); err != nil {
			return err
		}
		if len(st.Grid) == 0 || len(st.Grid[0]) == 0 {
			return fmt.Errorf("%w: grid", ErrMissingField)
		}
		for r, row := range st.Grid {
			if len(row) != len(st.Grid[0]) {
				return fmt.Errorf("%w: grid row %d has %d cells, want %d", ErrInvalidField, r, len(row), len(st.Grid[0]))
			}
		}

	case KindShapeless:
		if err := requireRef("output", st.Output.ID); err != nil {
			return err
		}
		if err := requireQuantity(st.Quantity); err != nil {
			return err
		}
		if len(st.Inputs) == 0 {
			return fmt.Errorf("%w: inputs", ErrMissingField)
		}

	case KindRemove, KindUnsmelt, KindRemoveBasin, KindRemoveTable:
		return requireRef("output", st.Output.ID)

	case KindUnsmeltInput:
		return requireRef("input", st.Input.ID)

	case KindSmelt:
		if err := requireRef("output", st.Output.ID); err != nil {
			return err
		}
		return requireRef("input", st.Input.ID)

	case KindBasin, KindTable:
		if err := requireRef("output", st.Output.ID); err != nil {
			return err
		}
		if err := requireRef("fluid", st.Fluid.ID); err != nil {
			return err
		}
		if st.Cast != nil {
			if err := requireRef("cast", st.Cast.Item.ID); err != nil {
				return err
			}
		}
		if st.Ticks <= 0 {
			return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidField, st.Ticks)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
	}
	return nil
}

func requireRef(field, id string) error {
	if id == "" || id == "null" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

func requireQuantity(q int) error {
	if q < 0 {
		return fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidField, q)
	}
	return nil
}
