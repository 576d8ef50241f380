package recipe

import (
	"fmt"
	"log/slog"

	"mtweaker/pkg/tweaker"
)

// Apply validates def and replays it onto s: imports first, then every
// statement in order.
func Apply(def ScriptDef, s *tweaker.Script, logger *slog.Logger) error {
	if err := ValidateScript(def); err != nil {
		return err
	}
	for _, imp := range def.Imports {
		s.Include(imp)
	}
	for i, st := range def.Statements {
		if err := applyStatement(st, s); err != nil {
			return fmt.Errorf("phase=apply path=%s.statements[%d] (%s): %w", def.Name, i, st.Kind, err)
		}
		logger.Debug("applied statement", "script", def.Name, "index", i, "kind", st.Kind)
	}
	return nil
}

// Build creates a script for def and applies it.
func Build(def ScriptDef, logger *slog.Logger, opts ...tweaker.Option) (*tweaker.Script, error) {
	s := tweaker.NewScript(def.Name, opts...)
	if err := Apply(def, s, logger); err != nil {
		return nil, err
	}
	logger.Debug("built script", "script", def.Name, "statements", s.Len()-1, "path", s.Path())
	return s, nil
}

func applyStatement(st Statement, s *tweaker.Script) error {
	switch st.Kind {
	case KindPrint:
		s.Print(st.Text)
	case KindRaw:
		s.Append(st.Text)
	case KindShaped:
		return s.AddShapedRecipe(st.Output, st.Quantity, st.Grid)
	case KindShapeless:
		s.AddShapelessRecipe(st.Output, st.Quantity, st.Inputs)
	case KindRemove:
		s.RemoveRecipe(st.Output)
	case KindSmelt:
		s.AddSmeltingRecipe(st.Output, st.Input)
	case KindUnsmelt:
		s.RemoveSmeltingByOutput(st.Output)
	case KindUnsmeltInput:
		s.RemoveSmeltingByInput(st.Input)
	case KindBasin:
		if st.Cast != nil {
			s.AddBasinCastRecipe(st.Output, st.Fluid, *st.Cast, st.Ticks)
		} else {
			s.AddBasinRecipe(st.Output, st.Fluid, st.Ticks)
		}
	case KindTable:
		if st.Cast != nil {
			s.AddTableCastRecipe(st.Output, st.Fluid, *st.Cast, st.Ticks)
		} else {
			s.AddTableRecipe(st.Output, st.Fluid, st.Ticks)
		}
	case KindRemoveBasin:
		s.RemoveBasinRecipe(st.Output)
	case KindRemoveTable:
		s.RemoveTableRecipe(st.Output)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
	}
	return nil
}
