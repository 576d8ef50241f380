package tweaker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AddShapedRecipe appends a recipes.addShaped statement. quantity overrides
// output's own quantity when positive. Empty cells are Empty.
//
// The grid must have at least one row and all rows the same width;
// otherwise nothing is appended and ErrEmptyGrid or ErrRaggedGrid is returned.
func (s *Script) AddShapedRecipe(output Reference, quantity int, grid [][]Reference) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmptyGrid
	}
	width := len(grid[0])
	rows := make([][]string, len(grid))
	for i, row := range grid {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), width, ErrRaggedGrid)
		}
		rows[i] = formatAll(row)
	}
	s.Append("recipes.addShaped(" + output.Format(quantity) + ", " + arrayLiteral(rows) + ");")
	return nil
}

// AddShapelessRecipe appends a recipes.addShapeless statement.
func (s *Script) AddShapelessRecipe(output Reference, quantity int, inputs []Reference) {
	s.Append("recipes.addShapeless(" + output.Format(quantity) + ", " + arrayLiteral(formatAll(inputs)) + ");")
}

// RemoveRecipe appends a recipes.remove statement for every crafting recipe
// producing target.
func (s *Script) RemoveRecipe(target Reference) {
	s.Append("recipes.remove(" + Format(target.Identity()) + ");")
}

// AddSmeltingRecipe appends a furnace.addRecipe statement. Only the
// identity of input is used.
func (s *Script) AddSmeltingRecipe(output, input Reference) {
	s.Append("furnace.addRecipe(" + Format(output) + ", " + Format(input.Identity()) + ");")
}

// RemoveSmeltingByOutput appends furnace.remove(<output>).
func (s *Script) RemoveSmeltingByOutput(output Reference) {
	s.Append("furnace.remove(" + Format(output.Identity()) + ");")
}

// RemoveSmeltingByInput appends furnace.remove(<*>, <input>), removing the
// smelting recipe of input whatever it produces.
func (s *Script) RemoveSmeltingByInput(input Reference) {
	s.Append("furnace.remove(<*>, " + Format(input.Identity()) + ");")
}

func formatAll(refs []Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = Format(r)
	}
	return out
}

// arrayLiteral encodes formatted tokens as a compact JSON array, which the
// ZenScript array literal grammar accepts as-is. HTML escaping stays off so
// brackets survive. Invalid UTF-8 becomes \ufffd and U+2028/U+2029 are
// escaped; identifiers are expected to be plain text already.
func arrayLiteral(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// []string and [][]string cannot fail to encode.
	_ = enc.Encode(v)
	return strings.TrimSuffix(buf.String(), "\n")
}
