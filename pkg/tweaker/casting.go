package tweaker

import "strconv"

const castingPrefix = "mods.tconstruct.Casting."

// Tinkers' Construct casting. fluid is formatted with its own quantity, in
// millibuckets, and without a tag; the cast item drops its quantity but keeps
// its tag. ticks is the cooling time.

func (s *Script) AddBasinRecipe(output, fluid Reference, ticks int) {
	s.addCasting("addBasinRecipe", output, fluid, nil, ticks)
}

func (s *Script) AddBasinCastRecipe(output, fluid Reference, cast Cast, ticks int) {
	s.addCasting("addBasinRecipe", output, fluid, &cast, ticks)
}

func (s *Script) AddTableRecipe(output, fluid Reference, ticks int) {
	s.addCasting("addTableRecipe", output, fluid, nil, ticks)
}

func (s *Script) AddTableCastRecipe(output, fluid Reference, cast Cast, ticks int) {
	s.addCasting("addTableRecipe", output, fluid, &cast, ticks)
}

func (s *Script) RemoveBasinRecipe(output Reference) {
	s.Append(castingPrefix + "removeBasinRecipe(" + Format(output) + ");")
}

func (s *Script) RemoveTableRecipe(output Reference) {
	s.Append(castingPrefix + "removeTableRecipe(" + Format(output) + ");")
}

func (s *Script) addCasting(fn string, output, fluid Reference, cast *Cast, ticks int) {
	// Fluids carry no tag and a cast is always a single item.
	args := Format(output) + ", " + Format(Reference{ID: fluid.ID, Quantity: fluid.Quantity})
	if cast != nil {
		args += ", " + cast.Item.Format(1) + ", " + strconv.FormatBool(cast.Consumed)
	}
	args += ", " + strconv.Itoa(ticks)
	s.Append(castingPrefix + fn + "(" + args + ");")
}
