// Package tweaker formats item and fluid references as MineTweaker tokens and
// accumulates them into ZenScript documents.
package tweaker

import "strconv"

// nullToken is what every empty reference formats to.
const nullToken = "null"

// Reference identifies one resource amount: an item, a block or a fluid.
//
// ID is the namespaced resource name (e.g. "minecraft:apple"). An empty ID,
// or the literal "null", marks the empty reference.
// Quantity 0 means "not set" and is treated as 1.
// Tag is a free-form suffix appended after a dot (e.g. "withTag({...})").
type Reference struct {
	ID       string
	Quantity int
	Tag      string
}

// Empty is the empty reference. It formats to null regardless of quantity or tag.
var Empty = Reference{}

// Ref returns an identifier-only reference.
func Ref(id string) Reference {
	return Reference{ID: id}
}

// Times returns a copy of r with its quantity set to n.
func (r Reference) Times(n int) Reference {
	r.Quantity = n
	return r
}

// WithTag returns a copy of r carrying tag.
func (r Reference) WithTag(tag string) Reference {
	r.Tag = tag
	return r
}

// IsEmpty reports whether r is the empty reference.
func (r Reference) IsEmpty() bool {
	return r.ID == "" || r.ID == nullToken
}

// Identity returns r stripped of quantity and tag.
// Removal statements key on identity only.
func (r Reference) Identity() Reference {
	return Reference{ID: r.ID}
}

// Format returns the token for r, using quantity instead of r.Quantity when
// quantity is positive.
func (r Reference) Format(quantity int) string {
	if r.IsEmpty() {
		return nullToken
	}
	q := quantity
	if q <= 0 {
		q = r.Quantity
	}
	if q <= 0 {
		q = 1
	}

	token := "<" + r.ID + ">"
	if r.Tag != "" {
		token += "." + r.Tag
	}
	if q > 1 {
		token += " * " + strconv.Itoa(q)
	}
	return token
}

// String implements fmt.Stringer with the reference's own quantity.
func (r Reference) String() string {
	return r.Format(0)
}

// Format returns the token for r with its own quantity.
//
//	{ID: "minecraft:wool", Tag: "onlyDamage(3)", Quantity: 4} → <minecraft:wool>.onlyDamage(3) * 4
func Format(r Reference) string {
	return r.Format(0)
}

// Cast is the optional cast item of a casting recipe. Consumed tells the
// casting table or basin to destroy the cast after use.
type Cast struct {
	Item     Reference
	Consumed bool
}
