// Package template holds the catalog of skeleton topologies glyphs are built
// from.
//
// A Template is pure data: named anchor nodes with a role and an allowed
// position range, and edges between them typed straight or curved with
// curvature bounds. The skeleton package instantiates templates; nothing here
// knows about strokes or randomness.
//
// # Units
//
// Node X ranges are fractions of the glyph advance width. Node Y ranges are
// in x-height units. For anchored roles (baseline, x-height, cap top,
// descender) Y is an offset from the role's reference line; for free and
// bowl nodes it is measured from the baseline. Curvature is the bulge of a
// curved edge relative to its chord length, signed towards the chord's
// counter-clockwise normal.
package template

import (
	"fmt"
	"slices"
)

// Role names the structural job of a node. Anchored roles pin the node's
// vertical position to a metric line.
type Role uint8

const (
	// RoleFree is an interior node positioned relative to the baseline.
	RoleFree Role = iota
	// RoleBaseline sits on the baseline.
	RoleBaseline
	// RoleXHeight sits on the x-height line.
	RoleXHeight
	// RoleCapTop sits on the cap-height line (stem tops, ascenders).
	RoleCapTop
	// RoleDescender sits on the descender line.
	RoleDescender
	// RoleBowl is the far side of a bowl, positioned relative to the baseline.
	RoleBowl
)

var roleNames = [...]string{"free", "baseline", "x-height", "cap-top", "descender", "bowl"}

// String returns the role name.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// Anchored reports whether the role pins the node to a metric line.
func (r Role) Anchored() bool {
	switch r {
	case RoleBaseline, RoleXHeight, RoleCapTop, RoleDescender:
		return true
	}
	return false
}

// EdgeKind distinguishes straight from curved edges.
type EdgeKind uint8

const (
	Straight EdgeKind = iota
	Curved
)

// String returns "straight" or "curved".
func (k EdgeKind) String() string {
	if k == Curved {
		return "curved"
	}
	return "straight"
}

// Range is a closed interval of allowed values.
type Range struct {
	Min, Max float64
}

// Mid returns the nominal value.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Node is one anchor of a template.
type Node struct {
	ID   string
	Role Role
	X, Y Range
}

// Edge connects two nodes by ID.
type Edge struct {
	From, To  string
	Kind      EdgeKind
	Curvature Range
}

// Template is an immutable topology descriptor.
type Template struct {
	ID string
	// Tags name the families the template belongs to ("bowl", "triad", ...).
	Tags []string
	// Weight is the base selection weight. Zero means 1.
	Weight float64
	Nodes  []Node
	Edges  []Edge
}

// HasTag reports whether the template carries tag.
func (t *Template) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// BaseWeight returns the selection weight with the zero default applied.
func (t *Template) BaseWeight() float64 {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

// NodeIndex returns the index of the node with the given ID, or -1.
func (t *Template) NodeIndex(id string) int {
	return slices.IndexFunc(t.Nodes, func(n Node) bool { return n.ID == id })
}
