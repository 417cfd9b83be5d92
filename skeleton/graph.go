// Package skeleton instantiates templates into concrete centerline graphs.
//
// A Graph binds every template node to a point in glyph space and every edge
// to a cubic Bezier centerline. Graphs are produced by Generate and consumed
// by stroke expansion; they are never mutated afterwards.
package skeleton

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/template"
)

// Sentinel errors.
var (
	// ErrDegenerateSkeleton is returned when perturbation collapses two nodes
	// or produces a zero-length edge.
	ErrDegenerateSkeleton = errors.New("skeleton: degenerate skeleton")

	// ErrSkeletonGenerationExhausted is returned when every attempt allowed by
	// Constraints.MaxAttempts was degenerate.
	ErrSkeletonGenerationExhausted = errors.New("skeleton: generation attempts exhausted")

	// ErrNoTemplates is returned by Select for an empty candidate set.
	ErrNoTemplates = errors.New("skeleton: no templates to select from")
)

// Node is a template anchor bound to a position.
type Node struct {
	ID   string
	Role template.Role
	Pos  geom.Point
}

// Edge is a centerline between two nodes, referenced by index.
type Edge struct {
	From, To int
	Kind     template.EdgeKind
	Curve    geom.CubicBez
	// Component names the shared component the edge was attached from.
	// It is empty for template edges.
	Component string
}

// Graph is the concrete skeleton of one glyph.
type Graph struct {
	Letter      string
	TemplateID  string
	Nodes       []Node
	Edges       []Edge
	Decorations []Decoration
}

// TemplateEdges returns the number of edges instantiated from the template.
// Attached component edges follow them.
func (g *Graph) TemplateEdges() int {
	for k, e := range g.Edges {
		if e.Component != "" {
			return k
		}
	}
	return len(g.Edges)
}

// Degree returns the number of edges incident to node i.
func (g *Graph) Degree(i int) int {
	n := 0
	for _, e := range g.Edges {
		if e.From == i {
			n++
		}
		if e.To == i {
			n++
		}
	}
	return n
}

// Incident returns the indices of the edges touching node i, in edge order.
func (g *Graph) Incident(i int) []int {
	var out []int
	for k, e := range g.Edges {
		if e.From == i || e.To == i {
			out = append(out, k)
		}
	}
	return out
}

// NodesWithRole returns the indices of nodes carrying role.
func (g *Graph) NodesWithRole(role template.Role) []int {
	var out []int
	for i, n := range g.Nodes {
		if n.Role == role {
			out = append(out, i)
		}
	}
	return out
}

// Bounds returns the bounding box of all centerline control points.
func (g *Graph) Bounds() geom.Rect {
	if len(g.Nodes) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: g.Nodes[0].Pos, Max: g.Nodes[0].Pos}
	for _, e := range g.Edges {
		r = r.Union(e.Curve.BoundingBox())
	}
	return r
}

// Check verifies the graph invariants: edges reference existing nodes, no
// two nodes lie within eps of each other, no edge chord is shorter than eps,
// and the graph is connected. Geometric violations wrap
// ErrDegenerateSkeleton.
func (g *Graph) Check(eps float64) error {
	n := len(g.Nodes)
	for k, e := range g.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return fmt.Errorf("skeleton: edge %d references a missing node", k)
		}
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if g.Nodes[i].Pos.Distance(g.Nodes[j].Pos) <= eps {
				return fmt.Errorf("%w: nodes %q and %q coincide",
					ErrDegenerateSkeleton, g.Nodes[i].ID, g.Nodes[j].ID)
			}
		}
	}
	for k, e := range g.Edges {
		if e.Curve.ChordLength() <= eps {
			return fmt.Errorf("%w: edge %d has zero length", ErrDegenerateSkeleton, k)
		}
	}
	if !g.connected() {
		return fmt.Errorf("skeleton: graph %q is disconnected", g.TemplateID)
	}
	return nil
}

func (g *Graph) connected() bool {
	if len(g.Nodes) == 0 {
		return false
	}
	adj := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	seen := make([]bool, len(g.Nodes))
	stack := []int{0}
	seen[0] = true
	count := 1
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				count++
				stack = append(stack, v)
			}
		}
	}
	return count == len(g.Nodes)
}
