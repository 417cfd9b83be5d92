package skeleton

import (
	"fmt"
	"strconv"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/template"
)

// ComponentKind is the shape family of a shared component.
type ComponentKind uint8

const (
	ComponentTick ComponentKind = iota
	ComponentHook
	ComponentArc
	ComponentCrossbar
	ComponentDescender
	ComponentAscender
	ComponentConnector
	ComponentDot
	numComponentKinds
)

var componentNames = [...]string{
	"tick", "hook", "arc", "crossbar", "descender", "ascender", "connector", "dot",
}

func (k ComponentKind) String() string {
	if int(k) < len(componentNames) {
		return componentNames[k]
	}
	return fmt.Sprintf("ComponentKind(%d)", k)
}

// Component is a small stroke shared by several glyphs of one alphabet, in
// the way scripts reuse radicals. Segments are chained, start at the origin
// and are measured in x-heights.
type Component struct {
	Name     string
	Kind     ComponentKind
	Segments []geom.CubicBez
}

// Components is the shared component set of one alphabet. It is immutable
// and safe for concurrent use.
type Components struct {
	items []Component
}

// NewComponents builds the component set for a reuse level in [0,1].
// Higher reuse builds more components: 8 + 10*reuse, at least 6. The kinds
// cycle in declaration order and component i draws from s forked under
// "comp:i".
func NewComponents(s *rng.Stream, reuse float64) (*Components, error) {
	count := max(6, int(8+reuse*10))
	c := &Components{items: make([]Component, count)}
	for i := range count {
		name := "comp:" + strconv.Itoa(i)
		cs, err := s.Fork(name)
		if err != nil {
			return nil, fmt.Errorf("skeleton: component %d: %w", i, err)
		}
		kind := ComponentKind(i % int(numComponentKinds))
		c.items[i] = Component{Name: name, Kind: kind, Segments: buildComponent(kind, cs)}
	}
	return c, nil
}

// Len returns the number of components.
func (c *Components) Len() int {
	return len(c.items)
}

// At returns component i.
func (c *Components) At(i int) Component {
	return c.items[i]
}

// Pick returns a component chosen uniformly with one draw from s.
func (c *Components) Pick(s *rng.Stream) Component {
	return c.items[s.IntN(len(c.items))]
}

func sign(s *rng.Stream) float64 {
	if s.Bool(0.5) {
		return 1
	}
	return -1
}

// buildComponent draws the segments of one component.
func buildComponent(k ComponentKind, s *rng.Stream) []geom.CubicBez {
	o := geom.Point{}
	switch k {
	case ComponentTick:
		length := s.Range(0.2, 0.5)
		lean := s.Range(-0.5, 0.5)
		return []geom.CubicBez{geom.LineCubic(o, geom.Pt(length*0.3+lean*0.2, length))}
	case ComponentHook:
		bulge := s.Range(0.15, 0.4) * sign(s)
		p1 := geom.Pt(0, -0.5)
		return []geom.CubicBez{
			geom.ArcCubic(o, p1, bulge*0.3, 0),
			geom.ArcCubic(p1, geom.Pt(0.25, -0.7), bulge, 0),
		}
	case ComponentArc:
		bulge := s.Range(0.2, 0.5) * sign(s)
		return []geom.CubicBez{geom.ArcCubic(o, geom.Pt(s.Range(0.3, 0.6), s.Range(0.4, 0.8)), bulge, 0)}
	case ComponentCrossbar:
		w := s.Range(0.4, 1)
		bend := s.Range(-0.1, 0.1)
		return []geom.CubicBez{geom.ArcCubic(o, geom.Pt(w, bend), bend, 0)}
	case ComponentDescender:
		depth := s.Range(0.3, 0.6)
		bulge := s.Range(-0.2, 0.2)
		return []geom.CubicBez{geom.ArcCubic(o, geom.Pt(s.Range(-0.1, 0.2), -depth), bulge, 0)}
	case ComponentAscender:
		height := s.Range(0.3, 0.6)
		bulge := s.Range(-0.2, 0.2)
		return []geom.CubicBez{geom.ArcCubic(o, geom.Pt(s.Range(-0.1, 0.2), height), bulge, 0)}
	case ComponentConnector:
		amp := s.Range(0.1, 0.3)
		mid, end := geom.Pt(0.25, 0.25), geom.Pt(0.5, 0.5)
		return []geom.CubicBez{geom.ArcCubic(o, mid, amp, 0), geom.ArcCubic(mid, end, -amp, 0)}
	default:
		size := s.Range(0.06, 0.12)
		return []geom.CubicBez{geom.ArcCubic(o, geom.Pt(size, size*0.5), 0.3, 0)}
	}
}

// Attach adds c to g at a node drawn from s, scaled by scale em per
// x-height. Terminals are preferred; a graph without terminals uses any
// node. The component's segments become edges through new free nodes.
//
// Attach draws the node first and reports whether the component was kept.
// A placement that would break the graph invariants at eps is undone.
func Attach(g *Graph, c Component, s *rng.Stream, scale, eps float64) bool {
	if len(g.Nodes) == 0 || len(c.Segments) == 0 {
		return false
	}
	var candidates []int
	for i := range g.Nodes {
		if g.Degree(i) == 1 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := range g.Nodes {
			candidates = append(candidates, i)
		}
	}
	at := candidates[s.IntN(len(candidates))]
	origin := g.Nodes[at].Pos

	nodes, edges := len(g.Nodes), len(g.Edges)
	from := at
	for k, seg := range c.Segments {
		kind := template.Curved
		if seg == geom.LineCubic(seg.P0, seg.P3) {
			kind = template.Straight
		}
		seg = geom.CubicBez{
			P0: origin.Add(seg.P0.Mul(scale)),
			P1: origin.Add(seg.P1.Mul(scale)),
			P2: origin.Add(seg.P2.Mul(scale)),
			P3: origin.Add(seg.P3.Mul(scale)),
		}
		g.Nodes = append(g.Nodes, Node{
			ID:   c.Name + "." + strconv.Itoa(k),
			Role: template.RoleFree,
			Pos:  seg.P3,
		})
		to := len(g.Nodes) - 1
		g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind, Curve: seg, Component: c.Name})
		from = to
	}

	if err := g.Check(eps); err != nil {
		g.Nodes, g.Edges = g.Nodes[:nodes], g.Edges[:edges]
		return false
	}
	return true
}
