package stroke

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/internal/clip"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
)

// ErrUnresolvedSelfIntersection is returned when the expanded polygons of a
// glyph cannot be merged into simple contours.
var ErrUnresolvedSelfIntersection = errors.New("stroke: unresolved self-intersection")

// Unioner merges polygons into simple contours under the nonzero rule.
// eps is the absolute coincidence tolerance.
type Unioner interface {
	Union(polys [][]geom.Point, eps float64) ([]geom.Contour, error)
}

// UnionFunc adapts a function to the Unioner interface.
type UnionFunc func(polys [][]geom.Point, eps float64) ([]geom.Contour, error)

// Union calls f.
func (f UnionFunc) Union(polys [][]geom.Point, eps float64) ([]geom.Contour, error) {
	return f(polys, eps)
}

// flattenFactor is the flattening tolerance as a fraction of stroke width.
const flattenFactor = 0.05

// Expander converts skeleton graphs to outlines. It holds no per-call state
// and is safe for concurrent use.
type Expander struct {
	unioner Unioner

	// epsilon is relative to the glyph box size.
	epsilon float64
}

// NewExpander creates an expander that merges polygons with clip.Union.
// epsilon is the coincidence tolerance relative to the glyph box size.
func NewExpander(epsilon float64) *Expander {
	return &Expander{unioner: UnionFunc(clip.Union), epsilon: epsilon}
}

// WithUnioner returns a copy of e that merges polygons with u.
func (e *Expander) WithUnioner(u Unioner) *Expander {
	c := *e
	c.unioner = u
	return &c
}

// Epsilon returns the absolute coincidence tolerance used for v.
func (e *Expander) Epsilon(v style.Vector) float64 {
	return e.epsilon * v.BoxSize()
}

// Expand returns the filled outline of g drawn with style v.
func (e *Expander) Expand(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
	w := v.StrokeWidth()
	if w <= 0 || math.IsNaN(w) {
		return geom.Outline{}, fmt.Errorf("stroke: %s: stroke width %v is not positive", g.Letter, w)
	}
	eps := e.Epsilon(v)
	h := w / 2
	tol := max(eps*10, w*flattenFactor)

	shear := math.Tan(v.SlantAngle)
	paths, err := centerlines(g, shear, eps, tol)
	if err != nil {
		return geom.Outline{}, err
	}

	var polys [][]geom.Point
	for k, edge := range g.Edges {
		startCap, endCap := style.CapFlat, style.CapFlat
		if g.Degree(edge.From) == 1 {
			startCap = v.Cap
		}
		if g.Degree(edge.To) == 1 {
			endCap = v.Cap
		}
		polys = append(polys, ribbon(paths[k], h, startCap, endCap, tol)...)
	}

	for i := range g.Nodes {
		spokes := nodeSpokes(g, paths, i)
		switch len(spokes) {
		case 0:
		case 1:
			if v.HasSerifs() {
				polys = append(polys, serif(spokes[0], v, h))
			}
		default:
			polys = append(polys, joins(spokes, v, h, tol)...)
		}
	}
	for _, d := range g.Decorations {
		polys = append(polys, decoration(d, shear, h, eps, tol)...)
	}

	contours, err := e.unioner.Union(polys, eps)
	if err != nil {
		return geom.Outline{}, fmt.Errorf("%w: %s: %w", ErrUnresolvedSelfIntersection, g.Letter, err)
	}
	if len(contours) == 0 {
		return geom.Outline{}, fmt.Errorf("%w: %s: union is empty", ErrUnresolvedSelfIntersection, g.Letter)
	}
	for i, c := range contours {
		if !geom.IsSimple(c.Points) {
			return geom.Outline{}, fmt.Errorf("%w: %s: contour %d is not simple",
				ErrUnresolvedSelfIntersection, g.Letter, i)
		}
		if (c.Area() < 0) != c.Hole {
			return geom.Outline{}, fmt.Errorf("%w: %s: contour %d winds against its kind",
				ErrUnresolvedSelfIntersection, g.Letter, i)
		}
	}
	return geom.Outline{Contours: contours}, nil
}

// centerlines flattens and shears every edge of g. Consecutive points closer
// than eps are merged; the end points are always kept.
func centerlines(g *skeleton.Graph, shear, eps, tol float64) ([][]geom.Point, error) {
	paths := make([][]geom.Point, len(g.Edges))
	for k, edge := range g.Edges {
		flat := edge.Curve.Flatten(tol)
		pts := make([]geom.Point, 0, len(flat))
		for i, p := range flat {
			p = p.Shear(shear)
			if len(pts) > 0 && pts[len(pts)-1].Distance(p) <= eps {
				if i != len(flat)-1 {
					continue
				}
				pts = pts[:len(pts)-1]
			}
			pts = append(pts, p)
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("%w: %s: edge %d collapses after shear",
				ErrUnresolvedSelfIntersection, g.Letter, k)
		}
		paths[k] = pts
	}
	return paths, nil
}

// spoke is a stroke leaving a node: the node position and the unit
// direction of the first centerline segment away from it.
type spoke struct {
	at  geom.Point
	dir geom.Point
}

// nodeSpokes returns the strokes incident to node i, in edge order.
func nodeSpokes(g *skeleton.Graph, paths [][]geom.Point, i int) []spoke {
	var out []spoke
	for _, k := range g.Incident(i) {
		pts := paths[k]
		n := len(pts)
		if g.Edges[k].From == i {
			out = append(out, spoke{at: pts[0], dir: pts[1].Sub(pts[0]).Normalize()})
		}
		if g.Edges[k].To == i {
			out = append(out, spoke{at: pts[n-1], dir: pts[n-2].Sub(pts[n-1]).Normalize()})
		}
	}
	return out
}
