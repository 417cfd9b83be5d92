package clip

import (
	"math"

	"github.com/gogpu/glyphforge/geom"
)

// maxGridExtent bounds snapped coordinates so that orientation products
// stay well inside int64.
const maxGridExtent = 1 << 28

type ipoint struct{ x, y int64 }

func (p ipoint) sub(q ipoint) ipoint { return ipoint{p.x - q.x, p.y - q.y} }

func (p ipoint) less(q ipoint) bool {
	if p.x != q.x {
		return p.x < q.x
	}
	return p.y < q.y
}

func cross(a, b ipoint) int64 { return a.x*b.y - a.y*b.x }

func dot(a, b ipoint) int64 { return a.x*b.x + a.y*b.y }

// orient is positive when c lies left of a->b.
func orient(a, b, c ipoint) int64 { return cross(b.sub(a), c.sub(a)) }

func sgn(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// within reports whether p, collinear with a-b, lies on the closed segment.
func within(a, b, p ipoint) bool {
	return min(a.x, b.x) <= p.x && p.x <= max(a.x, b.x) &&
		min(a.y, b.y) <= p.y && p.y <= max(a.y, b.y)
}

// grid maps between em coordinates and integer cells.
type grid struct {
	cell float64
}

func newGrid(polys [][]geom.Point, eps float64) grid {
	var extent float64
	for _, ring := range polys {
		for _, p := range ring {
			extent = max(extent, math.Abs(p.X), math.Abs(p.Y))
		}
	}
	cell := eps
	if cell <= 0 || extent/cell > maxGridExtent {
		cell = max(extent/maxGridExtent, math.SmallestNonzeroFloat64)
	}
	return grid{cell: cell}
}

func (g grid) snap(p geom.Point) ipoint {
	return ipoint{int64(math.Round(p.X / g.cell)), int64(math.Round(p.Y / g.cell))}
}

func (g grid) point(p ipoint) geom.Point {
	return geom.Pt(float64(p.x)*g.cell, float64(p.y)*g.cell)
}

// ring snaps a polygon, drops repeated and collinear vertices and returns it
// counter-clockwise. It returns nil for rings without area.
func (g grid) ring(in []geom.Point) []ipoint {
	pts := make([]ipoint, 0, len(in))
	for _, p := range in {
		q := g.snap(p)
		if len(pts) > 0 && pts[len(pts)-1] == q {
			continue
		}
		pts = append(pts, q)
	}
	for len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	pts = simplify(pts)
	if len(pts) < 3 {
		return nil
	}
	switch a := area2(pts); {
	case a == 0:
		return nil
	case a < 0:
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

// area2 is twice the signed area.
func area2(ring []ipoint) int64 {
	var a int64
	n := len(ring)
	for i := range n {
		a += cross(ring[i], ring[(i+1)%n])
	}
	return a
}

// simplify removes vertices whose neighbours are collinear with them,
// straight continuations and spikes alike.
func simplify(ring []ipoint) []ipoint {
	for changed := true; changed && len(ring) >= 3; {
		changed = false
		out := ring[:0:0]
		n := len(ring)
		for i := range n {
			prev := ring[(i+n-1)%n]
			if len(out) > 0 {
				prev = out[len(out)-1]
			}
			next := ring[(i+1)%n]
			if orient(prev, ring[i], next) == 0 {
				changed = true
				continue
			}
			out = append(out, ring[i])
		}
		ring = out
	}
	return ring
}
