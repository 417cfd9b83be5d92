package clip

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/glyphforge/geom"
)

// Errors reported by Union. Both mean the input could not be resolved into
// simple contours at the chosen grid resolution.
var (
	ErrOpenBoundary = errors.New("clip: union boundary does not close")
	ErrNotSimple    = errors.New("clip: union contour is not simple")
)

// minArea2 is twice the smallest contour area, in grid cells, that survives.
const minArea2 = 4

type edge struct {
	from, to ipoint
	used     bool
}

// Union returns the nonzero union of the rings in polys. Coordinates are
// snapped to a grid of cell size eps; eps <= 0 picks the finest grid the
// input extent allows.
//
// Contours start at their lexicographically smallest point. Outer contours
// come first, each group ordered by start point. Contours may touch each
// other at a vertex but each one is simple.
func Union(polys [][]geom.Point, eps float64) ([]geom.Contour, error) {
	g := newGrid(polys, eps)

	var rings [][]ipoint
	for _, p := range polys {
		if r := g.ring(p); r != nil {
			rings = append(rings, r)
		}
	}
	if len(rings) == 0 {
		return nil, nil
	}

	rings, err := arrange(rings)
	if err != nil {
		return nil, err
	}
	loops, err := trace(boundaryEdges(rings))
	if err != nil {
		return nil, err
	}

	var out []geom.Contour
	for _, traced := range loops {
		for _, loop := range splitPinches(traced) {
			loop = simplify(loop)
			if len(loop) < 3 {
				continue
			}
			a := area2(loop)
			if a > -minArea2 && a < minArea2 {
				continue
			}
			if !simple(loop) {
				return nil, fmt.Errorf("%w: %d points starting at %v", ErrNotSimple, len(loop), g.point(loop[0]))
			}
			loop = rotateToMin(loop)
			pts := make([]geom.Point, len(loop))
			for i, p := range loop {
				pts[i] = g.point(p)
			}
			out = append(out, geom.Contour{Points: pts, Hole: a < 0})
		}
	}

	slices.SortStableFunc(out, func(a, b geom.Contour) int {
		if a.Hole != b.Hole {
			if b.Hole {
				return -1
			}
			return 1
		}
		pa, pb := a.Points[0], b.Points[0]
		if c := cmp.Compare(pa.X, pb.X); c != 0 {
			return c
		}
		return cmp.Compare(pa.Y, pb.Y)
	})
	return out, nil
}

// boundaryEdges returns the ring edges that separate covered from
// uncovered space, directed with the covered side on the left. The rings
// must be arranged; coincident edges are considered once.
func boundaryEdges(rings [][]ipoint) []*edge {
	w := newWinder(rings)

	type key struct{ p, q ipoint }
	seen := make(map[key]struct{})
	var edges []*edge
	for _, r := range rings {
		for i := range r {
			p, q := r[i], r[(i+1)%len(r)]
			k := key{p, q}
			if q.less(p) {
				k = key{q, p}
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}

			left, right := w.covered(p, q, false), w.covered(p, q, true)
			switch {
			case left && !right:
				edges = append(edges, &edge{from: p, to: q})
			case right && !left:
				edges = append(edges, &edge{from: q, to: p})
			}
		}
	}
	slices.SortFunc(edges, func(a, b *edge) int {
		if c := comparePoints(a.from, b.from); c != 0 {
			return c
		}
		return comparePoints(a.to, b.to)
	})
	return edges
}

// winder evaluates the nonzero winding of arranged rings at points
// infinitesimally beside an edge midpoint. All arithmetic is on doubled
// integer coordinates, so the test is exact.
type winder struct {
	rings [][]ipoint // doubled
	boxes [][2]ipoint
}

func newWinder(rings [][]ipoint) *winder {
	w := &winder{rings: make([][]ipoint, len(rings)), boxes: make([][2]ipoint, len(rings))}
	for k, r := range rings {
		d := make([]ipoint, len(r))
		lo, hi := ipoint{2 * r[0].x, 2 * r[0].y}, ipoint{2 * r[0].x, 2 * r[0].y}
		for i, p := range r {
			d[i] = ipoint{2 * p.x, 2 * p.y}
			lo = ipoint{min(lo.x, d[i].x), min(lo.y, d[i].y)}
			hi = ipoint{max(hi.x, d[i].x), max(hi.y, d[i].y)}
		}
		w.rings[k] = d
		w.boxes[k] = [2]ipoint{lo, hi}
	}
	return w
}

// covered reports whether the point just left of the midpoint of p-q, or
// just right of it when right is set, has nonzero winding.
//
// The sample point is m + e*n with m the midpoint, n the left normal and e an
// infinitesimal. No ring edge passes through m except ones collinear with
// p-q, so the sample point never lies on an edge.
func (w *winder) covered(p, q ipoint, right bool) bool {
	m := ipoint{p.x + q.x, p.y + q.y}
	d := q.sub(p)
	n := ipoint{-d.y, d.x}
	if right {
		n = ipoint{d.y, -d.x}
	}

	// atOrBelow reports y <= m.y + e*n.y.
	atOrBelow := func(y int64) bool {
		return y < m.y || y == m.y && n.y >= 0
	}
	// side is the sign of orient(a, b, m + e*n).
	side := func(a, b ipoint) int {
		if s := sgn(orient(a, b, m)); s != 0 {
			return s
		}
		return sgn(cross(b.sub(a), n))
	}

	wind := 0
	for k, r := range w.rings {
		box := w.boxes[k]
		if m.x < box[0].x || m.x > box[1].x || m.y < box[0].y || m.y > box[1].y {
			continue
		}
		for i := range r {
			a, b := r[i], r[(i+1)%len(r)]
			if atOrBelow(a.y) {
				if !atOrBelow(b.y) && side(a, b) > 0 {
					wind++
				}
			} else if atOrBelow(b.y) && side(a, b) < 0 {
				wind--
			}
		}
	}
	return wind != 0
}

// trace links directed boundary edges into closed loops. At a vertex with
// several outgoing edges the loop takes the sharpest left turn, which keeps
// most contours that touch at a point apart; splitPinches handles the rest.
func trace(edges []*edge) ([][]ipoint, error) {
	out := make(map[ipoint][]*edge)
	for _, e := range edges {
		out[e.from] = append(out[e.from], e)
	}

	var loops [][]ipoint
	for _, start := range edges {
		if start.used {
			continue
		}
		start.used = true
		loop := []ipoint{start.from}
		cur := start
		for steps := 0; ; steps++ {
			if steps > len(edges) {
				return nil, fmt.Errorf("%w: runaway loop from %v", ErrOpenBoundary, start.from)
			}
			back := cur.from.sub(cur.to)
			var (
				best      *edge
				bestAngle = math.Inf(1)
			)
			for _, e := range out[cur.to] {
				if e.used && e != start {
					continue
				}
				if a := clockwiseAngle(back, e.to.sub(e.from)); a < bestAngle {
					best, bestAngle = e, a
				}
			}
			if best == nil {
				return nil, fmt.Errorf("%w: dead end at %v", ErrOpenBoundary, cur.to)
			}
			if best == start {
				break
			}
			best.used = true
			loop = append(loop, best.from)
			cur = best
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// splitPinches cuts a traced loop at every repeated vertex, so a boundary
// that touches itself at a point becomes separate loops.
func splitPinches(loop []ipoint) [][]ipoint {
	var out [][]ipoint
	stack := make([]ipoint, 0, len(loop))
	at := make(map[ipoint]int, len(loop))
	for _, p := range loop {
		i, ok := at[p]
		if !ok {
			at[p] = len(stack)
			stack = append(stack, p)
			continue
		}
		out = append(out, slices.Clone(stack[i:]))
		for _, q := range stack[i+1:] {
			delete(at, q)
		}
		stack = stack[:i+1]
	}
	return append(out, stack)
}

// clockwiseAngle returns the clockwise rotation from a to b in (0, 2pi].
func clockwiseAngle(a, b ipoint) float64 {
	ang := math.Atan2(float64(a.y), float64(a.x)) - math.Atan2(float64(b.y), float64(b.x))
	for ang <= 0 {
		ang += 2 * math.Pi
	}
	for ang > 2*math.Pi {
		ang -= 2 * math.Pi
	}
	return ang
}

// simple reports whether a ring has no repeated vertex and no two
// non-adjacent edges in contact.
func simple(ring []ipoint) bool {
	n := len(ring)
	seen := make(map[ipoint]struct{}, n)
	for _, p := range ring {
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if touches(a, b, ring[j], ring[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

func touches(a, b, c, d ipoint) bool {
	if max(a.x, b.x) < min(c.x, d.x) || max(c.x, d.x) < min(a.x, b.x) ||
		max(a.y, b.y) < min(c.y, d.y) || max(c.y, d.y) < min(a.y, b.y) {
		return false
	}
	d1 := sgn(orient(c, d, a))
	d2 := sgn(orient(c, d, b))
	d3 := sgn(orient(a, b, c))
	d4 := sgn(orient(a, b, d))
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return d1 == 0 && within(c, d, a) ||
		d2 == 0 && within(c, d, b) ||
		d3 == 0 && within(a, b, c) ||
		d4 == 0 && within(a, b, d)
}

func rotateToMin(ring []ipoint) []ipoint {
	k := 0
	for i, p := range ring {
		if p.less(ring[k]) {
			k = i
		}
	}
	return append(slices.Clone(ring[k:]), ring[:k]...)
}
