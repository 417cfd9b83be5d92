package stroke

import (
	"math"
	"slices"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/style"
)

// straightGap is the angular slack below which two strokes count as
// continuing straight through a node.
const straightGap = 1e-9

// joins returns the patches filling the outer corners at a node where the
// given strokes meet.
func joins(spokes []spoke, v style.Vector, h, tol float64) [][]geom.Point {
	at := spokes[0].at
	if v.Join == style.JoinRound {
		return [][]geom.Point{disc(at, h, tol)}
	}

	dirs := make([]geom.Point, len(spokes))
	for i, s := range spokes {
		dirs[i] = s.dir
	}
	slices.SortStableFunc(dirs, func(a, b geom.Point) int {
		switch aa, ba := a.Angle(), b.Angle(); {
		case aa < ba:
			return -1
		case aa > ba:
			return 1
		}
		return 0
	})

	var out [][]geom.Point
	for i, t1 := range dirs {
		t2 := dirs[(i+1)%len(dirs)]
		gap := t2.Angle() - t1.Angle()
		if gap <= 0 {
			gap += 2 * math.Pi
		}
		if gap <= math.Pi+straightGap {
			continue
		}
		out = append(out, cornerPatch(at, t1, t2, gap, v, h, tol))
	}
	return out
}

// cornerPatch fills the corner swept counter-clockwise from t1 to t2.
func cornerPatch(at, t1, t2 geom.Point, gap float64, v style.Vector, h, tol float64) []geom.Point {
	a := at.Add(t1.Perp().Mul(h))
	b := at.Sub(t2.Perp().Mul(h))
	bevel := []geom.Point{at, a, b}
	if v.Join != style.JoinMiter {
		return bevel
	}

	s := math.Sin(gap / 2)
	if s <= 0 || 1/s > v.MiterLimit {
		return bevel
	}
	bisect := t1.Add(t2).Mul(-1)
	if bisect.Length() < 1e-12 {
		return bevel
	}
	tip := at.Add(bisect.Normalize().Mul(h / s))

	r := v.CornerRounding
	if r <= 0 {
		return []geom.Point{at, a, tip, b}
	}
	p1 := tip.Lerp(a, r)
	p2 := tip.Lerp(b, r)
	patch := []geom.Point{at, a, p1}
	patch = append(patch, fillet(p1, tip, p2, tol)...)
	return append(patch, p2, b)
}

// fillet returns the interior points of the quadratic Bezier p0-c-p1.
func fillet(p0, c, p1 geom.Point, tol float64) []geom.Point {
	// Quadratic flatness: the control point deviates twice as far as the
	// curve itself.
	dev := c.Sub(p0.Lerp(p1, 0.5)).Length() / 2
	n := max(2, int(math.Ceil(math.Sqrt(dev/tol)*2)))
	pts := make([]geom.Point, 0, n-1)
	for j := 1; j < n; j++ {
		t := float64(j) / float64(n)
		mt := 1 - t
		pts = append(pts, p0.Mul(mt*mt).Add(c.Mul(2*mt*t)).Add(p1.Mul(t*t)))
	}
	return pts
}
