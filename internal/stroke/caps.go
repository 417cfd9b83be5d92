package stroke

import (
	"math"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/style"
)

// serifThickness is the slab thickness as a fraction of stroke width.
const serifThickness = 0.35

// arcSegments returns how many chords approximate an arc of radius r
// sweeping angle within tol.
func arcSegments(r, sweep, tol float64) int {
	if tol >= r {
		return max(2, int(math.Ceil(sweep/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-tol/r)
	return max(2, int(math.Ceil(sweep/step)))
}

// capPoints returns the points a cap inserts between the two offset
// corners of an end. c is the end point and out the unit direction pointing
// away from the stroke. The cap runs from c+perp(out)*h to c-perp(out)*h;
// both corners are excluded.
func capPoints(cs style.CapStyle, c, out geom.Point, h, tol float64) []geom.Point {
	side := out.Perp().Mul(h)
	switch cs {
	case style.CapSquare:
		ext := out.Mul(h)
		return []geom.Point{c.Add(side).Add(ext), c.Sub(side).Add(ext)}
	case style.CapRound:
		n := arcSegments(h, math.Pi, tol)
		a0 := side.Angle()
		pts := make([]geom.Point, 0, n-1)
		for j := 1; j < n; j++ {
			a := a0 - math.Pi*float64(j)/float64(n)
			pts = append(pts, c.Add(geom.Pt(math.Cos(a), math.Sin(a)).Mul(h)))
		}
		return pts
	}
	return nil
}

// capPiece returns a cap as a closed polygon, or nil for flat caps.
func capPiece(cs style.CapStyle, c, out geom.Point, h, tol float64) []geom.Point {
	switch cs {
	case style.CapRound:
		return disc(c, h, tol)
	case style.CapSquare:
		side := out.Perp().Mul(h)
		return append([]geom.Point{c.Add(side)}, append(capPoints(cs, c, out, h, tol), c.Sub(side))...)
	}
	return nil
}

// disc approximates a circle counter-clockwise.
func disc(c geom.Point, r, tol float64) []geom.Point {
	n := max(8, arcSegments(r, 2*math.Pi, tol))
	pts := make([]geom.Point, n)
	for j := range pts {
		a := 2 * math.Pi * float64(j) / float64(n)
		pts[j] = c.Add(geom.Pt(math.Cos(a), math.Sin(a)).Mul(r))
	}
	return pts
}

// serif lays a slab across a free end. The slab is perpendicular to the
// stroke, its outer face flush with the end, and rotated about the end
// point by the serif angle.
func serif(s spoke, v style.Vector, h float64) []geom.Point {
	w := 2 * h
	half := h + v.SerifLength*w
	thick := serifThickness * w

	// s.dir points into the stroke.
	in := s.dir.Rotate(v.SerifAngle)
	across := in.Perp().Mul(half)
	depth := in.Mul(thick)
	return []geom.Point{
		s.at.Sub(across),
		s.at.Sub(across).Add(depth),
		s.at.Add(across).Add(depth),
		s.at.Add(across),
	}
}
