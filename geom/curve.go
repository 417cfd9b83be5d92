package geom

import "math"

// Rect represents an axis-aligned rectangle.
// Min holds the minimum coordinates (bottom-left in the y-up glyph space),
// Max the maximum coordinates.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether two rectangles share any point.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X <= other.Max.X && other.Min.X <= r.Max.X &&
		r.Min.Y <= other.Max.Y && other.Min.Y <= r.Max.Y
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// BoundsOf returns the bounding rectangle of pts.
// An empty slice yields the zero Rect.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Extend(p)
	}
	return r
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

// LineCubic returns a straight segment from p0 to p1 expressed as a cubic,
// with control points at one and two thirds of the chord.
func LineCubic(p0, p1 Point) CubicBez {
	return CubicBez{P0: p0, P1: p0.Lerp(p1, 1.0/3), P2: p0.Lerp(p1, 2.0/3), P3: p1}
}

// ArcCubic returns a single-bend curve from p0 to p1.
//
// The control points sit at one and two thirds of the chord, pushed along the
// counter-clockwise chord normal by bulge times the chord length. skew moves
// weight between the two control points so the apex is not always centered.
// A zero bulge produces a straight segment.
func ArcCubic(p0, p1 Point, bulge, skew float64) CubicBez {
	chord := p1.Sub(p0)
	n := chord.Perp()
	c1 := p0.Lerp(p1, 1.0/3).Add(n.Mul(bulge * (0.8 + skew)))
	c2 := p0.Lerp(p1, 2.0/3).Add(n.Mul(bulge * (0.8 - skew)))
	return CubicBez{P0: p0, P1: c1, P2: c2, P3: p1}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Start returns the starting point of the curve.
func (c CubicBez) Start() Point {
	return c.P0
}

// End returns the ending point of the curve.
func (c CubicBez) End() Point {
	return c.P3
}

// Reversed returns the same curve traversed from end to start.
func (c CubicBez) Reversed() CubicBez {
	return CubicBez{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// StartTangent returns the unit direction of the curve leaving P0.
// Coincident control points fall through to the next distinct one.
func (c CubicBez) StartTangent() Point {
	for _, q := range [...]Point{c.P1, c.P2, c.P3} {
		if d := q.Sub(c.P0); d.Length() > 0 {
			return d.Normalize()
		}
	}
	return Point{}
}

// EndTangent returns the unit direction of the curve arriving at P3.
func (c CubicBez) EndTangent() Point {
	for _, q := range [...]Point{c.P2, c.P1, c.P0} {
		if d := c.P3.Sub(q); d.Length() > 0 {
			return d.Normalize()
		}
	}
	return Point{}
}

// BoundingBox returns the bounding box of the control polygon, which always
// contains the curve.
func (c CubicBez) BoundingBox() Rect {
	return BoundsOf([]Point{c.P0, c.P1, c.P2, c.P3})
}

// ChordLength returns the distance between the end points.
func (c CubicBez) ChordLength() float64 {
	return c.P0.Distance(c.P3)
}

// maxFlattenDepth bounds recursive subdivision in Flatten.
const maxFlattenDepth = 16

// Flatten approximates the curve with a polyline whose deviation from the
// curve is at most tolerance. The result starts at P0 and ends at P3.
func (c CubicBez) Flatten(tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = 1e-3
	}
	pts := []Point{c.P0}
	flattenCubic(c, tolerance, 0, &pts)
	return pts
}

func flattenCubic(c CubicBez, tolerance float64, depth int, out *[]Point) {
	if depth >= maxFlattenDepth || cubicFlatness(c) <= tolerance {
		*out = append(*out, c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenCubic(a, tolerance, depth+1, out)
	flattenCubic(b, tolerance, depth+1, out)
}

// cubicFlatness returns the larger distance of the two control points from
// the chord, or from P0 when the chord is degenerate.
func cubicFlatness(c CubicBez) float64 {
	chord := c.P3.Sub(c.P0)
	length := chord.Length()
	if length == 0 {
		return math.Max(c.P1.Distance(c.P0), c.P2.Distance(c.P0))
	}
	d1 := math.Abs(chord.Cross(c.P1.Sub(c.P0))) / length
	d2 := math.Abs(chord.Cross(c.P2.Sub(c.P0))) / length
	return math.Max(d1, d2)
}
