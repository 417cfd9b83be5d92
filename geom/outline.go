package geom

// Contour is one closed boundary of an Outline. Points are listed without
// repeating the first point at the end.
//
// Outer contours wind counter-clockwise (positive SignedArea) and holes wind
// clockwise (negative SignedArea). Hole mirrors that orientation so callers
// need not recompute it.
type Contour struct {
	Points []Point
	Hole   bool
}

// Area returns the signed area of the contour.
func (c Contour) Area() float64 {
	return SignedArea(c.Points)
}

// Bounds returns the bounding box of the contour.
func (c Contour) Bounds() Rect {
	return BoundsOf(c.Points)
}

// Outline is the filled shape of one glyph: a set of closed, simple,
// mutually non-crossing contours under the non-zero fill rule.
type Outline struct {
	Contours []Contour
}

// Bounds returns the bounding box of all contours.
func (o Outline) Bounds() Rect {
	var r Rect
	first := true
	for _, c := range o.Contours {
		if len(c.Points) == 0 {
			continue
		}
		b := c.Bounds()
		if first {
			r, first = b, false
			continue
		}
		r = r.Union(b)
	}
	return r
}

// Area returns the inked area: outer areas minus hole areas.
func (o Outline) Area() float64 {
	var area float64
	for _, c := range o.Contours {
		area += c.Area()
	}
	return area
}

// Outers returns the number of outer contours.
func (o Outline) Outers() int {
	n := 0
	for _, c := range o.Contours {
		if !c.Hole {
			n++
		}
	}
	return n
}

// Holes returns the number of hole contours.
func (o Outline) Holes() int {
	return len(o.Contours) - o.Outers()
}

// NumPoints returns the total number of points over all contours.
func (o Outline) NumPoints() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c.Points)
	}
	return n
}
