package geom

import "slices"

// Polygon predicates for closed point rings. A ring is a slice of points
// with an implicit closing edge from the last point back to the first.

// SignedArea returns the signed area of the ring using the shoelace formula.
// Positive for counter-clockwise rings in the y-up glyph space.
func SignedArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var area float64
	for i := range n {
		p0 := ring[i]
		p1 := ring[(i+1)%n]
		area += p0.X*p1.Y - p1.X*p0.Y
	}
	return area * 0.5
}

// Winding returns the winding number of pt relative to the ring.
// 0 = outside, non-zero = inside (for the non-zero fill rule).
// Uses ray casting with a horizontal ray to the right.
func Winding(ring []Point, pt Point) int {
	n := len(ring)
	var winding int
	for i := range n {
		winding += lineWinding(ring[i], ring[(i+1)%n], pt)
	}
	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Reverse returns a copy of the ring with the opposite orientation.
func Reverse(ring []Point) []Point {
	out := slices.Clone(ring)
	slices.Reverse(out)
	return out
}

// SegmentsIntersect reports whether the closed segments a0-a1 and b0-b1
// share at least one point, touching and collinear overlap included.
func SegmentsIntersect(a0, a1, b0, b1 Point) bool {
	d1 := sign(isLeft(b0, b1, a0))
	d2 := sign(isLeft(b0, b1, a1))
	d3 := sign(isLeft(a0, a1, b0))
	d4 := sign(isLeft(a0, a1, b1))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b0, b1, a0):
		return true
	case d2 == 0 && onSegment(b0, b1, a1):
		return true
	case d3 == 0 && onSegment(a0, a1, b0):
		return true
	case d4 == 0 && onSegment(a0, a1, b1):
		return true
	}
	return false
}

// onSegment reports whether p, known to be collinear with a-b, lies within
// the segment's bounding box.
func onSegment(a, b, p Point) bool {
	return NewRect(a, b).Contains(p)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// IsSimple reports whether the ring is a simple polygon: at least three
// points, no repeated vertices and no two non-adjacent edges that touch.
func IsSimple(ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	seen := make(map[Point]struct{}, n)
	for _, p := range ring {
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	for i := range n {
		a0, a1 := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				// Adjacent edges share exactly one vertex. They are only
				// invalid if they fold back onto each other.
				var shared, other Point
				if j == i+1 {
					shared, other = a1, ring[(j+1)%n]
				} else {
					shared, other = a0, ring[j]
				}
				prev := a0
				if j != i+1 {
					prev = a1
				}
				if foldsBack(prev, shared, other) {
					return false
				}
				continue
			}
			if SegmentsIntersect(a0, a1, ring[j], ring[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// foldsBack reports whether the path prev -> shared -> next reverses onto
// itself along one line.
func foldsBack(prev, shared, next Point) bool {
	u := prev.Sub(shared)
	v := next.Sub(shared)
	return u.Cross(v) == 0 && u.Dot(v) > 0
}
