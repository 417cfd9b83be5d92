package stroke

import (
	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/style"
)

// maxOffsetScale clamps the offset stretch at interior vertices.
const maxOffsetScale = 2.0

// ribbon offsets the polyline pts by h on both sides and closes it with the
// given caps. It returns a single polygon, or the per-segment decomposition
// when the offset polygon is not simple.
func ribbon(pts []geom.Point, h float64, startCap, endCap style.CapStyle, tol float64) [][]geom.Point {
	n := len(pts)
	normals := make([]geom.Point, n-1)
	for i := range normals {
		normals[i] = pts[i+1].Sub(pts[i]).Normalize().Perp()
	}

	left := make([]geom.Point, n)
	right := make([]geom.Point, n)
	folded := false
	for i, p := range pts {
		var off geom.Point
		switch i {
		case 0:
			off = normals[0].Mul(h)
		case n - 1:
			off = normals[n-2].Mul(h)
		default:
			m := normals[i-1].Add(normals[i])
			if m.Length() < 1e-9 {
				folded = true
				m = normals[i]
			}
			m = m.Normalize()
			scale := 1.0
			if d := m.Dot(normals[i]); d > 0 {
				scale = min(1/d, maxOffsetScale)
			}
			off = m.Mul(h * scale)
		}
		left[i] = p.Add(off)
		right[i] = p.Sub(off)
	}

	startDir := pts[0].Sub(pts[1]).Normalize()
	endDir := pts[n-1].Sub(pts[n-2]).Normalize()

	ring := make([]geom.Point, 0, 2*n+8)
	ring = append(ring, left...)
	ring = append(ring, capPoints(endCap, pts[n-1], endDir, h, tol)...)
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, capPoints(startCap, pts[0], startDir, h, tol)...)

	if !folded && geom.IsSimple(ring) {
		return [][]geom.Point{ring}
	}
	return segmentPieces(pts, normals, h, startCap, endCap, tol)
}

// segmentPieces covers the stroke with one quad per segment and a disc at
// every interior vertex. Caps become separate pieces.
func segmentPieces(pts, normals []geom.Point, h float64, startCap, endCap style.CapStyle, tol float64) [][]geom.Point {
	n := len(pts)
	out := make([][]geom.Point, 0, 2*n)
	for i, nrm := range normals {
		off := nrm.Mul(h)
		out = append(out, []geom.Point{
			pts[i].Sub(off), pts[i+1].Sub(off), pts[i+1].Add(off), pts[i].Add(off),
		})
	}
	for _, p := range pts[1 : n-1] {
		out = append(out, disc(p, h, tol))
	}
	if piece := capPiece(startCap, pts[0], pts[0].Sub(pts[1]).Normalize(), h, tol); piece != nil {
		out = append(out, piece)
	}
	if piece := capPiece(endCap, pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize(), h, tol); piece != nil {
		out = append(out, piece)
	}
	return out
}
