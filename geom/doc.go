// Package geom provides the 2D primitives shared by the glyph pipeline:
// points, rectangles, cubic Bezier centerlines, polygon predicates and the
// Outline type produced by stroke expansion.
//
// # Coordinate System
//
// Glyph space uses em units:
//   - Origin at the left end of the baseline
//   - X increases right
//   - Y increases up
//   - Angles in radians, 0 is right, increases counter-clockwise
//
// Outer contours wind counter-clockwise and holes clockwise, so the signed
// area of an outer contour is positive.
package geom
