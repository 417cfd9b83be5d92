// Package clip computes the nonzero union of polygons.
//
// Input rings are snapped to an integer grid so that every orientation test
// is exact. Segments are split at their mutual intersections, each piece is
// kept when exactly one of its sides is covered, and the kept pieces are
// traced into closed contours with the covered region on their left. Outer
// contours therefore wind counter-clockwise and holes clockwise.
package clip
