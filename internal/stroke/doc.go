// Package stroke expands skeleton graphs into filled glyph outlines.
//
// Every edge of a graph is flattened and offset by half the stroke width on
// both sides into a ribbon polygon. Free ends receive caps, junction ends
// stay butt and nodes where strokes meet receive join patches that fill the
// outer corners. Serifs are slabs laid across free ends.
//
// # Algorithm Overview
//
// A ribbon is built from the two offset polylines:
//  1. Left offsets go forward
//  2. The end cap connects left to right
//  3. Right offsets go backward
//  4. The start cap connects right to left and closes
//
// Offsets at interior vertices use the averaged normal of the two adjacent
// segments, scaled to keep the offset distance, and clamped so that sharp
// bends do not produce long spikes. A ribbon that folds on itself is
// replaced by one quad per segment plus a disc at each interior vertex.
//
// Ribbons, joins, caps and serifs then go through a Unioner, which merges
// them into simple outer contours and holes.
//
// # Slant
//
// Slant is a horizontal shear about the baseline applied to the centerlines
// before offsetting, so stroke widths stay uniform across slanted glyphs.
package stroke
