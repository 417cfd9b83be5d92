package glyphforge

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphforge/geom"
)

// FontOutline converts the glyph outline to font units for font tooling.
// Each contour becomes a move followed by line segments; the closing edge
// is implicit. Coordinates keep the y-up convention of the em square.
func (g *Glyph) FontOutline(unitsPerEm int) font.GlyphOutline {
	// Scale in float64 and round once.
	scale := float64(unitsPerEm)
	pt := func(p geom.Point) font.SegmentPoint {
		return font.SegmentPoint{X: float32(p.X * scale), Y: float32(p.Y * scale)}
	}

	segs := make([]font.Segment, 0, g.Outline.NumPoints())
	for _, c := range g.Outline.Contours {
		for i, p := range c.Points {
			op := ot.SegmentOpLineTo
			if i == 0 {
				op = ot.SegmentOpMoveTo
			}
			segs = append(segs, font.Segment{Op: op, Args: [3]font.SegmentPoint{pt(p)}})
		}
	}
	return font.GlyphOutline{Segments: segs}
}

// AdvanceWidth returns the glyph's advance in font units.
func (g *Glyph) AdvanceWidth(unitsPerEm int) float32 {
	return float32(g.Style.Width * float64(unitsPerEm))
}
