// Package style derives the shared stroke style of one alphabet and the small
// per-letter deviations from it.
//
// Every parameter is relative: metrics are fractions of the em, the stroke
// width is a fraction of the x-height, corner rounding and serif length are
// fractions of the stroke width. The same Vector therefore scales to any
// target size.
package style

// Vector is the flat set of style parameters shared by all glyphs of one
// alphabet. It is a value type; Derive and Jitter return fresh copies.
type Vector struct {
	// Vertical metrics and advance width, in em.
	XHeight   float64
	CapHeight float64
	Descender float64
	Width     float64

	// StrokeWidthRatio is the stroke width as a fraction of XHeight.
	StrokeWidthRatio float64

	Join       JoinStyle
	Cap        CapStyle
	MiterLimit float64

	// CornerRounding is the fillet radius of miter corners as a fraction of
	// the stroke width.
	CornerRounding float64

	// SerifLength is how far a serif reaches past the stroke edge, as a
	// fraction of the stroke width. Zero means sans.
	SerifLength float64
	SerifAngle  float64 // radians, rotation of the serif slab

	// SlantAngle shears the whole glyph, in radians; positive leans right.
	SlantAngle float64

	// CurvatureBias in [0,1] scales how far curved edges bulge.
	CurvatureBias float64
	// AnchorJitter in [0,1] scales how much of each node's allowed range is used.
	AnchorJitter float64

	// JitterBound is the largest relative per-letter deviation of the
	// stroke width, corner rounding and serif length.
	JitterBound float64

	// Per-glyph chances of a detached dot, a crossbar and a flourish at a
	// stroke end.
	DotFrequency        float64
	BarFrequency        float64
	FlourishProbability float64

	// ComponentReuse is the chance that a glyph carries one of the
	// alphabet's shared components. It also sizes the component set.
	ComponentReuse float64
}

// Ornamented reports whether glyphs may carry decorations or components.
func (v Vector) Ornamented() bool {
	return v.DotFrequency > 0 || v.BarFrequency > 0 || v.FlourishProbability > 0 || v.ComponentReuse > 0
}

// StrokeWidth returns the absolute stroke width in em.
func (v Vector) StrokeWidth() float64 {
	return v.StrokeWidthRatio * v.XHeight
}

// HasSerifs reports whether free stroke ends receive serifs.
func (v Vector) HasSerifs() bool {
	return v.SerifLength > 0
}

// BoxSize returns the larger side of the nominal glyph box: the advance
// width by the span from descender to cap height.
func (v Vector) BoxSize() float64 {
	return max(v.Width, v.CapHeight+v.Descender)
}
