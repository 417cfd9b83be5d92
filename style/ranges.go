package style

import "github.com/gogpu/glyphforge/rng"

// Span is a closed interval parameters are drawn from.
type Span struct {
	Min, Max float64
}

func (s Span) draw(r *rng.Stream) float64 {
	return r.Range(s.Min, s.Max)
}

func (s Span) valid() bool {
	return s.Min <= s.Max
}

// Ranges holds the intervals Derive draws from.
type Ranges struct {
	XHeight          Span
	CapRatio         Span // cap height as a multiple of the x-height
	Descender        Span
	Width            Span
	StrokeWidthRatio Span
	MiterLimit       Span
	CornerRounding   Span
	SerifLength      Span
	SerifAngle       Span
	SlantAngle       Span
	CurvatureBias    Span
	AnchorJitter     Span

	// Ornament probabilities. The defaults are empty: plain alphabets
	// unless a preset or the caller asks for ornaments.
	DotFrequency        Span
	BarFrequency        Span
	FlourishProbability Span
	ComponentReuse      Span

	// SerifProbability is the chance that an alphabet has serifs at all.
	SerifProbability float64

	// Relative weights for miter, round, bevel and flat, round, square.
	JoinWeights [3]float64
	CapWeights  [3]float64

	// Jitter is the per-letter deviation bound.
	Jitter float64
}

// DefaultRanges returns the documented default intervals.
func DefaultRanges() Ranges {
	return Ranges{
		XHeight:          Span{0.45, 0.55},
		CapRatio:         Span{1.3, 1.5},
		Descender:        Span{0.18, 0.26},
		Width:            Span{0.5, 0.68},
		StrokeWidthRatio: Span{0.12, 0.22},
		MiterLimit:       Span{2.5, 4},
		CornerRounding:   Span{0, 0.5},
		SerifLength:      Span{0.4, 1.2},
		SerifAngle:       Span{-0.2, 0.2},
		SlantAngle:       Span{-0.05, 0.2},
		CurvatureBias:    Span{0.4, 1},
		AnchorJitter:     Span{0.5, 1},
		SerifProbability: 0.35,
		JoinWeights:      [3]float64{0.35, 0.4, 0.25},
		CapWeights:       [3]float64{0.45, 0.35, 0.2},
		Jitter:           0.05,
	}
}

func (r Ranges) validate() error {
	spans := []struct {
		name string
		span Span
	}{
		{"xHeight", r.XHeight}, {"capRatio", r.CapRatio}, {"descender", r.Descender},
		{"width", r.Width}, {"strokeWidthRatio", r.StrokeWidthRatio},
		{"miterLimit", r.MiterLimit}, {"cornerRounding", r.CornerRounding},
		{"serifLength", r.SerifLength}, {"serifAngle", r.SerifAngle},
		{"slantAngle", r.SlantAngle}, {"curvatureBias", r.CurvatureBias},
		{"anchorJitter", r.AnchorJitter},
		{"dotFrequency", r.DotFrequency}, {"barFrequency", r.BarFrequency},
		{"flourishProbability", r.FlourishProbability}, {"componentReuse", r.ComponentReuse},
	}
	for _, s := range spans {
		if !s.span.valid() {
			return invalidf("range %s is inverted", s.name)
		}
	}
	for _, s := range spans[len(spans)-4:] {
		if s.span.Min < 0 || s.span.Max > 1 {
			return invalidf("range %s must lie in [0, 1]", s.name)
		}
	}
	switch {
	case r.XHeight.Min <= 0:
		return invalidf("x-height must be positive")
	case r.CapRatio.Min < 1.1:
		return invalidf("cap ratio must keep cap height above the x-height")
	case r.StrokeWidthRatio.Min <= 0 || r.StrokeWidthRatio.Max > 0.5:
		return invalidf("stroke width ratio must lie in (0, 0.5]")
	case r.MiterLimit.Min < 1:
		return invalidf("miter limit must be at least 1")
	case r.Jitter < 0 || r.Jitter >= 0.5:
		return invalidf("jitter bound must lie in [0, 0.5)")
	case r.SerifProbability < 0 || r.SerifProbability > 1:
		return invalidf("serif probability must lie in [0, 1]")
	}
	if !positiveSum(r.JoinWeights[:]) || !positiveSum(r.CapWeights[:]) {
		return invalidf("join and cap weights need a positive entry")
	}
	return nil
}

func positiveSum(ws []float64) bool {
	for _, w := range ws {
		if w < 0 {
			return false
		}
	}
	for _, w := range ws {
		if w > 0 {
			return true
		}
	}
	return false
}
