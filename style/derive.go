package style

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphforge/rng"
)

// Derive draws one Vector from the stream.
//
// Parameters are drawn in a fixed order: x-height, cap ratio, descender,
// width, stroke width ratio, join, cap, miter limit, corner rounding, serif
// presence, serif length, serif angle, slant, curvature bias, anchor
// jitter, dot frequency, bar frequency, flourish probability, component
// reuse. Every draw is taken even when an override replaces the value, so
// overriding one parameter never changes the others.
func Derive(s *rng.Stream, cfg Config) (Vector, error) {
	cfg, err := cfg.Resolve()
	if err != nil {
		return Vector{}, err
	}
	r := cfg.ranges()
	if err := r.validate(); err != nil {
		return Vector{}, err
	}

	var v Vector
	v.XHeight = r.XHeight.draw(s)
	v.CapHeight = v.XHeight * r.CapRatio.draw(s)
	v.Descender = r.Descender.draw(s)
	v.Width = r.Width.draw(s)
	v.StrokeWidthRatio = r.StrokeWidthRatio.draw(s)
	v.Join = JoinStyle(s.Weighted(r.JoinWeights[:]))
	v.Cap = CapStyle(s.Weighted(r.CapWeights[:]))
	v.MiterLimit = r.MiterLimit.draw(s)
	v.CornerRounding = r.CornerRounding.draw(s)
	serifs := s.Bool(r.SerifProbability)
	v.SerifLength = r.SerifLength.draw(s)
	if !serifs {
		v.SerifLength = 0
	}
	v.SerifAngle = r.SerifAngle.draw(s)
	v.SlantAngle = r.SlantAngle.draw(s)
	v.CurvatureBias = r.CurvatureBias.draw(s)
	v.AnchorJitter = r.AnchorJitter.draw(s)
	v.DotFrequency = r.DotFrequency.draw(s)
	v.BarFrequency = r.BarFrequency.draw(s)
	v.FlourishProbability = r.FlourishProbability.draw(s)
	v.ComponentReuse = r.ComponentReuse.draw(s)
	v.JitterBound = r.Jitter

	override(&v.StrokeWidthRatio, cfg.StrokeWidthRatio)
	override(&v.Join, cfg.JoinStyle)
	override(&v.Cap, cfg.CapStyle)
	override(&v.SerifLength, cfg.SerifLength)
	override(&v.CornerRounding, cfg.CornerRounding)
	override(&v.SlantAngle, cfg.SlantAngle)
	override(&v.CurvatureBias, cfg.CurvatureBias)
	override(&v.AnchorJitter, cfg.AnchorJitter)
	override(&v.DotFrequency, cfg.DotFrequency)
	override(&v.BarFrequency, cfg.BarFrequency)
	override(&v.FlourishProbability, cfg.FlourishProbability)
	override(&v.ComponentReuse, cfg.ComponentReuse)
	return v, nil
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// slantJitter is the largest per-letter slant deviation in radians at a
// jitter bound of 1.
const slantJitter = 0.1

// Jitter returns a per-letter copy of v with small bounded deviations:
// stroke width, corner rounding and serif length each scaled by a factor in
// [1-b, 1+b] where b is v.JitterBound, and the slant moved by at most
// b*slantJitter radians. Metrics and enum choices are never changed.
//
// The draws come from s forked under ["jitter", letter], so a letter's
// jitter depends only on the letter and the stream's path.
func Jitter(v Vector, s *rng.Stream, letter string) (Vector, error) {
	js, err := s.Fork("jitter", letter)
	if err != nil {
		return Vector{}, fmt.Errorf("style: jitter %q: %w", letter, err)
	}
	b := v.JitterBound
	out := v
	out.StrokeWidthRatio *= 1 + js.Range(-b, b)
	out.CornerRounding = math.Min(1, v.CornerRounding*(1+js.Range(-b, b)))
	out.SerifLength *= 1 + js.Range(-b, b)
	out.SlantAngle += js.Range(-b, b) * slantJitter
	return out, nil
}
