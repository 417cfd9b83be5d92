// Package config loads style configurations from HCL files, environment
// variables and generic maps.
//
// Every loader fills a Document and converts it with Document.StyleConfig,
// which applies the preset and validates the overrides. Unset keys stay nil
// and are drawn from the style ranges at generation time.
package config

import (
	"fmt"

	"github.com/gogpu/glyphforge/style"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GLYPHFORGE_"

// Document is the flat, serializable form of style.Config.
type Document struct {
	Preset string `env:"PRESET" mapstructure:"preset"`

	StrokeWidthRatio *float64         `env:"STROKE_WIDTH_RATIO" mapstructure:"strokeWidthRatio"`
	JoinStyle        *style.JoinStyle `env:"JOIN_STYLE" mapstructure:"joinStyle"`
	CapStyle         *style.CapStyle  `env:"CAP_STYLE" mapstructure:"capStyle"`
	SerifLength      *float64         `env:"SERIF_LENGTH" mapstructure:"serifLength"`
	CornerRounding   *float64         `env:"CORNER_ROUNDING" mapstructure:"cornerRounding"`
	SlantAngle       *float64         `env:"SLANT_ANGLE" mapstructure:"slantAngle"`
	CurvatureBias    *float64         `env:"CURVATURE_BIAS" mapstructure:"curvatureBias"`
	AnchorJitter     *float64         `env:"ANCHOR_JITTER" mapstructure:"anchorJitter"`

	DotFrequency        *float64 `env:"DOT_FREQUENCY" mapstructure:"dotFrequency"`
	BarFrequency        *float64 `env:"BAR_FREQUENCY" mapstructure:"barFrequency"`
	FlourishProbability *float64 `env:"FLOURISH_PROBABILITY" mapstructure:"flourishProbability"`
	ComponentReuse      *float64 `env:"COMPONENT_REUSE" mapstructure:"componentReuse"`

	TemplateDiversityBias *float64 `env:"TEMPLATE_DIVERSITY_BIAS" mapstructure:"templateDiversityBias"`
	CoincidenceEpsilon    *float64 `env:"COINCIDENCE_EPSILON" mapstructure:"coincidenceEpsilon"`
}

// Config returns the document as an unresolved style.Config.
func (d Document) Config() style.Config {
	return style.Config{
		Preset:                d.Preset,
		StrokeWidthRatio:      d.StrokeWidthRatio,
		JoinStyle:             d.JoinStyle,
		CapStyle:              d.CapStyle,
		SerifLength:           d.SerifLength,
		CornerRounding:        d.CornerRounding,
		SlantAngle:            d.SlantAngle,
		CurvatureBias:         d.CurvatureBias,
		AnchorJitter:          d.AnchorJitter,
		DotFrequency:          d.DotFrequency,
		BarFrequency:          d.BarFrequency,
		FlourishProbability:   d.FlourishProbability,
		ComponentReuse:        d.ComponentReuse,
		TemplateDiversityBias: d.TemplateDiversityBias,
		CoincidenceEpsilon:    d.CoincidenceEpsilon,
	}
}

// StyleConfig applies the preset under the explicit values and validates
// the result.
func (d Document) StyleConfig() (style.Config, error) {
	cfg, err := d.Config().Resolve()
	if err != nil {
		return style.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Merge returns d with every field that is set in over replaced.
func (d Document) Merge(over Document) Document {
	if over.Preset != "" {
		d.Preset = over.Preset
	}
	pick(&d.StrokeWidthRatio, over.StrokeWidthRatio)
	pick(&d.JoinStyle, over.JoinStyle)
	pick(&d.CapStyle, over.CapStyle)
	pick(&d.SerifLength, over.SerifLength)
	pick(&d.CornerRounding, over.CornerRounding)
	pick(&d.SlantAngle, over.SlantAngle)
	pick(&d.CurvatureBias, over.CurvatureBias)
	pick(&d.AnchorJitter, over.AnchorJitter)
	pick(&d.DotFrequency, over.DotFrequency)
	pick(&d.BarFrequency, over.BarFrequency)
	pick(&d.FlourishProbability, over.FlourishProbability)
	pick(&d.ComponentReuse, over.ComponentReuse)
	pick(&d.TemplateDiversityBias, over.TemplateDiversityBias)
	pick(&d.CoincidenceEpsilon, over.CoincidenceEpsilon)
	return d
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
