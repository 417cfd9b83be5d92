package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/gogpu/glyphforge/style"
)

// hclFile mirrors Document with HCL attribute names. Enums are read as
// strings and parsed afterwards.
type hclFile struct {
	Preset string `hcl:"preset,optional"`

	StrokeWidthRatio *float64 `hcl:"stroke_width_ratio,optional"`
	JoinStyle        *string  `hcl:"join_style,optional"`
	CapStyle         *string  `hcl:"cap_style,optional"`
	SerifLength      *float64 `hcl:"serif_length,optional"`
	CornerRounding   *float64 `hcl:"corner_rounding,optional"`
	SlantAngle       *float64 `hcl:"slant_angle,optional"`
	CurvatureBias    *float64 `hcl:"curvature_bias,optional"`
	AnchorJitter     *float64 `hcl:"anchor_jitter,optional"`

	DotFrequency        *float64 `hcl:"dot_frequency,optional"`
	BarFrequency        *float64 `hcl:"bar_frequency,optional"`
	FlourishProbability *float64 `hcl:"flourish_probability,optional"`
	ComponentReuse      *float64 `hcl:"component_reuse,optional"`

	TemplateDiversityBias *float64 `hcl:"template_diversity_bias,optional"`
	CoincidenceEpsilon    *float64 `hcl:"coincidence_epsilon,optional"`
}

// DecodeHCL reads a Document from HCL source. The filename is used in
// diagnostics and selects native or JSON syntax by its extension.
//
// Example:
//
//	preset       = "angular"
//	join_style   = "round"
//	serif_length = 0.4
func DecodeHCL(filename string, src []byte) (Document, error) {
	var f hclFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return Document{}, fmt.Errorf("config: %w", err)
	}

	d := Document{
		Preset:                f.Preset,
		StrokeWidthRatio:      f.StrokeWidthRatio,
		SerifLength:           f.SerifLength,
		CornerRounding:        f.CornerRounding,
		SlantAngle:            f.SlantAngle,
		CurvatureBias:         f.CurvatureBias,
		AnchorJitter:          f.AnchorJitter,
		DotFrequency:          f.DotFrequency,
		BarFrequency:          f.BarFrequency,
		FlourishProbability:   f.FlourishProbability,
		ComponentReuse:        f.ComponentReuse,
		TemplateDiversityBias: f.TemplateDiversityBias,
		CoincidenceEpsilon:    f.CoincidenceEpsilon,
	}
	if f.JoinStyle != nil {
		j, err := style.ParseJoinStyle(*f.JoinStyle)
		if err != nil {
			return Document{}, fmt.Errorf("config: %s: %w", filename, err)
		}
		d.JoinStyle = &j
	}
	if f.CapStyle != nil {
		c, err := style.ParseCapStyle(*f.CapStyle)
		if err != nil {
			return Document{}, fmt.Errorf("config: %s: %w", filename, err)
		}
		d.CapStyle = &c
	}
	return d, nil
}

// ParseHCL decodes HCL source into a resolved style.Config.
func ParseHCL(filename string, src []byte) (style.Config, error) {
	d, err := DecodeHCL(filename, src)
	if err != nil {
		return style.Config{}, err
	}
	return d.StyleConfig()
}
