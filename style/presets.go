package style

import (
	"maps"
	"slices"
	"strings"
)

func join(j JoinStyle) *JoinStyle { return &j }
func capStyle(c CapStyle) *CapStyle { return &c }

// presets are curated starting points for common script aesthetics.
var presets = map[string]Config{
	"angular": {
		CurvatureBias:    Float(0.1),
		StrokeWidthRatio: Float(0.14),
		CapStyle:         capStyle(CapFlat),
		JoinStyle:        join(JoinMiter),
		SerifLength:      Float(0.6),
		DotFrequency:     Float(0.05),
		BarFrequency:     Float(0.15),
	},
	"flowing": {
		CurvatureBias:       Float(0.9),
		StrokeWidthRatio:    Float(0.12),
		CapStyle:            capStyle(CapRound),
		JoinStyle:           join(JoinRound),
		SerifLength:         Float(0),
		DotFrequency:        Float(0.15),
		FlourishProbability: Float(0.12),
		ComponentReuse:      Float(0.3),
	},
	"geometric": {
		CurvatureBias:    Float(0.4),
		StrokeWidthRatio: Float(0.16),
		CapStyle:         capStyle(CapFlat),
		JoinStyle:        join(JoinMiter),
		SerifLength:      Float(0),
		AnchorJitter:     Float(0.3),
		SlantAngle:       Float(0),
		DotFrequency:     Float(0.1),
		BarFrequency:     Float(0.1),
	},
	"blocky": {
		CurvatureBias:    Float(0.05),
		StrokeWidthRatio: Float(0.24),
		CapStyle:         capStyle(CapFlat),
		JoinStyle:        join(JoinMiter),
		SerifLength:      Float(0.5),
		AnchorJitter:     Float(0.3),
		CornerRounding:   Float(0),
		BarFrequency:     Float(0.1),
	},
	"ornate": {
		CurvatureBias:       Float(0.7),
		StrokeWidthRatio:    Float(0.1),
		CapStyle:            capStyle(CapRound),
		JoinStyle:           join(JoinRound),
		SerifLength:         Float(0.9),
		DotFrequency:        Float(0.2),
		BarFrequency:        Float(0.1),
		FlourishProbability: Float(0.15),
		ComponentReuse:      Float(0.5),
	},
	"runic": {
		CurvatureBias:    Float(0),
		StrokeWidthRatio: Float(0.14),
		CapStyle:         capStyle(CapFlat),
		JoinStyle:        join(JoinMiter),
		SerifLength:      Float(0.4),
		AnchorJitter:     Float(0.3),
		CornerRounding:   Float(0),
		ComponentReuse:   Float(0.4),
	},
}

// Preset returns the named preset, ignoring case.
func Preset(name string) (Config, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Config{}, invalidf("unknown preset %q", name)
	}
	return p, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}
