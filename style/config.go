package style

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig is returned for out-of-range overrides, inverted ranges
// and unknown enum or preset names.
var ErrInvalidConfig = errors.New("style: invalid config")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Default tunables.
const (
	DefaultDiversityBias      = 1.0
	DefaultCoincidenceEpsilon = 1.0 / 16384
)

// Config carries optional overrides for one generation run. A nil field
// means "draw from the range".
type Config struct {
	// Preset names a curated starting point applied under the explicit
	// overrides below.
	Preset string

	StrokeWidthRatio *float64
	JoinStyle        *JoinStyle
	CapStyle         *CapStyle
	SerifLength      *float64
	CornerRounding   *float64
	SlantAngle       *float64
	CurvatureBias    *float64
	AnchorJitter     *float64

	DotFrequency        *float64
	BarFrequency        *float64
	FlourishProbability *float64
	ComponentReuse      *float64

	// TemplateDiversityBias in [0,1] lowers the weight of templates already
	// used in the run. 1 forbids repeats until the pool is exhausted, 0
	// disables the bias.
	TemplateDiversityBias *float64

	// CoincidenceEpsilon is the coordinate tolerance relative to the nominal
	// glyph box size.
	CoincidenceEpsilon *float64

	// Ranges replaces DefaultRanges when set.
	Ranges *Ranges
}

// Merge returns c with every field that is set in over replaced.
func (c Config) Merge(over Config) Config {
	if over.Preset != "" {
		c.Preset = over.Preset
	}
	setIf(&c.StrokeWidthRatio, over.StrokeWidthRatio)
	setIf(&c.JoinStyle, over.JoinStyle)
	setIf(&c.CapStyle, over.CapStyle)
	setIf(&c.SerifLength, over.SerifLength)
	setIf(&c.CornerRounding, over.CornerRounding)
	setIf(&c.SlantAngle, over.SlantAngle)
	setIf(&c.CurvatureBias, over.CurvatureBias)
	setIf(&c.AnchorJitter, over.AnchorJitter)
	setIf(&c.DotFrequency, over.DotFrequency)
	setIf(&c.BarFrequency, over.BarFrequency)
	setIf(&c.FlourishProbability, over.FlourishProbability)
	setIf(&c.ComponentReuse, over.ComponentReuse)
	setIf(&c.TemplateDiversityBias, over.TemplateDiversityBias)
	setIf(&c.CoincidenceEpsilon, over.CoincidenceEpsilon)
	setIf(&c.Ranges, over.Ranges)
	return c
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// Resolve expands the preset, if any, under the explicit overrides and
// validates the result. The returned Config has an empty Preset.
func (c Config) Resolve() (Config, error) {
	out := c
	if c.Preset != "" {
		p, err := Preset(c.Preset)
		if err != nil {
			return Config{}, err
		}
		out = p.Merge(c)
	}
	out.Preset = ""
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks every set override against its allowed interval.
func (c Config) Validate() error {
	checks := []struct {
		name   string
		v      *float64
		lo, hi float64
	}{
		{"strokeWidthRatio", c.StrokeWidthRatio, 1e-3, 0.5},
		{"serifLength", c.SerifLength, 0, 4},
		{"cornerRounding", c.CornerRounding, 0, 1},
		{"slantAngle", c.SlantAngle, -0.6, 0.6},
		{"curvatureBias", c.CurvatureBias, 0, 1},
		{"anchorJitter", c.AnchorJitter, 0, 1},
		{"dotFrequency", c.DotFrequency, 0, 1},
		{"barFrequency", c.BarFrequency, 0, 1},
		{"flourishProbability", c.FlourishProbability, 0, 1},
		{"componentReuse", c.ComponentReuse, 0, 1},
		{"templateDiversityBias", c.TemplateDiversityBias, 0, 1},
		{"coincidenceEpsilon", c.CoincidenceEpsilon, 1e-9, 1e-2},
	}
	for _, ck := range checks {
		if ck.v == nil {
			continue
		}
		if v := *ck.v; math.IsNaN(v) || v < ck.lo || v > ck.hi {
			return invalidf("%s = %v outside [%v, %v]", ck.name, v, ck.lo, ck.hi)
		}
	}
	if c.JoinStyle != nil && int(*c.JoinStyle) >= len(joinNames) {
		return invalidf("join style %d", *c.JoinStyle)
	}
	if c.CapStyle != nil && int(*c.CapStyle) >= len(capNames) {
		return invalidf("cap style %d", *c.CapStyle)
	}
	if c.Ranges != nil {
		return c.Ranges.validate()
	}
	return nil
}

// DiversityBias returns the template diversity bias with its default.
func (c Config) DiversityBias() float64 {
	if c.TemplateDiversityBias == nil {
		return DefaultDiversityBias
	}
	return *c.TemplateDiversityBias
}

// Epsilon returns the relative coincidence tolerance with its default.
func (c Config) Epsilon() float64 {
	if c.CoincidenceEpsilon == nil {
		return DefaultCoincidenceEpsilon
	}
	return *c.CoincidenceEpsilon
}

// ranges returns the effective draw ranges.
func (c Config) ranges() Ranges {
	if c.Ranges != nil {
		return *c.Ranges
	}
	return DefaultRanges()
}

// Fingerprint returns a canonical text form of the config, equal for
// configs that derive the same style.
func (c Config) Fingerprint() string {
	var b strings.Builder
	b.WriteString(c.Preset)
	for _, v := range []*float64{
		c.StrokeWidthRatio, c.SerifLength, c.CornerRounding, c.SlantAngle,
		c.CurvatureBias, c.AnchorJitter, c.TemplateDiversityBias, c.CoincidenceEpsilon,
		c.DotFrequency, c.BarFrequency, c.FlourishProbability, c.ComponentReuse,
	} {
		b.WriteByte('|')
		if v != nil {
			fmt.Fprintf(&b, "%x", math.Float64bits(*v))
		}
	}
	b.WriteByte('|')
	if c.JoinStyle != nil {
		b.WriteString(c.JoinStyle.String())
	}
	b.WriteByte('|')
	if c.CapStyle != nil {
		b.WriteString(c.CapStyle.String())
	}
	b.WriteByte('|')
	if c.Ranges != nil {
		fmt.Fprintf(&b, "%v", *c.Ranges)
	}
	return b.String()
}

// Float returns a pointer to v, for building Config literals.
func Float(v float64) *float64 { return &v }
