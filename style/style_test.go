package style

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/glyphforge/rng"
)

func stream(t *testing.T, seed int64, path ...string) *rng.Stream {
	t.Helper()
	s, err := rng.Fork(rng.SeedFromInt(seed), path)
	if err != nil {
		t.Fatalf("Fork: %v", err)
	}
	return s
}

func TestDerive_Deterministic(t *testing.T) {
	a, err := Derive(stream(t, 42, "style"), Config{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := Derive(stream(t, 42, "style"), Config{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same stream derived different styles (-first +second):\n%s", diff)
	}
}

func TestDerive_WithinRanges(t *testing.T) {
	r := DefaultRanges()
	for seed := range int64(200) {
		v, err := Derive(stream(t, seed, "style"), Config{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		in := func(name string, x float64, s Span) {
			if x < s.Min || x > s.Max {
				t.Errorf("seed %d: %s = %v outside [%v, %v]", seed, name, x, s.Min, s.Max)
			}
		}
		in("XHeight", v.XHeight, r.XHeight)
		in("Descender", v.Descender, r.Descender)
		in("Width", v.Width, r.Width)
		in("StrokeWidthRatio", v.StrokeWidthRatio, r.StrokeWidthRatio)
		in("CurvatureBias", v.CurvatureBias, r.CurvatureBias)
		if v.CapHeight <= v.XHeight {
			t.Errorf("seed %d: cap height %v not above x-height %v", seed, v.CapHeight, v.XHeight)
		}
		if v.SerifLength != 0 {
			in("SerifLength", v.SerifLength, r.SerifLength)
		}
		if v.JitterBound != r.Jitter {
			t.Errorf("seed %d: JitterBound = %v, want %v", seed, v.JitterBound, r.Jitter)
		}
	}
}

// Overriding one parameter must leave every other drawn value untouched.
func TestDerive_OverrideKeepsOtherDraws(t *testing.T) {
	plain, err := Derive(stream(t, 7, "style"), Config{})
	if err != nil {
		t.Fatal(err)
	}
	round := JoinRound
	over, err := Derive(stream(t, 7, "style"), Config{
		StrokeWidthRatio: Float(0.2),
		JoinStyle:        &round,
	})
	if err != nil {
		t.Fatal(err)
	}
	if over.StrokeWidthRatio != 0.2 || over.Join != JoinRound {
		t.Errorf("overrides not applied: %+v", over)
	}
	opts := cmpopts.IgnoreFields(Vector{}, "StrokeWidthRatio", "Join")
	if diff := cmp.Diff(plain, over, opts); diff != "" {
		t.Errorf("override shifted other parameters (-plain +override):\n%s", diff)
	}
}

func TestDerive_Preset(t *testing.T) {
	v, err := Derive(stream(t, 1, "style"), Config{Preset: "Blocky"})
	if err != nil {
		t.Fatal(err)
	}
	if v.StrokeWidthRatio != 0.24 || v.Join != JoinMiter || v.Cap != CapFlat {
		t.Errorf("preset not applied: %+v", v)
	}

	// Explicit overrides win over the preset.
	v, err = Derive(stream(t, 1, "style"), Config{Preset: "blocky", StrokeWidthRatio: Float(0.15)})
	if err != nil {
		t.Fatal(err)
	}
	if v.StrokeWidthRatio != 0.15 {
		t.Errorf("StrokeWidthRatio = %v, want explicit 0.15", v.StrokeWidthRatio)
	}

	for _, name := range PresetNames() {
		if _, err := (Config{Preset: name}).Resolve(); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestDerive_Ornaments(t *testing.T) {
	plain, err := Derive(stream(t, 3, "style"), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if plain.Ornamented() {
		t.Errorf("default ranges produced ornaments: %+v", plain)
	}

	r := DefaultRanges()
	r.DotFrequency = Span{0.1, 0.3}
	r.ComponentReuse = Span{0, 0.6}
	ranged, err := Derive(stream(t, 3, "style"), Config{Ranges: &r})
	if err != nil {
		t.Fatal(err)
	}
	if ranged.DotFrequency < 0.1 || ranged.DotFrequency > 0.3 {
		t.Errorf("DotFrequency = %v outside its range", ranged.DotFrequency)
	}
	if !ranged.Ornamented() {
		t.Error("ranged style is not ornamented")
	}
	// Ornaments are drawn last, so everything before them is unchanged.
	if ranged.XHeight != plain.XHeight || ranged.AnchorJitter != plain.AnchorJitter {
		t.Error("ornament ranges changed earlier draws")
	}

	ornate, err := Derive(stream(t, 3, "style"), Config{Preset: "ornate"})
	if err != nil {
		t.Fatal(err)
	}
	if ornate.FlourishProbability != 0.15 || ornate.ComponentReuse != 0.5 {
		t.Errorf("ornate preset not applied: %+v", ornate)
	}
}

func TestConfig_Invalid(t *testing.T) {
	bad := JoinStyle(9)
	inverted := DefaultRanges()
	inverted.Width = Span{0.7, 0.5}
	likely := DefaultRanges()
	likely.DotFrequency = Span{0.5, 1.5}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"stroke too wide", Config{StrokeWidthRatio: Float(0.9)}},
		{"negative serif", Config{SerifLength: Float(-1)}},
		{"bias above one", Config{TemplateDiversityBias: Float(1.5)}},
		{"nan rounding", Config{CornerRounding: Float(math.NaN())}},
		{"bad enum", Config{JoinStyle: &bad}},
		{"unknown preset", Config{Preset: "baroque"}},
		{"inverted range", Config{Ranges: &inverted}},
		{"dot frequency above one", Config{DotFrequency: Float(1.2)}},
		{"negative reuse", Config{ComponentReuse: Float(-0.1)}},
		{"ornament range above one", Config{Ranges: &likely}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(stream(t, 1, "style"), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Derive error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestJitter_Bounded(t *testing.T) {
	base, err := Derive(stream(t, 42, "style"), Config{SerifLength: Float(1)})
	if err != nil {
		t.Fatal(err)
	}
	for _, letter := range []string{"A", "B", "Q", "Z"} {
		j, err := Jitter(base, stream(t, 42, "glyph", letter), letter)
		if err != nil {
			t.Fatal(err)
		}
		ratio := j.StrokeWidthRatio / base.StrokeWidthRatio
		if math.Abs(ratio-1) > base.JitterBound {
			t.Errorf("%s: stroke ratio deviates by %v, bound %v", letter, ratio-1, base.JitterBound)
		}
		if math.Abs(j.SlantAngle-base.SlantAngle) > base.JitterBound*slantJitter {
			t.Errorf("%s: slant deviates too far", letter)
		}
		if j.XHeight != base.XHeight || j.Width != base.Width || j.Join != base.Join {
			t.Errorf("%s: jitter changed metrics or enums", letter)
		}
	}

	a, _ := Jitter(base, stream(t, 42, "glyph", "A"), "A")
	b, _ := Jitter(base, stream(t, 42, "glyph", "B"), "B")
	if a.StrokeWidthRatio == b.StrokeWidthRatio {
		t.Error("different letters received identical jitter")
	}
}

func TestEnums_Text(t *testing.T) {
	var j JoinStyle
	if err := j.UnmarshalText([]byte("BEVEL")); err != nil || j != JoinBevel {
		t.Errorf("UnmarshalText(BEVEL) = %v, %v", j, err)
	}
	var c CapStyle
	if err := c.UnmarshalText([]byte("butt")); err != nil || c != CapFlat {
		t.Errorf("UnmarshalText(butt) = %v, %v", c, err)
	}
	if err := c.UnmarshalText([]byte("pointy")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("UnmarshalText(pointy) error = %v", err)
	}
	text, err := CapSquare.MarshalText()
	if err != nil || string(text) != "square" {
		t.Errorf("MarshalText = %q, %v", text, err)
	}
	if _, err := JoinStyle(7).MarshalText(); err == nil {
		t.Error("MarshalText accepted an invalid join style")
	}
}

func TestConfig_FingerprintAndDefaults(t *testing.T) {
	a := Config{StrokeWidthRatio: Float(0.2)}
	b := Config{StrokeWidthRatio: Float(0.2)}
	c := Config{StrokeWidthRatio: Float(0.21)}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal configs have different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different configs share a fingerprint")
	}
	if (Config{}).DiversityBias() != DefaultDiversityBias {
		t.Error("DiversityBias default")
	}
	if (Config{}).Epsilon() != DefaultCoincidenceEpsilon {
		t.Error("Epsilon default")
	}
}
