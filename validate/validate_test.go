package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glyphforge/geom"
)

var unitBox = geom.NewRect(geom.Pt(0, 0), geom.Pt(1, 1))

func rect(x0, y0, x1, y1 float64) geom.Contour {
	return geom.Contour{Points: []geom.Point{
		geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1),
	}}
}

func hole(x0, y0, x1, y1 float64) geom.Contour {
	c := rect(x0, y0, x1, y1)
	c.Points = geom.Reverse(c.Points)
	c.Hole = true
	return c
}

func outline(cs ...geom.Contour) geom.Outline {
	return geom.Outline{Contours: cs}
}

func checks(fs []Finding) []string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Check)
	}
	return out
}

func TestGlyph_HalfBox(t *testing.T) {
	m, f, findings := Glyph(Input{Letter: "I", Outline: outline(rect(0, 0, 0.5, 1)), Box: unitBox}, Options{})

	assert.InDelta(t, 0.5, m.Coverage, 0.01)
	assert.Equal(t, 1, m.Components)
	assert.Zero(t, m.Holes)
	assert.True(t, m.Simple)
	assert.Empty(t, findings)

	assert.InDelta(t, 0.25, f.Centroid.X, 0.01)
	assert.InDelta(t, 0.5, f.Centroid.Y, 0.01)
	assert.InDelta(t, 0.5, f.Aspect, 0.05)
	assert.InDelta(t, 1, f.Grid[0], 0.01, "top-left cell is fully inked")
	assert.InDelta(t, 0, f.Grid[GridSize-1], 0.01, "top-right cell is empty")
}

func TestGlyph_HoleIsNotInked(t *testing.T) {
	o := outline(rect(0, 0, 1, 1), hole(0.25, 0.25, 0.75, 0.75))
	m, _, findings := Glyph(Input{Letter: "O", Outline: o, Box: unitBox}, Options{})

	assert.InDelta(t, 0.75, m.Coverage, 0.01)
	assert.Equal(t, 1, m.Holes)
	assert.Empty(t, findings)
}

func TestGlyph_ComponentsFromInk(t *testing.T) {
	tests := []struct {
		name string
		o    geom.Outline
		want int
	}{
		{"overlapping outers", outline(rect(0, 0, 0.5, 0.5), rect(0.4, 0.4, 0.9, 0.9)), 1},
		{"outers sharing an edge", outline(rect(0, 0, 0.5, 1), rect(0.5, 0.2, 0.8, 0.6)), 1},
		{"island inside a counter", outline(
			rect(0, 0, 1, 1), hole(0.2, 0.2, 0.8, 0.8), rect(0.4, 0.4, 0.6, 0.6),
		), 2},
		{"separate strokes", outline(rect(0, 0, 0.2, 1), rect(0.6, 0, 0.8, 1)), 2},
		{"empty", outline(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f, _ := Glyph(Input{Letter: "E", Outline: tt.o, Box: unitBox}, Options{})
			assert.Equal(t, tt.want, m.Components)
			assert.Equal(t, m.Components, f.Components)
		})
	}
}

func TestGlyph_Findings(t *testing.T) {
	var dots []geom.Contour
	for i := range 9 {
		x := 0.1 * float64(i)
		dots = append(dots, rect(x, 0.4, x+0.05, 0.6))
	}
	bowtie := geom.Contour{Points: []geom.Point{
		geom.Pt(0, 0), geom.Pt(0.5, 0.5), geom.Pt(0.5, 0), geom.Pt(0, 0.5),
	}}

	tests := []struct {
		name string
		o    geom.Outline
		want []string
	}{
		{"empty", outline(), []string{CheckCoverage}},
		{"full", outline(rect(0, 0, 1, 1)), []string{CheckCoverage}},
		{"fragmented", outline(dots...), []string{CheckComponents}},
		{"self-intersecting", outline(bowtie, rect(0.6, 0, 0.9, 1)), []string{CheckSimple}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, findings := Glyph(Input{Letter: "Q", Outline: tt.o, Box: unitBox}, Options{})
			assert.Equal(t, tt.want, checks(findings))
			for _, f := range findings {
				assert.Equal(t, "Q", f.Letter)
				assert.NotEmpty(t, f.String())
			}
		})
	}
}

func TestDistance(t *testing.T) {
	_, a, _ := Glyph(Input{Outline: outline(rect(0, 0, 0.5, 1)), Box: unitBox}, Options{})
	_, b, _ := Glyph(Input{Outline: outline(rect(0.5, 0, 1, 1)), Box: unitBox}, Options{})

	assert.Zero(t, Distance(a, a))
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
	assert.Greater(t, Distance(a, b), 0.5)

	withHole := a
	withHole.Holes = 2
	assert.InDelta(t, 2*holePenalty, Distance(a, withHole), 1e-12)
}

func TestAlphabet_ReportsSimilarPairs(t *testing.T) {
	inputs := []Input{
		{Letter: "L", Outline: outline(rect(0, 0, 0.3, 1), rect(0.3, 0, 0.9, 0.3)), Box: unitBox},
		{Letter: "I", Outline: outline(rect(0.35, 0, 0.65, 1)), Box: unitBox},
		{Letter: "J", Outline: outline(rect(0.36, 0, 0.66, 1)), Box: unitBox},
	}
	r := Alphabet(inputs, Options{})

	require.Len(t, r.Metrics, 3)
	require.Len(t, r.Features, 3)
	require.Len(t, r.Similar, 1)
	assert.Equal(t, "I", r.Similar[0].A)
	assert.Equal(t, "J", r.Similar[0].B)
	assert.False(t, r.OK())
	assert.Empty(t, r.Findings)
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultResolution, o.Resolution)
	assert.Equal(t, DefaultSimilarity, o.Similarity)

	o = Options{Resolution: 30}.withDefaults()
	assert.Equal(t, 24, o.Resolution)
}

func BenchmarkGlyph(b *testing.B) {
	in := Input{Letter: "O", Outline: outline(rect(0, 0, 1, 1), hole(0.25, 0.25, 0.75, 0.75)), Box: unitBox}
	for b.Loop() {
		Glyph(in, Options{})
	}
}
