package glyphforge

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
	"github.com/gogpu/glyphforge/validate"
)

// Letters is the generated alphabet in order.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Glyph is one generated letter. Glyphs are shared by cached alphabets and
// must not be modified.
type Glyph struct {
	Letter     string
	TemplateID string
	Skeleton   *skeleton.Graph
	Outline    geom.Outline

	// Style is the jittered style the letter was drawn with.
	Style style.Vector

	// Attempt is the zero-based attempt that succeeded.
	Attempt int
}

// Box returns the nominal glyph box: the advance width by the span from
// descender to cap height.
func (g *Glyph) Box() geom.Rect {
	return geom.NewRect(
		geom.Pt(0, -g.Style.Descender),
		geom.Pt(g.Style.Width, g.Style.CapHeight),
	)
}

// Alphabet is the immutable result of one generation run.
type Alphabet struct {
	seed   rng.Seed
	style  style.Vector
	glyphs []*Glyph // in Letters order
	report *validate.Report
}

// Seed returns a copy of the seed the alphabet was generated from.
func (a *Alphabet) Seed() rng.Seed {
	return slices.Clone(a.seed)
}

// Style returns the shared style vector.
func (a *Alphabet) Style() style.Vector {
	return a.style
}

// Len returns the number of glyphs.
func (a *Alphabet) Len() int {
	return len(a.glyphs)
}

// Glyph returns the glyph for letter. Lower-case and full-width forms and
// surrounding space are accepted.
func (a *Alphabet) Glyph(letter string) (*Glyph, bool) {
	// A Caser keeps state between calls and cannot be shared.
	key := cases.Upper(language.Und).String(width.Narrow.String(strings.TrimSpace(letter)))
	i := strings.Index(Letters, key)
	if len(key) != 1 || i < 0 {
		return nil, false
	}
	return a.glyphs[i], true
}

// Letters returns the letters of the alphabet in order.
func (a *Alphabet) Letters() []string {
	out := make([]string, len(a.glyphs))
	for i, g := range a.glyphs {
		out[i] = g.Letter
	}
	return out
}

// All iterates over the glyphs in letter order.
func (a *Alphabet) All() iter.Seq2[string, *Glyph] {
	return func(yield func(string, *Glyph) bool) {
		for _, g := range a.glyphs {
			if !yield(g.Letter, g) {
				return
			}
		}
	}
}

// Report returns the validation report, or nil when the generator ran
// without validation.
func (a *Alphabet) Report() *validate.Report {
	return a.report
}
