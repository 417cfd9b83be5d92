package glyphforge

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/internal/stroke"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
	"github.com/gogpu/glyphforge/template"
	"github.com/gogpu/glyphforge/validate"
)

func mustGenerate(t *testing.T, g *Generator, seed int64, cfg style.Config) *Alphabet {
	t.Helper()
	a, err := g.Generate(context.Background(), rng.SeedFromInt(seed), cfg)
	if err != nil {
		t.Fatalf("Generate(%d): %v", seed, err)
	}
	return a
}

func mustGlyph(t *testing.T, a *Alphabet, letter string) *Glyph {
	t.Helper()
	g, ok := a.Glyph(letter)
	if !ok {
		t.Fatalf("Glyph(%q) not found", letter)
	}
	return g
}

func TestGenerateLetterA(t *testing.T) {
	a := mustGenerate(t, New(), 42, style.Config{})
	if a.Len() != len(Letters) {
		t.Fatalf("Len() = %d, want %d", a.Len(), len(Letters))
	}

	glyph := mustGlyph(t, a, "A")
	tpl, err := template.ByID(glyph.TemplateID)
	if err != nil {
		t.Fatal(err)
	}
	if !tpl.HasTag("triad") {
		t.Errorf("A uses template %q without the triad tag", glyph.TemplateID)
	}

	g := glyph.Skeleton
	if len(g.Edges) != 3 {
		t.Fatalf("A has %d edges, want 3", len(g.Edges))
	}
	hubs := g.NodesWithRole(template.RoleXHeight)
	if len(hubs) != 1 {
		t.Fatalf("A has %d x-height nodes, want 1", len(hubs))
	}
	if d := g.Degree(hubs[0]); d != 3 {
		t.Errorf("x-height hub degree = %d, want 3", d)
	}

	o := glyph.Outline
	if o.Outers() != 1 || o.Holes() != 0 {
		t.Errorf("A outline has %d outer and %d hole contours, want 1 and 0", o.Outers(), o.Holes())
	}
	for i, c := range o.Contours {
		if !geom.IsSimple(c.Points) {
			t.Errorf("contour %d is not simple", i)
		}
	}

	again := mustGenerate(t, New(), 42, style.Config{})
	if d := cmp.Diff(glyph.Outline, mustGlyph(t, again, "A").Outline); d != "" {
		t.Errorf("A outline differs on regeneration (-first +second):\n%s", d)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := style.Config{Preset: "angular"}
	a := mustGenerate(t, New(WithWorkers(1)), 7, cfg)
	b := mustGenerate(t, New(WithWorkers(8)), 7, cfg)

	if d := cmp.Diff(a.Style(), b.Style()); d != "" {
		t.Errorf("style differs (-1 worker +8 workers):\n%s", d)
	}
	for l, ga := range a.All() {
		gb := mustGlyph(t, b, l)
		if ga.TemplateID != gb.TemplateID {
			t.Errorf("%s: template %s vs %s", l, ga.TemplateID, gb.TemplateID)
		}
		if d := cmp.Diff(ga.Outline, gb.Outline); d != "" {
			t.Errorf("%s: outline differs:\n%s", l, d)
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := mustGenerate(t, New(), 1, style.Config{})
	b := mustGenerate(t, New(), 2, style.Config{})
	if cmp.Equal(a.Style(), b.Style()) {
		t.Error("different seeds produced the same style vector")
	}
}

func TestGenerateRetriesUnresolvedIntersection(t *testing.T) {
	var calls atomic.Int32
	base := stroke.NewExpander(style.DefaultCoincidenceEpsilon)
	exp := ExpanderFunc(func(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
		if g.Letter == "X" && calls.Add(1) == 1 {
			return geom.Outline{}, stroke.ErrUnresolvedSelfIntersection
		}
		return base.Expand(g, v)
	})

	a := mustGenerate(t, New(WithExpander(exp)), 42, style.Config{})
	x := mustGlyph(t, a, "X")
	if x.Attempt < 1 {
		t.Errorf("X succeeded on attempt %d, want a retry", x.Attempt)
	}
	if got := calls.Load(); got < 2 {
		t.Errorf("X expanded %d times, want at least 2", got)
	}
	tpl, err := template.ByID(x.TemplateID)
	if err != nil {
		t.Fatal(err)
	}
	if !tpl.HasTag("crossing") {
		t.Errorf("X uses template %q without the crossing tag", x.TemplateID)
	}
	if x.Outline.Outers() < 1 {
		t.Fatal("X outline has no outer contour")
	}
	for i, c := range x.Outline.Contours {
		if c.Hole != (c.Area() < 0) {
			t.Errorf("contour %d: hole=%v but area=%v", i, c.Hole, c.Area())
		}
	}
}

func TestGenerateRetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	base := stroke.NewExpander(style.DefaultCoincidenceEpsilon)
	exp := ExpanderFunc(func(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
		if g.Letter == "Q" {
			calls.Add(1)
			return geom.Outline{}, stroke.ErrUnresolvedSelfIntersection
		}
		return base.Expand(g, v)
	})

	_, err := New(WithExpander(exp), WithRetryBudget(3)).Generate(context.Background(), rng.SeedFromInt(5), style.Config{})
	if !errors.Is(err, ErrAlphabetGenerationFailed) {
		t.Fatalf("err = %v, want ErrAlphabetGenerationFailed", err)
	}
	if !errors.Is(err, ErrUnresolvedSelfIntersection) {
		t.Errorf("err = %v, want the cause to be kept", err)
	}
	var failed *AlphabetGenerationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %T, want *AlphabetGenerationFailedError", err)
	}
	if failed.Letter != "Q" || failed.Attempts != 3 {
		t.Errorf("failed = {%s %d}, want {Q 3}", failed.Letter, failed.Attempts)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Q expanded %d times, want 3", got)
	}
}

func TestGenerateFatalErrorNotRetried(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	exp := ExpanderFunc(func(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
		if g.Letter == "M" {
			calls.Add(1)
			return geom.Outline{}, boom
		}
		return geom.Outline{}, nil
	})

	_, err := New(WithExpander(exp)).Generate(context.Background(), rng.SeedFromInt(3), style.Config{})
	var failed *AlphabetGenerationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want *AlphabetGenerationFailedError", err)
	}
	if failed.Letter != "M" || failed.Attempts != 1 || !errors.Is(err, boom) {
		t.Errorf("failed = %+v", failed)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("M expanded %d times, want 1", got)
	}
}

func TestGenerateFirstFailureInLetterOrder(t *testing.T) {
	exp := ExpanderFunc(func(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
		if strings.Contains("DKZ", g.Letter) {
			return geom.Outline{}, stroke.ErrUnresolvedSelfIntersection
		}
		return geom.Outline{}, nil
	})
	_, err := New(WithExpander(exp), WithRetryBudget(2)).Generate(context.Background(), rng.SeedFromInt(9), style.Config{})
	var failed *AlphabetGenerationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v", err)
	}
	if failed.Letter != "D" {
		t.Errorf("reported letter %s, want D", failed.Letter)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	_, err := New().Generate(context.Background(), rng.SeedFromInt(1), style.Config{StrokeWidthRatio: style.Float(-1)})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Generate(ctx, rng.SeedFromInt(1), style.Config{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateTemplateDiversity(t *testing.T) {
	a := mustGenerate(t, New(), 11, style.Config{})
	letters := a.Letters()
	for i := 1; i < len(letters); i++ {
		prev := mustGlyph(t, a, letters[i-1])
		cur := mustGlyph(t, a, letters[i])
		if prev.TemplateID == cur.TemplateID {
			t.Errorf("%s and %s share template %s", prev.Letter, cur.Letter, cur.TemplateID)
		}
	}

	used := make(map[string]int)
	for _, g := range a.All() {
		used[g.TemplateID]++
	}
	pool := template.Default().Len()
	limit := (len(Letters) + pool - 1) / pool
	for id, n := range used {
		if n > limit {
			t.Errorf("template %s used %d times, want at most %d", id, n, limit)
		}
	}
}

func TestGenerateConstrainedLetters(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		a := mustGenerate(t, New(), seed, style.Config{})
		for l, tags := range familyTags {
			tpl, err := template.ByID(mustGlyph(t, a, l).TemplateID)
			if err != nil {
				t.Fatal(err)
			}
			if !tpl.HasTag(tags[0]) {
				t.Errorf("seed %d: %s uses %s, want tag %s", seed, l, tpl.ID, tags[0])
			}
		}
	}
}

func TestGenerateStyleCoherence(t *testing.T) {
	a := mustGenerate(t, New(), 21, style.Config{})
	shared := a.Style()
	for l, g := range a.All() {
		v := g.Style
		if v.Join != shared.Join || v.Cap != shared.Cap {
			t.Errorf("%s: join/cap %v/%v, want %v/%v", l, v.Join, v.Cap, shared.Join, shared.Cap)
		}
		if v.XHeight != shared.XHeight || v.Width != shared.Width {
			t.Errorf("%s: metrics changed by jitter", l)
		}
		ratio := v.StrokeWidthRatio / shared.StrokeWidthRatio
		if math.Abs(ratio-1) > shared.JitterBound+1e-12 {
			t.Errorf("%s: stroke width ratio %v outside jitter bound %v", l, ratio, shared.JitterBound)
		}
	}
}

func TestGenerateCache(t *testing.T) {
	g := New(WithCacheSize(4))
	a := mustGenerate(t, g, 42, style.Config{})
	b := mustGenerate(t, g, 42, style.Config{})
	if a != b {
		t.Error("second Generate did not return the cached alphabet")
	}
	c := mustGenerate(t, g, 42, style.Config{Preset: "flowing"})
	if c == a {
		t.Error("different config hit the cache")
	}

	s := g.CacheStats()
	if s.Hits != 1 || s.Misses != 2 || s.Len != 2 {
		t.Errorf("stats = %+v, want 1 hit, 2 misses, 2 entries", s)
	}
}

func TestGenerateBatch(t *testing.T) {
	seeds := []rng.Seed{rng.SeedFromInt(1), rng.SeedFromInt(2), rng.SeedFromInt(1)}
	out, err := New(WithWorkers(2)).GenerateBatch(context.Background(), seeds, style.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(seeds) {
		t.Fatalf("got %d alphabets, want %d", len(out), len(seeds))
	}
	for i, a := range out {
		if !cmp.Equal(a.Seed(), seeds[i]) {
			t.Errorf("alphabet %d has seed %s, want %s", i, a.Seed(), seeds[i])
		}
	}
	if d := cmp.Diff(mustGlyph(t, out[0], "R").Outline, mustGlyph(t, out[2], "R").Outline); d != "" {
		t.Errorf("same seed in one batch produced different outlines:\n%s", d)
	}
}

func TestGenerateBatchError(t *testing.T) {
	seeds := []rng.Seed{rng.SeedFromInt(1), rng.SeedFromInt(2)}
	_, err := New().GenerateBatch(context.Background(), seeds, style.Config{SerifLength: style.Float(-3)})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateWithValidation(t *testing.T) {
	a := mustGenerate(t, New(WithValidation(validate.Options{})), 42, style.Config{})
	r := a.Report()
	if r == nil {
		t.Fatal("Report() = nil with validation enabled")
	}
	if len(r.Metrics) != len(Letters) {
		t.Errorf("report covers %d letters, want %d", len(r.Metrics), len(Letters))
	}
	for l, m := range r.Metrics {
		if m.Coverage <= 0 {
			t.Errorf("%s: coverage %v, want > 0", l, m.Coverage)
		}
	}

	if mustGenerate(t, New(), 42, style.Config{}).Report() != nil {
		t.Error("Report() should be nil without validation")
	}
}

func TestAlphabetGlyphLookup(t *testing.T) {
	a := mustGenerate(t, New(), 4, style.Config{})
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"A", "A", true},
		{"q", "Q", true},
		{" z ", "Z", true},
		{"Ｑ", "Q", true},
		{"ｂ", "B", true},
		{"\u3000ｘ\u3000", "X", true},
		{"ß", "", false},
		{"", "", false},
		{"AB", "", false},
		{"1", "", false},
		{"é", "", false},
	}
	for _, tt := range tests {
		g, ok := a.Glyph(tt.in)
		if ok != tt.ok {
			t.Errorf("Glyph(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && g.Letter != tt.want {
			t.Errorf("Glyph(%q) = %s, want %s", tt.in, g.Letter, tt.want)
		}
	}
	if got := strings.Join(a.Letters(), ""); got != Letters {
		t.Errorf("Letters() = %s", got)
	}
}

func TestAlphabetSeedIsCopy(t *testing.T) {
	a := mustGenerate(t, New(), 8, style.Config{})
	s := a.Seed()
	s[0] ^= 0xff
	if cmp.Equal(s, a.Seed()) {
		t.Error("modifying Seed() result changed the alphabet")
	}
}

func TestGlyphFontOutline(t *testing.T) {
	a := mustGenerate(t, New(), 42, style.Config{})
	g := mustGlyph(t, a, "O")

	fo := g.FontOutline(1000)
	if len(fo.Segments) != g.Outline.NumPoints() {
		t.Fatalf("got %d segments, want %d", len(fo.Segments), g.Outline.NumPoints())
	}
	moves := 0
	for _, s := range fo.Segments {
		if s.Op == ot.SegmentOpMoveTo {
			moves++
		}
	}
	if moves != len(g.Outline.Contours) {
		t.Errorf("got %d moves, want %d", moves, len(g.Outline.Contours))
	}
	first := g.Outline.Contours[0].Points[0]
	if got := fo.Segments[0].Args[0]; math.Abs(float64(got.X)-first.X*1000) > 0.01 {
		t.Errorf("first point x = %v, want %v", got.X, first.X*1000)
	}
	if got, want := g.AdvanceWidth(1000), g.Style.Width*1000; math.Abs(float64(got)-want) > 1e-3 {
		t.Errorf("AdvanceWidth = %v, want %v", got, want)
	}
	for _, upem := range []int{1000, 1024, 2048} {
		if got, want := g.AdvanceWidth(upem), float32(g.Style.Width*float64(upem)); got != want {
			t.Errorf("AdvanceWidth(%d) = %v, want %v", upem, got, want)
		}
	}
}

func TestGeneratePlainByDefault(t *testing.T) {
	a := mustGenerate(t, New(), 42, style.Config{})
	if a.Style().Ornamented() {
		t.Fatalf("default style is ornamented: %+v", a.Style())
	}
	for l, g := range a.All() {
		if n := len(g.Skeleton.Decorations); n != 0 {
			t.Errorf("%s: %d decorations", l, n)
		}
		if g.Skeleton.TemplateEdges() != len(g.Skeleton.Edges) {
			t.Errorf("%s: carries a shared component", l)
		}
	}
}

func TestGenerateOrnaments(t *testing.T) {
	cfg := style.Config{Preset: "ornate", ComponentReuse: style.Float(1)}
	a := mustGenerate(t, New(), 11, cfg)
	v := a.Style()
	if v.DotFrequency != 0.2 || v.FlourishProbability != 0.15 || v.ComponentReuse != 1 {
		t.Fatalf("ornament parameters not applied: %+v", v)
	}

	var decorations, components int
	for l, g := range a.All() {
		tpl, err := template.ByID(g.TemplateID)
		if err != nil {
			t.Fatal(err)
		}
		sk := g.Skeleton
		if sk.TemplateEdges() != len(tpl.Edges) {
			t.Errorf("%s: %d template edges, want %d", l, sk.TemplateEdges(), len(tpl.Edges))
		}
		decorations += len(sk.Decorations)
		names := make(map[string]bool)
		for _, e := range sk.Edges[sk.TemplateEdges():] {
			names[e.Component] = true
		}
		if len(names) > 1 {
			t.Errorf("%s: carries %d components, want at most 1", l, len(names))
		}
		components += len(names)
	}
	// With reuse 1 every letter draws a component; only degenerate
	// placements are dropped.
	if components < len(Letters)/2 {
		t.Errorf("only %d letters carry a component", components)
	}
	if decorations == 0 {
		t.Error("no letter was decorated")
	}

	b := mustGenerate(t, New(WithWorkers(3)), 11, cfg)
	for l, ga := range a.All() {
		if d := cmp.Diff(ga.Outline, mustGlyph(t, b, l).Outline); d != "" {
			t.Errorf("%s: ornamented outline differs on regeneration:\n%s", l, d)
		}
	}
}

func TestGenerateManySeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("generates many alphabets")
	}
	g := New()
	configs := []style.Config{{}, {Preset: "ornate"}, {Preset: "runic"}}
	var letters, retried int
	for _, cfg := range configs {
		for seed := range int64(12) {
			a := mustGenerate(t, g, seed, cfg)
			for l, glyph := range a.All() {
				letters++
				if glyph.Attempt > 0 {
					retried++
					t.Logf("seed %d %q: %s needed %d retries", seed, cfg.Preset, l, glyph.Attempt)
				}
			}
		}
	}
	if retried*50 > letters {
		t.Errorf("%d of %d letters needed a retry", retried, letters)
	}
}

func TestPackageGenerate(t *testing.T) {
	a, err := Generate(context.Background(), rng.SeedFromInt(42), style.Config{})
	if err != nil {
		t.Fatal(err)
	}
	b := mustGenerate(t, New(), 42, style.Config{})
	if d := cmp.Diff(mustGlyph(t, a, "A").Outline, mustGlyph(t, b, "A").Outline); d != "" {
		t.Errorf("package Generate differs from Generator.Generate:\n%s", d)
	}
}

func BenchmarkGenerate(b *testing.B) {
	g := New()
	seed := rng.SeedFromInt(42)
	for b.Loop() {
		if _, err := g.Generate(context.Background(), seed, style.Config{}); err != nil {
			b.Fatal(err)
		}
	}
}
