package glyphforge

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glyphforge/internal/cache"
	"github.com/gogpu/glyphforge/internal/parallel"
	"github.com/gogpu/glyphforge/internal/stroke"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
	"github.com/gogpu/glyphforge/template"
	"github.com/gogpu/glyphforge/validate"
)

// familyTags restricts the templates some letters may use.
var familyTags = map[string][]string{
	"A": {"triad"},
	"O": {"bowl"},
	"X": {"crossing"},
}

// selectionOrder lists constrained letters first, then the rest
// alphabetically, so that constrained letters pick from an unused pool.
var selectionOrder = func() []string {
	var constrained, rest []string
	for _, r := range Letters {
		l := string(r)
		if _, ok := familyTags[l]; ok {
			constrained = append(constrained, l)
		} else {
			rest = append(rest, l)
		}
	}
	return append(constrained, rest...)
}()

// Generator builds alphabets. It is safe for concurrent use.
type Generator struct {
	opts  options
	cache *cache.Cache[string, *Alphabet]
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{
		opts:  o,
		cache: cache.New[string, *Alphabet](o.cacheSize),
	}
}

// CacheStats is a snapshot of the alphabet cache counters.
type CacheStats = cache.Stats

// CacheStats returns the alphabet cache counters.
func (g *Generator) CacheStats() CacheStats {
	return g.cache.Stats()
}

// Generate builds the alphabet for seed with the default generator.
func Generate(ctx context.Context, seed rng.Seed, cfg style.Config) (*Alphabet, error) {
	return New().Generate(ctx, seed, cfg)
}

// Generate builds the 26 glyphs for seed. The same seed and config always
// produce the same alphabet.
//
// A letter whose skeleton degenerates or whose outline cannot be resolved
// is retried with fresh draws up to the retry budget. If a letter still
// fails, the error is an *AlphabetGenerationFailedError for the first such
// letter in alphabetical order. Cancelling ctx stops between attempts.
func (g *Generator) Generate(ctx context.Context, seed rng.Seed, cfg style.Config) (*Alphabet, error) {
	key := seed.String() + "#" + cfg.Fingerprint()
	if a, ok := g.cache.Get(key); ok {
		return a, nil
	}

	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	ss, err := rng.Fork(seed, rng.Path{"style"})
	if err != nil {
		return nil, err
	}
	shared, err := style.Derive(ss, resolved)
	if err != nil {
		return nil, err
	}

	plan, err := g.selectTemplates(seed, resolved.DiversityBias())
	if err != nil {
		return nil, err
	}

	exp := g.opts.expander
	if exp == nil {
		exp = stroke.NewExpander(resolved.Epsilon())
	}
	run := letterRun{
		seed:    seed,
		style:   shared,
		eps:     resolved.Epsilon() * shared.BoxSize(),
		exp:     exp,
		budget:  g.opts.retryBudget,
		plan:    plan,
		letters: make([]*Glyph, len(Letters)),
	}
	if shared.ComponentReuse > 0 {
		cs, err := rng.Fork(seed, rng.Path{"components"})
		if err != nil {
			return nil, err
		}
		if run.components, err = skeleton.NewComponents(cs, shared.ComponentReuse); err != nil {
			return nil, err
		}
	}

	pool := parallel.NewPool(g.opts.workers)
	defer pool.Close()
	errs := pool.Map(ctx, len(Letters), run.build)
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	a := &Alphabet{seed: slices.Clone(seed), style: shared, glyphs: run.letters}
	if g.opts.validation {
		a.report = g.validate(a)
	}
	g.cache.Set(key, a)

	Logger().Info("glyphforge: alphabet generated",
		"seed", seed.String(),
		"stroke_width_ratio", shared.StrokeWidthRatio,
		"join", shared.Join.String(),
		"cap", shared.Cap.String(),
		"serifs", shared.HasSerifs(),
	)
	return a, nil
}

// GenerateBatch builds one alphabet per seed, running up to the worker
// count of alphabets at once. Results are in seed order. The first error
// cancels the remaining work.
func (g *Generator) GenerateBatch(ctx context.Context, seeds []rng.Seed, cfg style.Config) ([]*Alphabet, error) {
	out := make([]*Alphabet, len(seeds))
	eg, ctx := errgroup.WithContext(ctx)
	if g.opts.workers > 0 {
		eg.SetLimit(g.opts.workers)
	}
	for i, seed := range seeds {
		eg.Go(func() error {
			a, err := g.Generate(ctx, seed, cfg)
			if err != nil {
				return fmt.Errorf("glyphforge: seed %s: %w", seed, err)
			}
			out[i] = a
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// selectTemplates picks every letter's template sequentially so that usage
// counts, and therefore the choices, are deterministic. The result is in
// Letters order.
func (g *Generator) selectTemplates(seed rng.Seed, bias float64) ([]*template.Template, error) {
	plan := make([]*template.Template, len(Letters))
	usage := make(map[string]int)
	for _, l := range selectionOrder {
		i := strings.Index(Letters, l)
		s, err := rng.Fork(seed, rng.Path{"glyph", l, "template"})
		if err != nil {
			return nil, err
		}

		var avoid []string
		for _, j := range []int{i - 1, i + 1} {
			if j >= 0 && j < len(plan) && plan[j] != nil {
				avoid = append(avoid, plan[j].ID)
			}
		}
		t, err := skeleton.Select(g.opts.library, s, skeleton.SelectOptions{
			Tags:  familyTags[l],
			Usage: usage,
			Avoid: avoid,
			Bias:  bias,
		})
		if err != nil {
			return nil, fmt.Errorf("glyphforge: letter %s: %w", l, err)
		}
		usage[t.ID]++
		plan[i] = t
		Logger().Debug("glyphforge: template selected", "letter", l, "template", t.ID)
	}
	return plan, nil
}

// letterRun holds the read-only inputs shared by the letter tasks of one
// alphabet. Each task writes only its own slot of letters.
type letterRun struct {
	seed    rng.Seed
	style   style.Vector
	eps     float64
	exp     Expander
	budget  int
	plan    []*template.Template
	letters []*Glyph

	// components is the shared component set, nil without reuse.
	components *skeleton.Components
}

// build generates letter i, retrying recoverable failures.
func (r *letterRun) build(ctx context.Context, i int) error {
	l := string(Letters[i])
	tpl := r.plan[i]

	var last error
	for attempt := range r.budget {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("glyphforge: letter %s: %w", l, err)
		}
		glyph, err := r.attempt(l, tpl, attempt)
		if err == nil {
			r.letters[i] = glyph
			Logger().Debug("glyphforge: letter done", "letter", l, "template", tpl.ID, "attempt", attempt)
			return nil
		}
		if !retryable(err) {
			return &AlphabetGenerationFailedError{Letter: l, Attempts: attempt + 1, Cause: err}
		}
		last = err
		Logger().Warn("glyphforge: retrying letter", "letter", l, "attempt", attempt, "err", err)
	}
	return &AlphabetGenerationFailedError{Letter: l, Attempts: r.budget, Cause: last}
}

// attempt runs one skeleton and expansion pass for letter l.
func (r *letterRun) attempt(l string, tpl *template.Template, n int) (*Glyph, error) {
	path := rng.Path{"glyph", l}
	if n > 0 {
		path = append(path, "retry:"+strconv.Itoa(n))
	}
	base, err := rng.Fork(r.seed, path)
	if err != nil {
		return nil, err
	}
	ks, err := base.Fork("skeleton")
	if err != nil {
		return nil, err
	}

	v := r.style
	graph, err := skeleton.Generate(tpl, ks, skeleton.Constraints{
		Letter: l,
		Metrics: skeleton.Metrics{
			XHeight:   v.XHeight,
			CapHeight: v.CapHeight,
			Descender: v.Descender,
			Width:     v.Width,
		},
		CurvatureBias: v.CurvatureBias,
		AnchorJitter:  v.AnchorJitter,
		Epsilon:       r.eps,
	})
	if err != nil {
		return nil, err
	}
	if v.Ornamented() {
		if err := r.ornament(graph, base); err != nil {
			return nil, err
		}
	}

	jv, err := style.Jitter(v, base, l)
	if err != nil {
		return nil, err
	}
	outline, err := r.exp.Expand(graph, jv)
	if err != nil {
		return nil, err
	}
	return &Glyph{
		Letter:     l,
		TemplateID: tpl.ID,
		Skeleton:   graph,
		Outline:    outline,
		Style:      jv,
		Attempt:    n,
	}, nil
}

// ornament adds decorations and possibly one shared component to graph,
// drawing from base forked under "ornament".
func (r *letterRun) ornament(graph *skeleton.Graph, base *rng.Stream) error {
	ds, err := base.Fork("ornament")
	if err != nil {
		return err
	}
	v := r.style
	skeleton.Decorate(graph, ds, skeleton.Ornaments{
		DotFrequency:        v.DotFrequency,
		BarFrequency:        v.BarFrequency,
		FlourishProbability: v.FlourishProbability,
		StrokeWidth:         v.StrokeWidth(),
		Width:               v.Width,
	})
	if r.components != nil && ds.Bool(v.ComponentReuse) {
		c := r.components.Pick(ds)
		if skeleton.Attach(graph, c, ds, v.XHeight, r.eps) {
			Logger().Debug("glyphforge: component attached", "letter", graph.Letter, "component", c.Name)
		}
	}
	return nil
}

// validate measures the alphabet and logs every finding.
func (g *Generator) validate(a *Alphabet) *validate.Report {
	inputs := make([]validate.Input, 0, a.Len())
	for l, glyph := range a.All() {
		inputs = append(inputs, validate.Input{Letter: l, Outline: glyph.Outline, Box: glyph.Box()})
	}
	report := validate.Alphabet(inputs, g.opts.validateOpt)
	for _, f := range report.Findings {
		Logger().Warn("glyphforge: validation finding", "letter", f.Letter, "check", f.Check, "detail", f.Detail)
	}
	for _, p := range report.Similar {
		Logger().Warn("glyphforge: letters look alike", "a", p.A, "b", p.B, "distance", p.Distance)
	}
	return report
}
