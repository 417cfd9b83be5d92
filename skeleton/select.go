package skeleton

import (
	"math"
	"slices"

	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/template"
)

// SelectOptions steer template selection for one letter.
type SelectOptions struct {
	// Tags restricts the candidates to templates carrying any of the tags.
	// An empty list, or a list matching nothing, allows the whole library.
	Tags []string

	// Usage counts how often each template ID was already chosen in the run.
	Usage map[string]int

	// Avoid lists template IDs used by adjacent letters.
	Avoid []string

	// Bias in [0,1] is the diversity bias. Each prior use beyond the least
	// used candidate multiplies a template's weight by (1 - Bias).
	Bias float64
}

// Select draws a template from lib.
//
// The weight of candidate t is base(t) * (1-Bias)^(uses(t) - minUses), where
// minUses is the smallest usage count among the candidates. Templates in
// Avoid are excluded while any other candidate keeps a positive weight. If
// every weight is zero the choice falls back to uniform over the candidates
// not in Avoid, or over all candidates when Avoid covers them all.
func Select(lib *template.Library, s *rng.Stream, opts SelectOptions) (*template.Template, error) {
	candidates := lib.WithAnyTag(opts.Tags...)
	if len(candidates) == 0 {
		candidates = lib.List()
	}
	if len(candidates) == 0 {
		return nil, ErrNoTemplates
	}

	minUses := math.MaxInt
	for _, t := range candidates {
		minUses = min(minUses, opts.Usage[t.ID])
	}

	bias := clamp01(opts.Bias)
	weights := make([]float64, len(candidates))
	for i, t := range candidates {
		if slices.Contains(opts.Avoid, t.ID) {
			continue
		}
		excess := opts.Usage[t.ID] - minUses
		weights[i] = t.BaseWeight() * math.Pow(1-bias, float64(excess))
	}
	if i := s.Weighted(weights); i >= 0 {
		return candidates[i], nil
	}

	fallback := slices.DeleteFunc(slices.Clone(candidates), func(t *template.Template) bool {
		return slices.Contains(opts.Avoid, t.ID)
	})
	if len(fallback) == 0 {
		fallback = candidates
	}
	return fallback[s.IntN(len(fallback))], nil
}
