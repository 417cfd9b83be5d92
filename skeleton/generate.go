package skeleton

import (
	"fmt"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/rng"
	"github.com/gogpu/glyphforge/template"
)

// DefaultMaxAttempts bounds the re-draws after a degenerate instantiation.
const DefaultMaxAttempts = 6

// Metrics are the glyph-space lines and advance width nodes are placed
// against, in em.
type Metrics struct {
	XHeight   float64
	CapHeight float64
	Descender float64 // positive distance below the baseline
	Width     float64
}

// Constraints parameterize one instantiation.
type Constraints struct {
	Letter  string
	Metrics Metrics

	// CurvatureBias in [0,1] scales curved-edge bulges between 30% and 100%
	// of the drawn value.
	CurvatureBias float64

	// AnchorJitter in [0,1] is the fraction of each node range that is used
	// around its midpoint. Zero places every node at its nominal position.
	AnchorJitter float64

	// Epsilon is the absolute coincidence tolerance in em.
	Epsilon float64

	// MaxAttempts bounds degenerate re-draws. Zero means DefaultMaxAttempts.
	MaxAttempts int
}

// Generate instantiates t with draws from s.
//
// Draw order per attempt: for each node in template order an x draw then a y
// draw; then for each edge in template order a curvature draw and a skew
// draw. Straight edges consume their draws too. A degenerate attempt is
// followed by a fresh attempt continuing on the same stream.
func Generate(t *template.Template, s *rng.Stream, c Constraints) (*Graph, error) {
	if err := template.Validate(t); err != nil {
		return nil, err
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	eps := c.Epsilon
	if eps <= 0 {
		eps = 1e-6
	}

	var last error
	for range attempts {
		g := instantiate(t, s, c)
		err := g.Check(eps)
		if err == nil {
			return g, nil
		}
		last = err
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %w",
		ErrSkeletonGenerationExhausted, t.ID, attempts, last)
}

func instantiate(t *template.Template, s *rng.Stream, c Constraints) *Graph {
	m := c.Metrics
	g := &Graph{
		Letter:     c.Letter,
		TemplateID: t.ID,
		Nodes:      make([]Node, len(t.Nodes)),
		Edges:      make([]Edge, len(t.Edges)),
	}

	for i, n := range t.Nodes {
		ux := s.Float64()
		uy := s.Float64()
		x := m.Width * perturb(n.X, ux, c.AnchorJitter)
		y := anchorLine(n.Role, m) + m.XHeight*perturb(n.Y, uy, c.AnchorJitter)
		g.Nodes[i] = Node{ID: n.ID, Role: n.Role, Pos: geom.Pt(x, y)}
	}

	scale := 0.3 + 0.7*clamp01(c.CurvatureBias)
	for i, e := range t.Edges {
		ub := s.Float64()
		us := s.Float64()
		from, to := t.NodeIndex(e.From), t.NodeIndex(e.To)
		p0, p1 := g.Nodes[from].Pos, g.Nodes[to].Pos

		curve := geom.LineCubic(p0, p1)
		if e.Kind == template.Curved {
			bulge := (e.Curvature.Min + e.Curvature.Span()*ub) * scale
			skew := (us - 0.5) * 0.3
			curve = geom.ArcCubic(p0, p1, bulge, skew)
		}
		g.Edges[i] = Edge{From: from, To: to, Kind: e.Kind, Curve: curve}
	}
	return g
}

// perturb maps u in [0,1) into r, shrunk around its midpoint by jitter.
func perturb(r template.Range, u, jitter float64) float64 {
	return r.Mid() + r.Span()*(u-0.5)*clamp01(jitter)
}

// anchorLine returns the y of the metric line a role is pinned to.
// Unanchored roles measure from the baseline.
func anchorLine(role template.Role, m Metrics) float64 {
	switch role {
	case template.RoleXHeight:
		return m.XHeight
	case template.RoleCapTop:
		return m.CapHeight
	case template.RoleDescender:
		return -m.Descender
	}
	return 0
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
