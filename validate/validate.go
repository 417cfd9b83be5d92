// Package validate measures generated glyphs and flags questionable ones.
//
// Checks are advisory: the generator logs findings as warnings and never
// rejects a glyph because of them. Ink coverage is measured by rasterizing
// the outline into the nominal glyph box with golang.org/x/image/vector.
package validate

import (
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"golang.org/x/image/vector"

	"github.com/gogpu/glyphforge/geom"
)

// Acceptance bounds.
const (
	MinCoverage   = 0.05
	MaxCoverage   = 0.85
	MaxComponents = 8
)

// Defaults for Options.
const (
	DefaultResolution = 64
	DefaultSimilarity = 0.06
)

// GridSize is the side of the coarse ink grid in Features.
const GridSize = 8

// Check names used in findings.
const (
	CheckCoverage   = "coverage"
	CheckComponents = "components"
	CheckSimple     = "simple"
)

// Options tune the measurements. Zero values select the defaults.
type Options struct {
	// Resolution is the side of the square raster, in pixels.
	Resolution int

	// Similarity is the feature distance under which two letters are
	// reported as too alike.
	Similarity float64
}

func (o Options) withDefaults() Options {
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
	// The grid is sampled from whole pixel blocks.
	o.Resolution = max(GridSize, o.Resolution/GridSize*GridSize)
	if o.Similarity <= 0 {
		o.Similarity = DefaultSimilarity
	}
	return o
}

// Input is one glyph to validate.
type Input struct {
	Letter  string
	Outline geom.Outline
	// Box is the nominal glyph box coverage is measured against.
	Box geom.Rect
}

// Metrics are the measured properties of one glyph.
type Metrics struct {
	Coverage float64
	// Components counts the 4-connected ink regions of the raster, so
	// outers that overlap or touch along an edge count once.
	Components int
	Holes      int
	Simple     bool
}

// Features summarize a glyph's shape for distinctiveness comparisons.
type Features struct {
	Coverage   float64
	Holes      int
	Components int
	// Aspect is the ink width over ink height.
	Aspect float64
	// Centroid is the ink centroid in box-relative coordinates.
	Centroid geom.Point
	// Grid holds the ink coverage of GridSize x GridSize cells, row-major
	// from the top.
	Grid [GridSize * GridSize]float64
}

// Finding is one failed check.
type Finding struct {
	Letter string
	Check  string
	Detail string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Letter, f.Check, f.Detail)
}

// Pair is two letters whose features are closer than the similarity
// threshold.
type Pair struct {
	A, B     string
	Distance float64
}

// Report collects the results for an alphabet.
type Report struct {
	Metrics  map[string]Metrics
	Features map[string]Features
	Findings []Finding
	Similar  []Pair
}

// OK reports whether no check failed and no letters were too alike.
func (r *Report) OK() bool {
	return len(r.Findings) == 0 && len(r.Similar) == 0
}

// Glyph measures one glyph and returns its metrics, features and findings.
func Glyph(in Input, opts Options) (Metrics, Features, []Finding) {
	opts = opts.withDefaults()
	alpha := rasterize(in.Outline, in.Box, opts.Resolution)

	m := Metrics{
		Components: components(alpha),
		Holes:      in.Outline.Holes(),
		Simple:     true,
	}
	for _, c := range in.Outline.Contours {
		if !geom.IsSimple(c.Points) {
			m.Simple = false
			break
		}
	}

	f := features(alpha, opts.Resolution)
	m.Coverage = f.Coverage
	f.Holes = m.Holes
	f.Components = m.Components

	var findings []Finding
	if m.Coverage < MinCoverage || m.Coverage > MaxCoverage {
		findings = append(findings, Finding{
			Letter: in.Letter, Check: CheckCoverage,
			Detail: fmt.Sprintf("ink coverage %.3f outside [%.2f, %.2f]", m.Coverage, MinCoverage, MaxCoverage),
		})
	}
	if m.Components > MaxComponents {
		findings = append(findings, Finding{
			Letter: in.Letter, Check: CheckComponents,
			Detail: fmt.Sprintf("%d components, at most %d allowed", m.Components, MaxComponents),
		})
	}
	if !m.Simple {
		findings = append(findings, Finding{
			Letter: in.Letter, Check: CheckSimple,
			Detail: "outline has a self-intersecting contour",
		})
	}
	return m, f, findings
}

// Alphabet validates every input and compares all letter pairs.
// Findings and pairs are ordered by letter.
func Alphabet(inputs []Input, opts Options) *Report {
	opts = opts.withDefaults()
	r := &Report{
		Metrics:  make(map[string]Metrics, len(inputs)),
		Features: make(map[string]Features, len(inputs)),
	}
	sorted := slices.Clone(inputs)
	slices.SortFunc(sorted, func(a, b Input) int { return strings.Compare(a.Letter, b.Letter) })

	for _, in := range sorted {
		m, f, findings := Glyph(in, opts)
		r.Metrics[in.Letter] = m
		r.Features[in.Letter] = f
		r.Findings = append(r.Findings, findings...)
	}
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			d := Distance(r.Features[a.Letter], r.Features[b.Letter])
			if d < opts.Similarity {
				r.Similar = append(r.Similar, Pair{A: a.Letter, B: b.Letter, Distance: d})
			}
		}
	}
	return r
}

// holePenalty is the distance added per differing hole.
const holePenalty = 0.05

// Distance returns the dissimilarity of two feature sets: the RMS
// difference of their ink grids plus a penalty per differing hole.
func Distance(a, b Features) float64 {
	var sum float64
	for i := range a.Grid {
		d := a.Grid[i] - b.Grid[i]
		sum += d * d
	}
	rms := math.Sqrt(sum / float64(len(a.Grid)))
	holes := math.Abs(float64(a.Holes - b.Holes))
	return rms + holePenalty*holes
}

// rasterize fills o into a res x res alpha mask covering box. Row 0 is the
// top of the box.
func rasterize(o geom.Outline, box geom.Rect, res int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, res, res))
	if box.Width() <= 0 || box.Height() <= 0 {
		return dst
	}
	sx := float64(res) / box.Width()
	sy := float64(res) / box.Height()

	r := vector.NewRasterizer(res, res)
	for _, c := range o.Contours {
		for i, p := range c.Points {
			x := float32((p.X - box.Min.X) * sx)
			y := float32((box.Max.Y - p.Y) * sy)
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.ClosePath()
	}
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// inkThreshold is the alpha at which a pixel counts as ink when counting
// components.
const inkThreshold = 0x80

// components returns the number of 4-connected regions of inked pixels.
func components(alpha *image.Alpha) int {
	b := alpha.Bounds()
	w, h := b.Dx(), b.Dy()
	seen := make([]bool, w*h)
	inked := func(x, y int) bool {
		return alpha.AlphaAt(b.Min.X+x, b.Min.Y+y).A >= inkThreshold
	}

	n := 0
	var stack []image.Point
	for y := range h {
		for x := range w {
			if seen[y*w+x] || !inked(x, y) {
				continue
			}
			n++
			seen[y*w+x] = true
			stack = append(stack[:0], image.Pt(x, y))
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, q := range [4]image.Point{
					{p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y - 1}, {p.X, p.Y + 1},
				} {
					if q.X < 0 || q.Y < 0 || q.X >= w || q.Y >= h || seen[q.Y*w+q.X] || !inked(q.X, q.Y) {
						continue
					}
					seen[q.Y*w+q.X] = true
					stack = append(stack, q)
				}
			}
		}
	}
	return n
}

// features derives coverage, ink bounds, centroid and the coarse grid from
// an alpha mask.
func features(alpha *image.Alpha, res int) Features {
	var (
		f                      Features
		total, cx, cy          float64
		minX, minY, maxX, maxY = res, res, -1, -1
	)
	cell := res / GridSize
	for y := range res {
		for x := range res {
			a := float64(alpha.AlphaAt(x, y).A) / 0xff
			if a == 0 {
				continue
			}
			total += a
			cx += a * (float64(x) + 0.5)
			cy += a * (float64(y) + 0.5)
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
			f.Grid[(y/cell)*GridSize+x/cell] += a
		}
	}
	for i := range f.Grid {
		f.Grid[i] /= float64(cell * cell)
	}
	f.Coverage = total / float64(res*res)
	if total > 0 {
		n := float64(res)
		f.Centroid = geom.Pt(cx/total/n, 1-cy/total/n)
		f.Aspect = float64(maxX-minX+1) / float64(maxY-minY+1)
	}
	return f
}
