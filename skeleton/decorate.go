package skeleton

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/rng"
)

// DecorationKind selects the shape of a decoration.
type DecorationKind uint8

const (
	// DecorationDot is a detached disc beyond a stroke end.
	DecorationDot DecorationKind = iota
	// DecorationBar is a short straight stroke across the middle of an edge.
	DecorationBar
	// DecorationFlourish is a thin curling stroke leaving an edge end.
	DecorationFlourish
)

var decorationNames = [...]string{"dot", "bar", "flourish"}

func (k DecorationKind) String() string {
	if int(k) < len(decorationNames) {
		return decorationNames[k]
	}
	return fmt.Sprintf("DecorationKind(%d)", k)
}

// Decoration is an ornament drawn in addition to the skeleton edges. It is
// not part of the graph and does not affect connectivity.
type Decoration struct {
	Kind DecorationKind
	At   geom.Point
	// Size is the dot radius, the bar length or the flourish radius, in em.
	Size float64
	// Angle is the bar direction or the flourish start direction, in radians.
	Angle float64
}

// Ornaments are the per-glyph decoration chances and the dimensions they
// scale with.
type Ornaments struct {
	DotFrequency        float64
	BarFrequency        float64
	FlourishProbability float64

	// StrokeWidth and Width are in em.
	StrokeWidth float64
	Width       float64
}

// Decorate draws the decorations of g from s and appends them to
// g.Decorations.
//
// Each kind takes one coin draw, in the order dot, bar, flourish. A kind
// that comes up draws its edge and placement right after its coin.
func Decorate(g *Graph, s *rng.Stream, o Ornaments) {
	if len(g.Edges) == 0 {
		return
	}
	sw := o.StrokeWidth

	if s.Bool(o.DotFrequency) {
		at, out := edgeEnd(g.Edges[s.IntN(len(g.Edges))], s.Bool(0.5))
		off := geom.Pt(s.Range(-0.5, 0.5), s.Range(-0.5, 0.5)).Mul(sw)
		g.Decorations = append(g.Decorations, Decoration{
			Kind: DecorationDot,
			At:   at.Add(out.Mul(2.2 * sw)).Add(off),
			Size: 0.6 * sw,
		})
	}

	if s.Bool(o.BarFrequency) {
		e := g.Edges[s.IntN(len(g.Edges))]
		tangent := e.Curve.Eval(0.55).Sub(e.Curve.Eval(0.45))
		g.Decorations = append(g.Decorations, Decoration{
			Kind:  DecorationBar,
			At:    e.Curve.Eval(0.5),
			Size:  o.Width * s.Range(0.15, 0.35),
			Angle: tangent.Angle() + math.Pi/2,
		})
	}

	if s.Bool(o.FlourishProbability) {
		e := g.Edges[s.IntN(len(g.Edges))]
		g.Decorations = append(g.Decorations, Decoration{
			Kind:  DecorationFlourish,
			At:    e.Curve.End(),
			Size:  3 * sw,
			Angle: s.Range(0, math.Pi),
		})
	}
}

// edgeEnd returns the start or end point of e and the unit direction
// pointing out of the stroke there.
func edgeEnd(e Edge, start bool) (at, out geom.Point) {
	if start {
		return e.Curve.Start(), e.Curve.StartTangent().Mul(-1)
	}
	return e.Curve.End(), e.Curve.EndTangent()
}

// flourishSteps is the number of segments of a flourish polyline.
const flourishSteps = 8

// Polyline returns the centerline of a flourish: a curl whose radius
// shrinks to half while its direction turns by 0.7 pi. It starts at At.
// Other kinds return nil.
func (d Decoration) Polyline() []geom.Point {
	if d.Kind != DecorationFlourish {
		return nil
	}
	origin := geom.Pt(math.Cos(d.Angle), math.Sin(d.Angle)).Mul(d.Size)
	pts := make([]geom.Point, 0, flourishSteps+1)
	for i := range flourishSteps + 1 {
		t := float64(i) / flourishSteps
		r := d.Size * (1 - t*0.5)
		a := d.Angle + t*math.Pi*0.7
		pts = append(pts, d.At.Add(geom.Pt(math.Cos(a), math.Sin(a)).Mul(r)).Sub(origin))
	}
	return pts
}

// Bar returns the end points of a bar centerline. Other kinds return the
// zero points.
func (d Decoration) Bar() (geom.Point, geom.Point) {
	if d.Kind != DecorationBar {
		return geom.Point{}, geom.Point{}
	}
	half := geom.Pt(math.Cos(d.Angle), math.Sin(d.Angle)).Mul(d.Size / 2)
	return d.At.Sub(half), d.At.Add(half)
}
