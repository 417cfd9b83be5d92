package stroke

import (
	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
)

// flourishWeight is the flourish stroke width as a fraction of the stroke
// width.
const flourishWeight = 0.6

// decoration returns the polygons of d, sheared like the centerlines. h is
// half the stroke width.
func decoration(d skeleton.Decoration, shear, h, eps, tol float64) [][]geom.Point {
	switch d.Kind {
	case skeleton.DecorationDot:
		return [][]geom.Point{disc(d.At.Shear(shear), d.Size, tol)}
	case skeleton.DecorationBar:
		a, b := d.Bar()
		a, b = a.Shear(shear), b.Shear(shear)
		if a.Distance(b) <= eps {
			return nil
		}
		return ribbon([]geom.Point{a, b}, h, style.CapFlat, style.CapFlat, tol)
	case skeleton.DecorationFlourish:
		var pts []geom.Point
		for _, p := range d.Polyline() {
			p = p.Shear(shear)
			if len(pts) > 0 && pts[len(pts)-1].Distance(p) <= eps {
				continue
			}
			pts = append(pts, p)
		}
		if len(pts) < 2 {
			return nil
		}
		return ribbon(pts, h*flourishWeight, style.CapRound, style.CapRound, tol)
	}
	return nil
}
