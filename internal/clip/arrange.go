package clip

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"
)

// maxSnapRounds bounds the rounds of arrange. Snap rounding settles after
// two or three rounds on stroke geometry.
const maxSnapRounds = 32

// arrange inserts vertices into the rings until no two ring edges cross and
// no vertex lies inside an edge. Each round rounds the proper crossings to
// the grid and routes every edge through the cell of any vertex it passes,
// so the rounded result never crosses where the input did not.
func arrange(rings [][]ipoint) ([][]ipoint, error) {
	for range maxSnapRounds {
		hot := hotPixels(rings)
		next, changed := route(rings, hot)
		if !changed {
			return rings, nil
		}
		rings = next
	}
	return nil, fmt.Errorf("%w: snap rounding did not settle", ErrNotSimple)
}

type seg struct{ a, b ipoint }

func (s seg) minX() int64 { return min(s.a.x, s.b.x) }

// hotPixels returns every ring vertex and every rounded proper crossing,
// sorted and without duplicates.
func hotPixels(rings [][]ipoint) []ipoint {
	var hot []ipoint
	var segs []seg
	for _, r := range rings {
		hot = append(hot, r...)
		for i := range r {
			segs = append(segs, seg{r[i], r[(i+1)%len(r)]})
		}
	}

	slices.SortFunc(segs, func(s, t seg) int { return cmp.Compare(s.minX(), t.minX()) })
	for i, s := range segs {
		sMaxX := max(s.a.x, s.b.x)
		sMinY, sMaxY := min(s.a.y, s.b.y), max(s.a.y, s.b.y)
		for _, t := range segs[i+1:] {
			if t.minX() > sMaxX {
				break
			}
			if max(t.a.y, t.b.y) < sMinY || min(t.a.y, t.b.y) > sMaxY {
				continue
			}
			if p, ok := crossing(s, t); ok {
				hot = append(hot, p)
			}
		}
	}

	slices.SortFunc(hot, comparePoints)
	return slices.Compact(hot)
}

// crossing returns the grid point nearest to the proper crossing of s and
// t. The rounding is exact.
func crossing(s, t seg) (ipoint, bool) {
	d1 := orient(t.a, t.b, s.a)
	d2 := orient(t.a, t.b, s.b)
	d3 := orient(s.a, s.b, t.a)
	d4 := orient(s.a, s.b, t.b)
	if sgn(d1)*sgn(d2) >= 0 || sgn(d3)*sgn(d4) >= 0 {
		return ipoint{}, false
	}
	// s.a + r*d1/(d1-d2); the denominator is nonzero for a proper crossing.
	r := s.b.sub(s.a)
	den := big.NewInt(d1 - d2)
	if den.Sign() < 0 {
		den.Neg(den)
		d1 = -d1
	}
	k := big.NewInt(d1)
	return ipoint{
		s.a.x + roundDiv(new(big.Int).Mul(big.NewInt(r.x), k), den),
		s.a.y + roundDiv(new(big.Int).Mul(big.NewInt(r.y), k), den),
	}, true
}

// roundDiv returns num/den rounded half up, for den > 0.
func roundDiv(num, den *big.Int) int64 {
	n := new(big.Int).Lsh(num, 1)
	n.Add(n, den)
	d := new(big.Int).Lsh(den, 1)
	// Div rounds towards negative infinity for positive divisors.
	return n.Div(n, d).Int64()
}

// route rebuilds the rings with every hot pixel an edge passes through
// inserted into that edge, in order along the edge.
func route(rings [][]ipoint, hot []ipoint) ([][]ipoint, bool) {
	changed := false
	out := make([][]ipoint, len(rings))
	for k, r := range rings {
		next := make([]ipoint, 0, len(r))
		for i := range r {
			a, b := r[i], r[(i+1)%len(r)]
			next = append(next, a)
			via := passes(a, b, hot)
			if len(via) > 0 {
				changed = true
				next = append(next, via...)
			}
		}
		out[k] = next
	}
	return out, changed
}

// passes returns the hot pixels other than a and b whose closed cell the
// segment a-b meets, ordered from a to b.
func passes(a, b ipoint, hot []ipoint) []ipoint {
	loX, hiX := min(a.x, b.x), max(a.x, b.x)
	loY, hiY := min(a.y, b.y), max(a.y, b.y)
	start, _ := slices.BinarySearchFunc(hot, loX, func(p ipoint, x int64) int {
		return cmp.Compare(p.x, x)
	})

	// Cells are squares of side 1 around each grid point; doubling the
	// coordinates keeps their corners on integers.
	p2, q2 := ipoint{2 * a.x, 2 * a.y}, ipoint{2 * b.x, 2 * b.y}
	var via []ipoint
	for _, h := range hot[start:] {
		if h.x > hiX {
			break
		}
		if h.y < loY || h.y > hiY || h == a || h == b {
			continue
		}
		below, above := false, false
		for _, c := range [4]ipoint{
			{2*h.x - 1, 2*h.y - 1}, {2*h.x + 1, 2*h.y - 1},
			{2*h.x - 1, 2*h.y + 1}, {2*h.x + 1, 2*h.y + 1},
		} {
			switch o := orient(p2, q2, c); {
			case o > 0:
				above = true
			case o < 0:
				below = true
			default:
				above, below = true, true
			}
		}
		if above && below {
			via = append(via, h)
		}
	}

	d := b.sub(a)
	slices.SortFunc(via, func(p, q ipoint) int {
		if c := cmp.Compare(dot(p.sub(a), d), dot(q.sub(a), d)); c != 0 {
			return c
		}
		return comparePoints(p, q)
	})
	return via
}

func comparePoints(p, q ipoint) int {
	if c := cmp.Compare(p.x, q.x); c != 0 {
		return c
	}
	return cmp.Compare(p.y, q.y)
}
