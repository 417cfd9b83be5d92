package rng

import (
	"math/bits"
	"math/rand/v2"
	"slices"
)

// Stream is a local random source derived by Fork.
//
// A Stream is not safe for concurrent use; each goroutine forks its own.
type Stream struct {
	seed Seed
	path Path
	src  *rand.PCG
}

// Path returns a copy of the domain path the stream was forked from.
func (s *Stream) Path() Path {
	return slices.Clone(s.path)
}

// Fork derives a child stream by appending labels to this stream's path.
// The child depends only on the seed and the extended path, never on how
// many values s has already produced.
func (s *Stream) Fork(labels ...string) (*Stream, error) {
	path := make(Path, 0, len(s.path)+len(labels))
	path = append(path, s.path...)
	path = append(path, labels...)
	return Fork(s.seed, path)
}

// Uint64 returns the next raw 64-bit value.
func (s *Stream) Uint64() uint64 {
	return s.src.Uint64()
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	return float64(s.src.Uint64()>>11) * 0x1p-53
}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	return int(s.uint64n(uint64(n)))
}

// uint64n is Lemire's nearly divisionless bounded draw.
func (s *Stream) uint64n(n uint64) uint64 {
	hi, lo := bits.Mul64(s.src.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(s.src.Uint64(), n)
		}
	}
	return hi
}

// IntRange returns a uniform value in [lo, hi]. It panics if hi < lo.
func (s *Stream) IntRange(lo, hi int) int {
	if hi < lo {
		panic("rng: IntRange called with hi < lo")
	}
	return lo + int(s.uint64n(uint64(hi-lo)+1))
}

// Range returns a uniform value in [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.Float64()
}

// Bool returns true with probability p.
func (s *Stream) Bool(p float64) bool {
	return s.Float64() < p
}

// Weighted returns an index chosen with probability proportional to its
// weight. Non-positive weights are never chosen. It returns -1, without
// consuming a draw, when no weight is positive.
func (s *Stream) Weighted(weights []float64) int {
	var total float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}
	r := s.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return last
}
