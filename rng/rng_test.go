package rng

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFork(t *testing.T, seed Seed, path ...string) *Stream {
	t.Helper()
	s, err := Fork(seed, path)
	require.NoError(t, err)
	return s
}

func draws(s *Stream, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.Uint64()
	}
	return out
}

func TestFork_Deterministic(t *testing.T) {
	a := mustFork(t, SeedFromInt(42), "glyph", "A")
	b := mustFork(t, SeedFromInt(42), "glyph", "A")
	assert.Equal(t, draws(a, 32), draws(b, 32))
}

func TestFork_DistinctInputs(t *testing.T) {
	base := draws(mustFork(t, SeedFromInt(42), "glyph", "A"), 8)

	tests := []struct {
		name string
		seed Seed
		path Path
	}{
		{"other seed", SeedFromInt(43), Path{"glyph", "A"}},
		{"other letter", SeedFromInt(42), Path{"glyph", "B"}},
		{"extra label", SeedFromInt(42), Path{"glyph", "A", "retry:1"}},
		{"joined labels", SeedFromInt(42), Path{"glyphA"}},
		{"split label", SeedFromInt(42), Path{"gly", "phA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Fork(tt.seed, tt.path)
			require.NoError(t, err)
			assert.NotEqual(t, base, draws(s, 8))
		})
	}
}

func TestFork_InvalidPath(t *testing.T) {
	tests := []struct {
		name string
		path Path
	}{
		{"empty path", nil},
		{"empty label", Path{"glyph", ""}},
		{"delimiter", Path{"glyph/A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fork(SeedFromInt(1), tt.path)
			if !errors.Is(err, ErrInvalidDomainPath) {
				t.Errorf("Fork(%q) error = %v, want ErrInvalidDomainPath", tt.path, err)
			}
		})
	}
}

func TestStream_ForkIgnoresConsumption(t *testing.T) {
	parent := mustFork(t, SeedFromInt(7), "glyph", "Q")
	before, err := parent.Fork("skeleton")
	require.NoError(t, err)

	draws(parent, 100)
	after, err := parent.Fork("skeleton")
	require.NoError(t, err)

	direct := mustFork(t, SeedFromInt(7), "glyph", "Q", "skeleton")
	want := draws(direct, 16)
	assert.Equal(t, want, draws(before, 16))
	assert.Equal(t, want, draws(after, 16))
	assert.Equal(t, Path{"glyph", "Q", "skeleton"}, after.Path())
}

func TestStream_Ranges(t *testing.T) {
	s := mustFork(t, SeedFromInt(3), "ranges")
	seen := make(map[int]bool)
	for range 2000 {
		f := s.Float64()
		require.True(t, f >= 0 && f < 1, "Float64 out of range: %v", f)

		n := s.IntN(7)
		require.True(t, n >= 0 && n < 7, "IntN out of range: %d", n)
		seen[n] = true

		r := s.IntRange(-2, 2)
		require.True(t, r >= -2 && r <= 2, "IntRange out of range: %d", r)

		x := s.Range(0.25, 0.5)
		require.True(t, x >= 0.25 && x < 0.5, "Range out of range: %v", x)
	}
	assert.Len(t, seen, 7, "IntN(7) should reach every value")
	assert.Panics(t, func() { s.IntN(0) })
}

func TestStream_Bool(t *testing.T) {
	s := mustFork(t, SeedFromInt(5), "bool")
	hits := 0
	const n = 10000
	for range n {
		if s.Bool(0.3) {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/n, 0.03)

	for range 100 {
		assert.False(t, s.Bool(0))
		assert.True(t, s.Bool(1))
	}
}

func TestStream_Weighted(t *testing.T) {
	s := mustFork(t, SeedFromInt(9), "weighted")
	counts := make([]int, 4)
	const n = 20000
	for range n {
		counts[s.Weighted([]float64{1, 0, 3, -2})]++
	}
	assert.Zero(t, counts[1], "zero weight chosen")
	assert.Zero(t, counts[3], "negative weight chosen")
	assert.InDelta(t, 0.25, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.75, float64(counts[2])/n, 0.02)

	assert.Equal(t, -1, s.Weighted([]float64{0, 0}))
	assert.Equal(t, -1, s.Weighted(nil))
}

// TestFork_DomainSeparation checks that paired draws from related paths show
// no linear correlation across many seeds.
func TestFork_DomainSeparation(t *testing.T) {
	pairs := []struct {
		name   string
		p1, p2 Path
	}{
		{"prefix", Path{"glyph", "A"}, Path{"glyph", "A", "skeleton"}},
		{"siblings", Path{"glyph", "A", "skeleton"}, Path{"glyph", "A", "jitter"}},
		{"retry", Path{"glyph", "X", "skeleton"}, Path{"glyph", "X", "retry:1", "skeleton"}},
	}
	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			var xs, ys []float64
			for seed := range int64(200) {
				a := mustFork(t, SeedFromInt(seed), pair.p1...)
				b := mustFork(t, SeedFromInt(seed), pair.p2...)
				for range 64 {
					xs = append(xs, a.Float64())
					ys = append(ys, b.Float64())
				}
			}
			r := pearson(xs, ys)
			if math.Abs(r) > 0.05 {
				t.Errorf("correlation = %.4f over %d pairs", r, len(xs))
			}
		})
	}
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
	}
	mx, my := sx/n, sy/n
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	return cov / math.Sqrt(vx*vy)
}

func TestSeed_String(t *testing.T) {
	assert.Equal(t, "000000000000002a", SeedFromInt(42).String())
	assert.Equal(t, "glyph/A", Path{"glyph", "A"}.String())
}

func BenchmarkFork(b *testing.B) {
	seed := SeedFromInt(42)
	path := Path{"glyph", "A", "skeleton"}
	for b.Loop() {
		_, _ = Fork(seed, path)
	}
}
