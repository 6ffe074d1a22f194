package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachgen/rng"
)

func TestDeterministicSequence(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Range(0, 1000), b.Range(0, 1000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := rng.New(1)
	b := rng.New(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Range(0, 1_000_000) != b.Range(0, 1_000_000) {
			same = false
		}
	}
	assert.False(t, same, "expected seeds 1 and 2 to diverge")
}

func TestRangeInclusiveBounds(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 200; i++ {
		v := s.Range(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
	}
}

func TestRangeDegenerate(t *testing.T) {
	s := rng.New(7)
	assert.Equal(t, 4, s.Range(4, 4))
	assert.Equal(t, 4, s.Range(4, 3))
}

func TestBoolEdges(t *testing.T) {
	s := rng.New(9)
	assert.False(t, s.Bool(0))
	assert.True(t, s.Bool(1))
}

func TestWeightedRespectsZeroWeights(t *testing.T) {
	s := rng.New(11)
	weights := []float64{0, 0, 1}
	for i := 0; i < 50; i++ {
		assert.Equal(t, 2, s.Weighted(weights))
	}
}

func TestWeightedAllZeroFallsBackToZero(t *testing.T) {
	s := rng.New(11)
	assert.Equal(t, 0, s.Weighted([]float64{0, 0, 0}))
}

func TestSelectUniform(t *testing.T) {
	s := rng.New(3)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[rng.Select(s, items)] = true
	}
	assert.True(t, len(seen) > 1)
}

func TestDeriveIsStableAndDistinct(t *testing.T) {
	base := rng.New(42)
	d1 := base.Derive(1000)
	d2 := rng.New(42).Derive(1000)
	require.Equal(t, d1.Range(0, 1_000_000), d2.Range(0, 1_000_000))

	other := base.Derive(2000)
	assert.NotEqual(t, d1.Range(0, 1_000_000), other.Range(0, 1_000_000))
}
