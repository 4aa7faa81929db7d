package wmap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareCheck verifies that the observed sample counts are consistent
// with the expected counts using a chi-square goodness-of-fit test at the
// 99.9% level. Zero-expectation categories must be filtered out by the
// caller.
func chiSquareCheck(t *testing.T, observed, expected []float64) {
	t.Helper()
	require.Equal(t, len(expected), len(observed))

	x2 := stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(len(expected) - 1)}
	require.Less(t, dist.CDF(x2), 0.999, "chi-square statistic %f too large", x2)
}

func TestMap_Sample_distribution(t *testing.T) {
	weights := map[string]float64{
		"a": 1,
		"b": 10,
		"c": 0.5,
		"d": 100,
		"e": 42.42,
		"f": 7,
	}
	m := New[string]()
	for k, w := range weights {
		require.NoError(t, m.Put(k, w))
	}

	const nSamples = 100_000
	rng := rand.New(rand.NewSource(42))
	tallies := map[string]int{}
	for i := 0; i < nSamples; i++ {
		k, err := m.Sample(rng)
		require.NoError(t, err)
		tallies[k]++
	}

	observed := []float64{}
	expected := []float64{}
	for k := range m.Keys() {
		observed = append(observed, float64(tallies[k]))
		expected = append(expected, nSamples*weights[k]/m.TotalWeight())
	}
	chiSquareCheck(t, observed, expected)
}

// TestMap_Sample_scenario runs the reference end-to-end scenario: a small
// menagerie of weighted keys, a weight update, a removal, and 100k samples
// checked against the expected sampling distribution.
func TestMap_Sample_scenario(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Put("dog", 38.2))
	require.NoError(t, m.Put("cat", 201.7))
	require.NoError(t, m.Put("cow", 222.3))
	require.NoError(t, m.Put("ostrich", 0.0))
	require.NoError(t, m.Put("cow", 31.5)) // change the weight for cow
	require.NoError(t, m.Put("unicorn", 0.01))
	require.NoError(t, m.Put("wolf", 128.1))
	require.NoError(t, m.Put("bear", 12.1))
	require.NoError(t, m.Put("aardvark", 9.1))

	w, err := m.Get("dog")
	require.NoError(t, err)
	require.Equal(t, 38.2, w)

	wantKeys := []string{"aardvark", "bear", "cat", "cow", "dog", "ostrich", "unicorn", "wolf"}
	require.Equal(t, wantKeys, keysOf(m))

	_, err = m.Pop("cat")
	require.NoError(t, err)
	require.Equal(t, 7, m.Len())

	wantTotal := 38.2 + 31.5 + 0.0 + 0.01 + 128.1 + 12.1 + 9.1
	require.InDelta(t, wantTotal, m.TotalWeight(), 1e-9)

	const nSamples = 100_000
	rng := rand.New(rand.NewSource(42))
	tallies := map[string]int{}
	for i := 0; i < nSamples; i++ {
		k, err := m.Sample(rng)
		require.NoError(t, err)
		tallies[k]++
	}

	// A key with weight zero must never be drawn while the total weight is
	// positive.
	require.Equal(t, 0, tallies["ostrich"])

	observed := []float64{}
	expected := []float64{}
	for k, w := range m.All() {
		if w == 0 {
			continue
		}
		observed = append(observed, float64(tallies[k]))
		expected = append(expected, nSamples*w/m.TotalWeight())
	}
	chiSquareCheck(t, observed, expected)

	// The expected count for each key should also hold individually within
	// a few standard deviations.
	for k, w := range m.All() {
		exp := nSamples * w / m.TotalWeight()
		require.InDelta(t, exp, float64(tallies[k]), 5*math.Sqrt(exp)+5,
			"key %s: observed %d, expected %.2f", k, tallies[k], exp)
	}
}

func TestMap_Sample_distributionAfterRebuild(t *testing.T) {
	// Removing keys and reinserting them with new weights must leave the
	// sampling distribution consistent with the final weights.
	m := New[int]()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		require.NoError(t, m.Put(i, rng.Float64()))
	}
	for i := 0; i < 50; i += 2 {
		require.NoError(t, m.Remove(i))
	}
	for i := 0; i < 50; i += 5 {
		require.NoError(t, m.Put(i, float64(i+1)))
	}

	const nSamples = 200_000
	tallies := map[int]int{}
	for i := 0; i < nSamples; i++ {
		k, err := m.Sample(rng)
		require.NoError(t, err)
		tallies[k]++
	}

	observed := []float64{}
	expected := []float64{}
	for k, w := range m.All() {
		if w == 0 {
			continue
		}
		observed = append(observed, float64(tallies[k]))
		expected = append(expected, nSamples*w/m.TotalWeight())
	}
	chiSquareCheck(t, observed, expected)
}
