package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func almostEqual(t *testing.T, want, got, tol float64) {
	t.Helper()
	require.True(t, math.Abs(want-got) <= tol, "want %v got %v", want, got)
}

func TestVariance_EmptyIsZero(t *testing.T) {
	require.Equal(t, 0.0, Variance(nil))
}

func TestVariance_MatchesGonumPopulationVariance(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := stat.Mean(data, nil)
	var sumSq float64
	for _, x := range data {
		d := x - mean
		sumSq += d * d
	}
	wantPopulation := sumSq / float64(len(data))

	almostEqual(t, wantPopulation, Variance(data), 1e-9)
}

func TestSum_MatchesPlainAddition(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	almostEqual(t, 15, Sum(data), 1e-12)
}

func TestEMA_FirstElementSeedsSeries(t *testing.T) {
	in := []float64{10, 20, 30}
	out := make([]float64, 3)
	EMA(in, out, 0.5)
	require.Equal(t, 10.0, out[0])
	almostEqual(t, 0.5*20+0.5*10, out[1], 1e-12)
	almostEqual(t, 0.5*30+0.5*out[1], out[2], 1e-12)
}

func TestEMA_EmptyInputIsNoop(t *testing.T) {
	require.NotPanics(t, func() { EMA(nil, nil, 0.1) })
}
