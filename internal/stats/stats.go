//go:build !talibstats

// Package stats implements the three rolling statistics the OBI and A-S
// signal paths consume: population variance, plain sum, and a
// single-pass exponential moving average.
//
// Grounded on original_source/src/simd_indicators.cpp's scalar fallback
// path (the #else branch taken when no AVX-512 target is available);
// Go has no portable compiler-intrinsic equivalent to the reference's
// __m512d path, so this file is always the scalar implementation. The
// talibstats build tag (stats_talib.go) swaps Variance and Sum for
// go-talib's pure-Go implementations, verified against gonum/stat
// in the test suite; EMA stays scalar in both builds since the formula
// is a strict left-to-right recurrence (spec explicitly permits a
// scalar EMA under any build).
package stats

// Variance returns the biased (population) variance of data, or 0 for
// an empty slice.
func Variance(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	var sum, sum2 float64
	for _, x := range data {
		sum += x
		sum2 += x * x
	}
	mean := sum / float64(n)
	return (sum2 / float64(n)) - (mean * mean)
}

// Sum returns the arithmetic sum of data.
func Sum(data []float64) float64 {
	var sum float64
	for _, x := range data {
		sum += x
	}
	return sum
}

// EMA fills out with the exponential moving average of in: out[0] =
// in[0], out[i] = alpha*in[i] + (1-alpha)*out[i-1]. out and in must be
// the same length; a zero-length input is a no-op.
func EMA(in []float64, out []float64, alpha float64) {
	if len(in) == 0 {
		return
	}
	out[0] = in[0]
	for i := 1; i < len(in); i++ {
		out[i] = alpha*in[i] + (1-alpha)*out[i-1]
	}
}
