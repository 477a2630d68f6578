//go:build talibstats

package stats

import talib "github.com/markcheno/go-talib"

// Variance returns the biased population variance of data using
// go-talib's vectorized variance, treating the whole slice as one
// window (nbDev=1 reduces talib's variance to the plain statistic).
func Variance(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	out := talib.Variance(data, n, 1)
	return out[n-1]
}

// Sum returns the arithmetic sum of data using go-talib's vectorized
// summation.
func Sum(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	out := talib.Sum(data, n)
	return out[n-1]
}

// EMA fills out with the exponential moving average of in. This stays
// scalar even in the accelerated build: go-talib's Ema is parameterized
// by a period (alpha = 2/(period+1)), which doesn't express an
// arbitrary alpha, and the recurrence itself is inherently sequential.
func EMA(in []float64, out []float64, alpha float64) {
	if len(in) == 0 {
		return
	}
	out[0] = in[0]
	for i := 1; i < len(in); i++ {
		out[i] = alpha*in[i] + (1-alpha)*out[i-1]
	}
}
