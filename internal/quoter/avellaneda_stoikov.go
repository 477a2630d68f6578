// Package quoter implements the Avellaneda-Stoikov inventory-aware
// market-making model: a reservation price shifted by inventory risk,
// an optimal half-spread, and OBI-skewed two-sided quote offsets.
//
// Grounded on original_source/include/lumina/avellaneda_stoikov.hpp.
package quoter

import "math"

// AvellanedaStoikov holds the three mutable model parameters: inventory
// risk aversion (gamma), volatility (sigma), and session length in
// seconds (T).
type AvellanedaStoikov struct {
	gamma float64
	sigma float64
	t     float64
}

// New builds a quoter with the given gamma, sigma, and session length T
// (seconds).
func New(gamma, sigma, tSeconds float64) *AvellanedaStoikov {
	return &AvellanedaStoikov{gamma: gamma, sigma: sigma, t: tSeconds}
}

// ReservationPrice shifts mid price s by inventory risk: s - q*gamma*
// sigma^2*(T-t). Once the session has run past T (tau <= 0) it
// collapses to the raw mid.
func (a *AvellanedaStoikov) ReservationPrice(s, t, q float64) float64 {
	tau := a.t - t
	if tau <= 0 {
		return s
	}
	return s - q*a.gamma*a.sigma*a.sigma*tau
}

// OptimalHalfSpread returns (1/k)*ln(1+gamma/k), symmetric around the
// reservation price.
func (a *AvellanedaStoikov) OptimalHalfSpread(k float64) float64 {
	return (1 / k) * math.Log(1+a.gamma/k)
}

// GetQuotes returns (bidOffset, askOffset) around the reservation price,
// skewed by obiSkew (expected in [-1,+1]; a positive skew moves the bid
// down and the ask up by the same amount, widening the quoted spread,
// and a negative skew narrows it). The skew weight is fixed at 0.5*half, matching the
// reference's configurable-but-defaulted coefficient.
func (a *AvellanedaStoikov) GetQuotes(s, t, q, k, obiSkew float64) (bidOffset, askOffset float64) {
	r := a.ReservationPrice(s, t, q)
	half := a.OptimalHalfSpread(k)
	skew := obiSkew * 0.5 * half
	return r - half - skew, r + half + skew
}

// SetGamma updates the inventory risk aversion parameter.
func (a *AvellanedaStoikov) SetGamma(gamma float64) { a.gamma = gamma }

// SetSigma updates the volatility parameter.
func (a *AvellanedaStoikov) SetSigma(sigma float64) { a.sigma = sigma }

// SetT updates the session length in seconds.
func (a *AvellanedaStoikov) SetT(tSeconds float64) { a.t = tSeconds }
