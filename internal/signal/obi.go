// Package signal computes the order-book-imbalance signal the strategy
// engine feeds into the Avellaneda-Stoikov quote skew.
//
// Grounded on original_source/include/lumina/order_book_imbalance.hpp.
package signal

import "github.com/abdoElHodaky/tradsys-core/pkg/types"

// OBI returns the instantaneous order-book imbalance in [-1, +1]: the
// normalized difference between bid and ask volume. A zero total
// volume returns 0 rather than dividing by zero.
func OBI(bidVolume, askVolume types.Qty) float64 {
	total := bidVolume + askVolume
	if total == 0 {
		return 0
	}
	return float64(bidVolume-askVolume) / float64(total)
}

// OBISignal is an EMA-smoothed OBI, initialized to 0 rather than seeded
// by the first sample.
type OBISignal struct {
	alpha float64
	ema   float64
}

// DefaultAlpha is the smoothing factor used when none is configured.
const DefaultAlpha = 0.1

// New builds an OBISignal with the given smoothing factor.
func New(alpha float64) *OBISignal {
	return &OBISignal{alpha: alpha}
}

// Update folds in a new (bidVolume, askVolume) sample and returns the
// updated EMA value.
func (s *OBISignal) Update(bidVolume, askVolume types.Qty) float64 {
	raw := OBI(bidVolume, askVolume)
	s.ema = s.alpha*raw + (1-s.alpha)*s.ema
	return s.ema
}

// Value returns the current smoothed OBI without updating it.
func (s *OBISignal) Value() float64 { return s.ema }

// Reset zeroes the smoothed signal.
func (s *OBISignal) Reset() { s.ema = 0 }
