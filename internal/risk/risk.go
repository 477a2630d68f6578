// Package risk implements the pre-trade risk gate: an atomic notional
// accumulator, a fat-finger quantity cap, and a kill switch. Every
// mutator uses acquire/release ordering; compound decisions (check then
// fill) are not linearizable across the pair, which is acceptable
// because both checks are conservative.
//
// Grounded on original_source/include/lumina/risk_checks.hpp.
package risk

import (
	"sync/atomic"

	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

// RejectReason tags why CheckOrder refused an order, for diagnostics.
// CheckOrder's boolean return is unchanged; a reason is only ever
// surfaced through SetRejectionHook.
type RejectReason string

const (
	RejectKilled      RejectReason = "killed"
	RejectFatFinger   RejectReason = "fat_finger"
	RejectNotionalCap RejectReason = "notional_cap"
)

// PreTradeRisk gates outgoing orders against a notional cap, a
// fat-finger quantity cap, and an administrative kill switch.
type PreTradeRisk struct {
	maxNotional   int64
	maxOrderQty   types.Qty
	totalNotional atomic.Int64
	killed        atomic.Bool
	onReject      func(RejectReason)
}

// New builds a risk gate with the given absolute notional cap and
// per-order quantity cap.
func New(maxNotional int64, maxOrderQty types.Qty) *PreTradeRisk {
	return &PreTradeRisk{maxNotional: maxNotional, maxOrderQty: maxOrderQty}
}

// SetRejectionHook registers a callback invoked with the reason whenever
// CheckOrder rejects an order, so a metrics layer can maintain
// per-reason rejection counters without check_order's signature
// changing.
func (r *PreTradeRisk) SetRejectionHook(hook func(RejectReason)) {
	r.onReject = hook
}

func notionalOf(price types.Price, qty types.Qty) int64 {
	n := int64(price) * int64(qty)
	if n < 0 {
		return -n
	}
	return n
}

// CheckOrder reports whether an order may be sent: rejected if the gate
// is killed, if qty is non-positive or exceeds the fat-finger cap, or if
// adding the order's notional would breach the notional cap. Side is
// currently unused, reserved for a future short-exposure policy.
func (r *PreTradeRisk) CheckOrder(price types.Price, qty types.Qty, side types.Side) bool {
	_ = side
	if r.killed.Load() {
		r.reject(RejectKilled)
		return false
	}
	if qty <= 0 || qty > r.maxOrderQty {
		r.reject(RejectFatFinger)
		return false
	}
	n := notionalOf(price, qty)
	if r.totalNotional.Load()+n > r.maxNotional {
		r.reject(RejectNotionalCap)
		return false
	}
	return true
}

func (r *PreTradeRisk) reject(reason RejectReason) {
	if r.onReject != nil {
		r.onReject(reason)
	}
}

// AddFill atomically adds a filled order's notional to the running
// total.
func (r *PreTradeRisk) AddFill(price types.Price, qty types.Qty) {
	r.totalNotional.Add(notionalOf(price, qty))
}

// Kill trips the kill switch; subsequent CheckOrder calls reject
// unconditionally.
func (r *PreTradeRisk) Kill() { r.killed.Store(true) }

// Killed reports whether the kill switch is currently tripped.
func (r *PreTradeRisk) Killed() bool { return r.killed.Load() }

// ResetKill clears the kill switch.
func (r *PreTradeRisk) ResetKill() { r.killed.Store(false) }

// ResetNotional zeroes the accumulated notional.
func (r *PreTradeRisk) ResetNotional() { r.totalNotional.Store(0) }

// TotalNotional returns the current accumulated notional, for metrics
// export.
func (r *PreTradeRisk) TotalNotional() int64 { return r.totalNotional.Load() }
