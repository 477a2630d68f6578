// Package errcode defines the construction-time and administrative error
// taxonomy for the market-making core. Hot-path operations never return
// one of these: add_order/try_push report capacity and duplicate
// conditions as a plain bool, and cancel/match are silently idempotent,
// per the core's error handling design. Code values here back only
// construction-time assertions; the risk gate reports rejections as a
// bool (plus an optional RejectReason hook), not as an Error.
package errcode

import "fmt"

// Code names one of the core's non-hot-path failure kinds.
type Code string

const (
	// CapacityExceeded covers pool exhaustion and full rings, reported
	// elsewhere as a bool return but named here for log/metric labels.
	CapacityExceeded Code = "CAPACITY_EXCEEDED"
	// DuplicateOrderID is returned (as false) by AddOrder when the ID is
	// already resting; named here for the same reason.
	DuplicateOrderID Code = "DUPLICATE_ORDER_ID"
	// OrderNotFound labels an idempotent cancel of a missing order.
	OrderNotFound Code = "ORDER_NOT_FOUND"
	// RiskRejected labels a pre-trade risk rejection (killed, fat-finger,
	// or notional cap); the specific reason goes in the Message.
	RiskRejected Code = "RISK_REJECTED"
	// InvalidConfiguration is fatal at construction time: non-power-of-two
	// ring size, zero-capacity pool, or a malformed parameter group.
	InvalidConfiguration Code = "INVALID_CONFIGURATION"
)

// Error wraps a Code with a human-readable message for construction-time
// and administrative failures.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error for the given code.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
