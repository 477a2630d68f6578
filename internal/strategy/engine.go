// Package strategy implements the engine that drains the market-data
// ring, updates the OBI signal, evaluates Avellaneda-Stoikov quotes, and
// gates the resulting orders through pre-trade risk before invoking
// caller-supplied callbacks.
//
// Grounded on original_source/src/strategy_engine.cpp and
// original_source/include/lumina/strategy_engine.hpp.
package strategy

import (
	"math"

	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-core/internal/quoter"
	"github.com/abdoElHodaky/tradsys-core/internal/risk"
	"github.com/abdoElHodaky/tradsys-core/internal/signal"
	"github.com/abdoElHodaky/tradsys-core/internal/ring"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

// DefaultQuoteQty is the fixed quantity emitted on each side, matching
// the reference's hardcoded 100.
const DefaultQuoteQty types.Qty = 100

// OrderCallback is invoked once per side the engine decides to quote.
// OrderIds are always 0 at this layer; a higher layer assigns them
// before dispatch.
type OrderCallback func(id types.OrderID, price types.Price, qty types.Qty, side types.Side, isBid bool)

// CancelCallback is invoked when the engine decides to cancel a
// previously emitted order. The engine itself never calls this today
// (no cancellation logic is implemented above the reference's), but the
// hook exists so callers can wire one in.
type CancelCallback func(id types.OrderID)

// Engine drains one SPSC ring of MarketDataEvent, maintaining its own
// OBI signal and Avellaneda-Stoikov quoter across calls to Poll.
type Engine struct {
	fromMD         *ring.SPSC[types.MarketDataEvent]
	as             *quoter.AvellanedaStoikov
	obi            *signal.OBISignal
	risk           *risk.PreTradeRisk
	k              float64
	lastR          float64
	sessionStartNs types.TimestampNs
	orderCb        OrderCallback
	cancelCb       CancelCallback
	logger         *zap.Logger
}

// New builds an Engine over an existing ring and risk gate, with its own
// Avellaneda-Stoikov quoter (gamma, sigma, tSeconds) and OBI signal
// (alpha). sessionStartNs anchors t_sec = (ev.ts_ns - sessionStartNs)/1e9.
func New(fromMD *ring.SPSC[types.MarketDataEvent], gamma, sigma, tSeconds, alpha float64, sessionStartNs types.TimestampNs, r *risk.PreTradeRisk, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fromMD:         fromMD,
		as:             quoter.New(gamma, sigma, tSeconds),
		obi:            signal.New(alpha),
		risk:           r,
		k:              1.5,
		sessionStartNs: sessionStartNs,
		logger:         logger,
	}
}

// SetOrderCallback registers the callback invoked for each accepted
// quote side.
func (e *Engine) SetOrderCallback(cb OrderCallback) { e.orderCb = cb }

// SetCancelCallback registers the callback invoked for cancellations.
func (e *Engine) SetCancelCallback(cb CancelCallback) { e.cancelCb = cb }

// SetK updates the A-S decay parameter used by subsequent Poll calls.
func (e *Engine) SetK(k float64) { e.k = k }

// ReservationPrice returns the reservation price computed on the most
// recent Poll iteration.
func (e *Engine) ReservationPrice() float64 { return e.lastR }

// OBISignal returns the current smoothed OBI value.
func (e *Engine) OBISignal() float64 { return e.obi.Value() }

// Poll drains the ring fully (non-blocking). For each event it updates
// the OBI signal, evaluates A-S quotes with inventory q=0 (inventory
// tracking is a deliberate future extension, matching the reference),
// rounds offsets to integer prices, and invokes the order callback for
// each side the risk gate accepts.
func (e *Engine) Poll() {
	var ev types.MarketDataEvent
	for e.fromMD.TryPop(&ev) {
		s := float64(ev.Mid)
		tSec := float64(ev.TsNs-e.sessionStartNs) / 1e9
		if tSec < 0 {
			tSec = 0
		}
		e.obi.Update(ev.BidVolume, ev.AskVolume)
		obiSkew := e.obi.Value()

		e.lastR = e.as.ReservationPrice(s, tSec, 0)
		bidOff, askOff := e.as.GetQuotes(s, tSec, 0, e.k, obiSkew)
		bidPrice := types.Price(math.Round(bidOff))
		askPrice := types.Price(math.Round(askOff))

		if e.orderCb != nil {
			if e.risk == nil || e.risk.CheckOrder(bidPrice, DefaultQuoteQty, types.Buy) {
				e.orderCb(0, bidPrice, DefaultQuoteQty, types.Buy, true)
			} else {
				e.logger.Debug("bid quote rejected by risk", zap.Int64("price", int64(bidPrice)))
			}
			if e.risk == nil || e.risk.CheckOrder(askPrice, DefaultQuoteQty, types.Sell) {
				e.orderCb(0, askPrice, DefaultQuoteQty, types.Sell, false)
			} else {
				e.logger.Debug("ask quote rejected by risk", zap.Int64("price", int64(askPrice)))
			}
		}
	}
}
