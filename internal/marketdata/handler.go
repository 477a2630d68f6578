// Package marketdata implements the handler that owns an order book and
// publishes snapshot events to the strategy engine over a shared SPSC
// ring: on_trade and on_book_update build a MarketDataEvent from the
// book's current state; start/stop manage a worker goroutine that
// currently only sleeps, reserving the architecture for a future
// source-polling loop.
//
// Grounded on original_source/src/market_data_handler.cpp and
// original_source/include/lumina/market_data_handler.hpp.
package marketdata

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abdoElHodaky/tradsys-core/internal/book"
	"github.com/abdoElHodaky/tradsys-core/internal/ring"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

// PollInterval is the reserved worker loop's sleep cadence, matching the
// reference's 10-microsecond sleep_for.
const PollInterval = 10 * time.Microsecond

// Handler owns one OrderBook and publishes MarketDataEvent snapshots to
// a shared SPSC ring every time a trade or book update is applied.
type Handler struct {
	book     *book.OrderBook
	toStrat  *ring.SPSC[types.MarketDataEvent]
	limiter  *rate.Limiter
	running  atomic.Bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	logger   *zap.Logger
}

// New builds a Handler over an existing book and the ring it publishes
// to. The limiter paces the reserved poll loop; pass nil for the
// reference's unthrottled sleep-only behavior.
func New(b *book.OrderBook, toStrategy *ring.SPSC[types.MarketDataEvent], limiter *rate.Limiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{book: b, toStrat: toStrategy, limiter: limiter, logger: logger}
}

// OrderBook returns the handler's owned book.
func (h *Handler) OrderBook() *book.OrderBook { return h.book }

// Start launches the reserved worker goroutine. Calling Start while
// already running is a no-op, matching the reference's exchange-based
// guard.
func (h *Handler) Start() {
	if h.running.Swap(true) {
		return
	}
	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})
	h.logger.Info("market data handler starting")
	go h.run()
}

// Stop signals the worker goroutine and waits for it to exit.
func (h *Handler) Stop() {
	if !h.running.Load() {
		return
	}
	close(h.stopCh)
	<-h.doneCh
	h.running.Store(false)
	h.logger.Info("market data handler stopped")
}

func (h *Handler) run() {
	defer close(h.doneCh)
	for {
		select {
		case <-h.stopCh:
			return
		default:
		}
		if h.limiter != nil {
			h.limiter.Wait(context.Background())
		} else {
			time.Sleep(PollInterval)
		}
	}
}

// snapshot builds the common MarketDataEvent fields every publish shares:
// mid, best bid/ask prices, and both side volumes.
func (h *Handler) snapshot(flag types.MDFlag, tsNs types.TimestampNs) types.MarketDataEvent {
	var bidVol, askVol types.Qty
	h.book.GetBidAskVolumes(&bidVol, &askVol)
	bidLvl := h.book.BestBidLevel()
	askLvl := h.book.BestAskLevel()
	return types.MarketDataEvent{
		Flag:      flag,
		TsNs:      tsNs,
		Mid:       h.book.MidPrice(),
		Bid:       h.book.BestBid(),
		Ask:       h.book.BestAsk(),
		BidQty:    bidLvl.TotalQty,
		AskQty:    askLvl.TotalQty,
		BidVolume: bidVol,
		AskVolume: askVol,
	}
}

// OnTrade publishes a Trade-flagged snapshot event carrying the fill
// that just occurred. The book mutation that produced the trade is the
// caller's responsibility (typically via book.Match before calling
// this).
func (h *Handler) OnTrade(price types.Price, qty types.Qty, tsNs types.TimestampNs) {
	ev := h.snapshot(types.MDTrade, tsNs)
	ev.LastTrade = types.Trade{Price: price, Qty: qty, TimeNs: tsNs}
	if !h.toStrat.TryPush(ev) {
		h.logger.Warn("dropped trade event: strategy ring full")
	}
}

// OnBookUpdate publishes a BookUpdate-flagged snapshot event. side,
// price, deltaQty, and isAdd are advisory only (matching the reference,
// which marks them unused): the book mutation itself must already have
// happened via AddOrder/CancelOrder before calling this.
func (h *Handler) OnBookUpdate(_ types.Side, _ types.Price, _ types.Qty, _ bool, tsNs types.TimestampNs) {
	ev := h.snapshot(types.MDBookUpdate, tsNs)
	if !h.toStrat.TryPush(ev) {
		h.logger.Warn("dropped book update event: strategy ring full")
	}
}
