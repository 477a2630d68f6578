// Package composition wires pool->book->ring->MD-handler->risk->
// strategy-engine into a single fx.App constructor graph, so an
// embedder gets one Module instead of hand-wiring every constructor.
//
// Grounded on the teacher's cmd/marketdata/main.go (fx.Supply(logger)
// plus a stack of fx.Provide/fx.Invoke) and internal/risk/service.go's
// fx.Provide(NewService) pattern.
package composition

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-core/internal/book"
	"github.com/abdoElHodaky/tradsys-core/internal/config"
	"github.com/abdoElHodaky/tradsys-core/internal/marketdata"
	"github.com/abdoElHodaky/tradsys-core/internal/metrics"
	"github.com/abdoElHodaky/tradsys-core/internal/risk"
	"github.com/abdoElHodaky/tradsys-core/internal/ring"
	"github.com/abdoElHodaky/tradsys-core/internal/strategy"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

// Module provides the core's full constructor graph: an fx.App built
// with it (plus fx.Supply(cfg), fx.Supply(logger), and a
// prometheus.Registerer) yields a wired *strategy.Engine ready to Poll.
var Module = fx.Module("tradsys-core",
	fx.Provide(
		NewOrderBook,
		NewStrategyRing,
		NewMetrics,
		NewRisk,
		NewMarketDataHandler,
		NewStrategyEngine,
	),
)

// NewOrderBook constructs the book from cfg.OrderBook.
func NewOrderBook(cfg config.CoreConfig, logger *zap.Logger) (*book.OrderBook, error) {
	return book.New(cfg.OrderBook.MaxOrders, logger)
}

// NewStrategyRing constructs the MD-to-strategy SPSC ring from
// cfg.MDRing.
func NewStrategyRing(cfg config.CoreConfig) *ring.SPSC[types.MarketDataEvent] {
	return ring.NewSPSC[types.MarketDataEvent](cfg.MDRing.Size)
}

// NewMetrics constructs the Prometheus metrics handle.
func NewMetrics(registry prometheus.Registerer, logger *zap.Logger) *metrics.Metrics {
	return metrics.New(registry, logger)
}

// NewRisk constructs the pre-trade risk gate from cfg.Risk, wiring its
// rejection hook to the metrics handle's per-reason counters.
func NewRisk(cfg config.CoreConfig, m *metrics.Metrics) *risk.PreTradeRisk {
	r := risk.New(cfg.Risk.MaxNotional, types.Qty(cfg.Risk.MaxOrderQty))
	r.SetRejectionHook(m.RejectionHook())
	return r
}

// NewMarketDataHandler constructs the handler over the provided book and
// ring, and registers fx lifecycle hooks to Start/Stop its worker
// goroutine.
func NewMarketDataHandler(lc fx.Lifecycle, b *book.OrderBook, r *ring.SPSC[types.MarketDataEvent], logger *zap.Logger) *marketdata.Handler {
	h := marketdata.New(b, r, nil, logger)
	sessionID := uuid.NewString()
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("session starting", zap.String("session_id", sessionID))
			h.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			h.Stop()
			return nil
		},
	})
	return h
}

// NewStrategyEngine constructs the strategy engine over the shared
// ring, cfg.AS/cfg.OBI/cfg.Strategy, and the wired risk gate.
func NewStrategyEngine(cfg config.CoreConfig, r *ring.SPSC[types.MarketDataEvent], riskGate *risk.PreTradeRisk, logger *zap.Logger) *strategy.Engine {
	e := strategy.New(r, cfg.AS.Gamma, cfg.AS.Sigma, cfg.AS.TSeconds, cfg.OBI.Alpha, 0, riskGate, logger)
	e.SetK(cfg.Strategy.K)
	return e
}
