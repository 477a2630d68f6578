// Package metrics exposes Prometheus gauges and counters for the core's
// hot-path components. Reading or updating a metric never gates a
// hot-path decision; every update here is a side observation taken by
// the caller after the fact.
//
// Grounded on the teacher's internal/metrics/websocket_metrics.go:
// a struct of prometheus.Gauge/Counter fields built in one constructor
// that takes a prometheus.Registerer and a *zap.Logger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-core/internal/risk"
)

// Metrics holds the gauges and counters exported for one core instance.
type Metrics struct {
	poolUsed     prometheus.Gauge
	poolCapacity prometheus.Gauge

	ringOccupancySPSC prometheus.Gauge
	ringOccupancyMPMC prometheus.Gauge

	ordersProcessed prometheus.Counter
	tradesExecuted  prometheus.Counter

	riskNotional        prometheus.Gauge
	riskRejectedKilled  prometheus.Counter
	riskRejectedFatFing prometheus.Counter
	riskRejectedCap     prometheus.Counter

	logger *zap.Logger
}

// New registers every gauge/counter against registry and returns the
// handle used to update them.
func New(registry prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{
		poolUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradsys_core_pool_used",
			Help: "Order nodes currently allocated from the fixed-capacity pool",
		}),
		poolCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradsys_core_pool_capacity",
			Help: "Fixed capacity of the order node pool",
		}),
		ringOccupancySPSC: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradsys_core_spsc_ring_occupancy",
			Help: "Number of events currently queued in the MD-to-strategy SPSC ring",
		}),
		ringOccupancyMPMC: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradsys_core_mpmc_ring_occupancy",
			Help: "Number of events currently queued in an MPMC fan-in ring",
		}),
		ordersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradsys_core_orders_processed_total",
			Help: "Total orders accepted into the book",
		}),
		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradsys_core_trades_executed_total",
			Help: "Total resting orders touched by Match",
		}),
		riskNotional: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradsys_core_risk_notional",
			Help: "Current accumulated notional tracked by the pre-trade risk gate",
		}),
		riskRejectedKilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradsys_core_risk_rejected_killed_total",
			Help: "Orders rejected because the kill switch was tripped",
		}),
		riskRejectedFatFing: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradsys_core_risk_rejected_fat_finger_total",
			Help: "Orders rejected for non-positive or oversized quantity",
		}),
		riskRejectedCap: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradsys_core_risk_rejected_notional_cap_total",
			Help: "Orders rejected for breaching the notional cap",
		}),
		logger: logger,
	}
	registry.MustRegister(
		m.poolUsed, m.poolCapacity,
		m.ringOccupancySPSC, m.ringOccupancyMPMC,
		m.ordersProcessed, m.tradesExecuted,
		m.riskNotional, m.riskRejectedKilled, m.riskRejectedFatFing, m.riskRejectedCap,
	)
	return m
}

// ObservePool records a pool's current usage and capacity.
func (m *Metrics) ObservePool(used, capacity int) {
	m.poolUsed.Set(float64(used))
	m.poolCapacity.Set(float64(capacity))
}

// ObserveSPSCOccupancy records the MD-to-strategy ring's current depth.
func (m *Metrics) ObserveSPSCOccupancy(depth uint64) {
	m.ringOccupancySPSC.Set(float64(depth))
}

// ObserveMPMCOccupancy records an MPMC ring's current depth.
func (m *Metrics) ObserveMPMCOccupancy(depth uint64) {
	m.ringOccupancyMPMC.Set(float64(depth))
}

// IncOrdersProcessed increments the accepted-orders counter.
func (m *Metrics) IncOrdersProcessed() { m.ordersProcessed.Inc() }

// IncTradesExecuted increments the fills counter by the number of
// resting orders touched.
func (m *Metrics) IncTradesExecuted(n int) { m.tradesExecuted.Add(float64(n)) }

// ObserveRiskNotional records the risk gate's current accumulated
// notional.
func (m *Metrics) ObserveRiskNotional(notional int64) {
	m.riskNotional.Set(float64(notional))
}

// RejectionHook returns a risk.RejectReason callback wired to the
// per-reason rejection counters, for risk.PreTradeRisk.SetRejectionHook.
func (m *Metrics) RejectionHook() func(risk.RejectReason) {
	return func(reason risk.RejectReason) {
		switch reason {
		case risk.RejectKilled:
			m.riskRejectedKilled.Inc()
		case risk.RejectFatFinger:
			m.riskRejectedFatFing.Inc()
		case risk.RejectNotionalCap:
			m.riskRejectedCap.Inc()
		default:
			m.logger.Warn("unrecognized risk rejection reason", zap.String("reason", string(reason)))
		}
	}
}
