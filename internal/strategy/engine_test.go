package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdoElHodaky/tradsys-core/internal/risk"
	"github.com/abdoElHodaky/tradsys-core/internal/ring"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

type quote struct {
	price types.Price
	side  types.Side
	isBid bool
}

func TestPoll_DrainsRingAndEmitsBothSidesWhenRiskAccepts(t *testing.T) {
	r := ring.NewSPSC[types.MarketDataEvent](8)
	rg := risk.New(1_000_000_000, 10_000)
	e := New(r, 0.1, 0.02, 3600, 0.1, 0, rg, nil)
	// With the default k=1.5 the half-spread is about 0.04, so both sides
	// would round to the mid; k=0.1 gives a half-spread of 10*ln(2).
	e.SetK(0.1)

	var quotes []quote
	e.SetOrderCallback(func(id types.OrderID, price types.Price, qty types.Qty, side types.Side, isBid bool) {
		quotes = append(quotes, quote{price, side, isBid})
	})

	r.TryPush(types.MarketDataEvent{Flag: types.MDTrade, TsNs: 0, Mid: 100, BidVolume: 50, AskVolume: 50})
	e.Poll()

	require.Len(t, quotes, 2)
	require.True(t, quotes[0].isBid)
	require.Equal(t, types.Buy, quotes[0].side)
	require.False(t, quotes[1].isBid)
	require.Equal(t, types.Sell, quotes[1].side)
	require.Less(t, quotes[0].price, quotes[1].price)
}

func TestPoll_EmptyRingIsNoop(t *testing.T) {
	r := ring.NewSPSC[types.MarketDataEvent](8)
	e := New(r, 0.1, 0.02, 3600, 0.1, 0, risk.New(1_000_000, 1000), nil)
	called := false
	e.SetOrderCallback(func(types.OrderID, types.Price, types.Qty, types.Side, bool) { called = true })
	e.Poll()
	require.False(t, called)
}

func TestPoll_RiskRejectionSuppressesBothSides(t *testing.T) {
	r := ring.NewSPSC[types.MarketDataEvent](8)
	rg := risk.New(1_000_000_000, 1) // fat-finger cap below DefaultQuoteQty
	e := New(r, 0.1, 0.02, 3600, 0.1, 0, rg, nil)

	var calls int
	e.SetOrderCallback(func(types.OrderID, types.Price, types.Qty, types.Side, bool) { calls++ })

	r.TryPush(types.MarketDataEvent{Flag: types.MDTrade, TsNs: 0, Mid: 100, BidVolume: 50, AskVolume: 50})
	e.Poll()

	require.Equal(t, 0, calls)
}

func TestPoll_UpdatesOBISignalAndReservationPrice(t *testing.T) {
	r := ring.NewSPSC[types.MarketDataEvent](8)
	e := New(r, 0.1, 0.02, 3600, 0.5, 0, risk.New(1_000_000_000, 10_000), nil)

	r.TryPush(types.MarketDataEvent{Flag: types.MDTrade, TsNs: 0, Mid: 100, BidVolume: 100, AskVolume: 0})
	e.Poll()

	require.InDelta(t, 0.5, e.OBISignal(), 1e-9)
	require.InDelta(t, 100.0, e.ReservationPrice(), 1e-9) // q=0 so reservation == mid
}

func TestPoll_NegativeTSecClampsToZero(t *testing.T) {
	r := ring.NewSPSC[types.MarketDataEvent](8)
	e := New(r, 0.1, 0.02, 3600, 0.1, 1000, risk.New(1_000_000_000, 10_000), nil)

	r.TryPush(types.MarketDataEvent{Flag: types.MDTrade, TsNs: 0, Mid: 100, BidVolume: 50, AskVolume: 50})
	require.NotPanics(t, func() { e.Poll() })
}
