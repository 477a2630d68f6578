package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abdoElHodaky/tradsys-core/internal/book"
	"github.com/abdoElHodaky/tradsys-core/internal/ring"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

func newTestHandler(t *testing.T) (*Handler, *ring.SPSC[types.MarketDataEvent]) {
	t.Helper()
	b, err := book.New(8, nil)
	require.NoError(t, err)
	r := ring.NewSPSC[types.MarketDataEvent](16)
	return New(b, r, nil, zaptest.NewLogger(t)), r
}

func TestOnTrade_PublishesSnapshotWithLastTrade(t *testing.T) {
	h, r := newTestHandler(t)
	h.OrderBook().AddOrder(1, 100, 10, types.Buy)
	h.OrderBook().AddOrder(2, 200, 5, types.Sell)

	h.OnTrade(150, 3, 42)

	var ev types.MarketDataEvent
	require.True(t, r.TryPop(&ev))
	require.Equal(t, types.MDTrade, ev.Flag)
	require.EqualValues(t, 42, ev.TsNs)
	require.EqualValues(t, 150, ev.LastTrade.Price)
	require.EqualValues(t, 3, ev.LastTrade.Qty)
	require.EqualValues(t, 100, ev.Bid)
	require.EqualValues(t, 200, ev.Ask)
	require.EqualValues(t, 10, ev.BidVolume)
	require.EqualValues(t, 5, ev.AskVolume)
}

func TestOnBookUpdate_PublishesSnapshotOnly(t *testing.T) {
	h, r := newTestHandler(t)
	h.OrderBook().AddOrder(1, 100, 10, types.Buy)

	h.OnBookUpdate(types.Buy, 100, 10, true, 7)

	var ev types.MarketDataEvent
	require.True(t, r.TryPop(&ev))
	require.Equal(t, types.MDBookUpdate, ev.Flag)
	require.EqualValues(t, 100, ev.Bid)
}

func TestOnTrade_DropsEventWhenRingFull(t *testing.T) {
	b, err := book.New(8, nil)
	require.NoError(t, err)
	r := ring.NewSPSC[types.MarketDataEvent](1)
	h := New(b, r, nil, zaptest.NewLogger(t))

	h.OnTrade(1, 1, 0)
	require.NotPanics(t, func() { h.OnTrade(2, 2, 0) })
}

func TestStartStop_IsIdempotentAndJoinsWorker(t *testing.T) {
	h, _ := newTestHandler(t)
	h.Start()
	h.Start() // second Start is a no-op
	time.Sleep(2 * PollInterval)
	h.Stop()
	h.Stop() // second Stop is a no-op
}
