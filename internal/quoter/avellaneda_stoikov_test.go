package quoter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReservationPrice_MatchesWorkedExample(t *testing.T) {
	a := New(0.1, 0.02, 3600)
	r := a.ReservationPrice(100, 0, 10)
	require.InDelta(t, 98.56, r, 1e-9)
}

func TestReservationPrice_CollapsesToMidPastSessionEnd(t *testing.T) {
	a := New(0.1, 0.02, 3600)
	r := a.ReservationPrice(100, 3600, 10)
	require.Equal(t, 100.0, r)
	r2 := a.ReservationPrice(100, 4000, 10)
	require.Equal(t, 100.0, r2)
}

func TestOptimalHalfSpread_ZeroAtZeroGamma(t *testing.T) {
	a := New(0, 0.02, 3600)
	require.Equal(t, 0.0, a.OptimalHalfSpread(1.5))
}

func TestGetQuotes_SymmetricAroundReservationWithoutSkew(t *testing.T) {
	a := New(0.1, 0.02, 3600)
	bid, ask := a.GetQuotes(100, 0, 0, 1.5, 0)
	r := a.ReservationPrice(100, 0, 0)
	half := a.OptimalHalfSpread(1.5)
	require.InDelta(t, r-half, bid, 1e-12)
	require.InDelta(t, r+half, ask, 1e-12)
}

func TestGetQuotes_PositiveSkewWidensBothSides(t *testing.T) {
	a := New(0.1, 0.02, 3600)
	bidNoSkew, askNoSkew := a.GetQuotes(100, 0, 0, 1.5, 0)
	bidSkew, askSkew := a.GetQuotes(100, 0, 0, 1.5, 1)
	require.Less(t, bidSkew, bidNoSkew)
	require.Greater(t, askSkew, askNoSkew)
}

func TestSetters_TakeEffectOnSubsequentCalls(t *testing.T) {
	a := New(0.1, 0.02, 3600)
	a.SetGamma(0.2)
	a.SetSigma(0.03)
	a.SetT(7200)
	r := a.ReservationPrice(100, 0, 10)
	require.InDelta(t, 100-10*0.2*0.03*0.03*7200, r, 1e-9)
}
