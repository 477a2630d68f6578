package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOBI_ZeroVolumeIsZero(t *testing.T) {
	require.Equal(t, 0.0, OBI(0, 0))
}

func TestOBI_RangeAndSign(t *testing.T) {
	require.InDelta(t, 1.0, OBI(100, 0), 1e-12)
	require.InDelta(t, -1.0, OBI(0, 100), 1e-12)
	require.InDelta(t, 0.2, OBI(60, 40), 1e-12)
}

func TestOBISignal_InitializesToZeroNotFirstSample(t *testing.T) {
	s := New(0.5)
	require.Equal(t, 0.0, s.Value())
}

func TestOBISignal_UpdateSmoothsTowardRaw(t *testing.T) {
	s := New(0.5)
	v1 := s.Update(100, 0) // raw=1, ema = 0.5*1 + 0.5*0 = 0.5
	require.InDelta(t, 0.5, v1, 1e-12)
	v2 := s.Update(100, 0) // ema = 0.5*1 + 0.5*0.5 = 0.75
	require.InDelta(t, 0.75, v2, 1e-12)
}

func TestOBISignal_Reset(t *testing.T) {
	s := New(0.5)
	s.Update(100, 0)
	s.Reset()
	require.Equal(t, 0.0, s.Value())
}
