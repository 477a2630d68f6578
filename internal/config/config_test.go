package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() CoreConfig {
	c := Default()
	c.Risk = RiskConfig{MaxNotional: 1_000_000, MaxOrderQty: 1000}
	return c
}

func TestValidate_AcceptsDefaultPlusRisk(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsNonPowerOfTwoRingSize(t *testing.T) {
	c := validConfig()
	c.MDRing.Size = 1000
	require.Error(t, c.Validate())
}

func TestValidate_RejectsZeroMaxOrders(t *testing.T) {
	c := validConfig()
	c.OrderBook.MaxOrders = 0
	require.Error(t, c.Validate())
}

func TestValidate_RejectsZeroRiskCaps(t *testing.T) {
	c := validConfig()
	c.Risk.MaxNotional = 0
	require.Error(t, c.Validate())
}

func TestValidate_RejectsOutOfRangeOBIAlpha(t *testing.T) {
	c := validConfig()
	c.OBI.Alpha = 1.5
	require.Error(t, c.Validate())
}

func TestValidate_RejectsNonPositiveSessionLength(t *testing.T) {
	c := validConfig()
	c.AS.TSeconds = 0
	require.Error(t, c.Validate())
}

func TestDefaultOrderBookConfig_MatchesSpecDefault(t *testing.T) {
	require.Equal(t, 1<<20, DefaultOrderBookConfig().MaxOrders)
}

func TestDefaultMDRingConfig_MatchesSpecDefault(t *testing.T) {
	require.EqualValues(t, 65536, DefaultMDRingConfig().Size)
}

func TestLoadYAML_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadYAML("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadYAML_ParsesAndValidatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.yaml")
	yamlBody := `
order_book:
  max_orders: 1024
md_ring:
  size: 1024
risk:
  max_notional: 1000000
  max_order_qty: 1000
avellaneda_stoikov:
  gamma: 0.1
  sigma: 0.02
  t_seconds: 3600
obi:
  alpha: 0.1
strategy:
  k: 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := LoadYAML(path)
	require.NoError(t, err)
	require.Equal(t, 1024, cfg.OrderBook.MaxOrders)
	require.EqualValues(t, 1024, cfg.MDRing.Size)
}

func TestLoadYAML_RejectsInvalidParsedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order_book:\n  max_orders: 0\n"), 0o644))

	_, err := LoadYAML(path)
	require.Error(t, err)
}

func TestLoadYAML_MissingFileReturnsError(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
