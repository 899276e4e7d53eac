// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FillsDefaultsForOmittedBlocks(t *testing.T) {
	cfg, err := Decode("test.hcl", []byte(`schema_version = "1.0"

interface "eth0" {}
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"eth0"}, cfg.InterfaceNames())
	assert.Equal(t, uint32(20), cfg.RateLimitConfig().SynRateLimit)
	assert.Equal(t, 32768, cfg.Sizes().TCPFlow)
	assert.Equal(t, ":9401", cfg.AdminListenAddr())
}

func TestDecode_OverridesRateLimit(t *testing.T) {
	cfg, err := Decode("test.hcl", []byte(`
interface "eth0" {}

rate_limit {
  refill_period_ns  = 2000000
  burst             = 50
  syn_rate_limit    = 10
  syn_burst_ceiling = 40
}
`))
	require.NoError(t, err)

	rl := cfg.RateLimitConfig()
	assert.Equal(t, uint64(2_000_000), rl.RefillPeriodNs)
	assert.Equal(t, uint32(50), rl.Burst)
	assert.Equal(t, uint32(10), rl.SynRateLimit)
	assert.Equal(t, uint32(40), rl.SynBurstCeiling)
}

func TestDecode_RejectsMalformedHCL(t *testing.T) {
	_, err := Decode("test.hcl", []byte(`this is not valid hcl {{{`))
	assert.Error(t, err)
}

func TestDiff_EmptyWhenIdentical(t *testing.T) {
	a := Default()
	b := Default()

	diff, err := Diff(a, b)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestDiff_ReportsChangedField(t *testing.T) {
	a := Default()
	b := Default()
	b.RateLimit.SynRateLimit = 5

	diff, err := Diff(a, b)
	require.NoError(t, err)
	assert.Contains(t, diff, "syn_rate_limit")
}
