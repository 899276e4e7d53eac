// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

func newTestLimiter() *Limiter {
	return NewLimiter(tables.NewMemSimSet(tables.DefaultSizes()))
}

func TestConfig_DefaultsWhenSlotEmpty(t *testing.T) {
	l := newTestLimiter()
	assert.Equal(t, types.DefaultRateLimitConfig(), l.Config())
}

func TestSetConfigThenConfig_RoundTrips(t *testing.T) {
	l := newTestLimiter()
	cfg := types.RateLimitConfig{RefillPeriodNs: 500_000, Burst: 10, SynRateLimit: 5, SynBurstCeiling: 8}

	require.NoError(t, l.SetConfig(cfg))
	assert.Equal(t, cfg, l.Config())
}

func TestAllowSYN_FirstTwentyPacketsInWindowPass(t *testing.T) {
	l := newTestLimiter()
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	for i := 0; i < 20; i++ {
		assert.True(t, l.AllowSYN(src, 1_000_000_000), "packet %d should pass", i+1)
	}
}

func TestAllowSYN_TwentyFirstPacketInWindowDrops(t *testing.T) {
	l := newTestLimiter()
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	for i := 0; i < 20; i++ {
		require.True(t, l.AllowSYN(src, 1_000_000_000))
	}
	assert.False(t, l.AllowSYN(src, 1_000_000_000))
}

func TestAllowSYN_NewWindowResetsCount(t *testing.T) {
	l := newTestLimiter()
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	for i := 0; i < 20; i++ {
		require.True(t, l.AllowSYN(src, 1_000_000_000))
	}
	require.False(t, l.AllowSYN(src, 1_000_000_000))

	// A new packet after the 1s window has elapsed starts a fresh window.
	assert.True(t, l.AllowSYN(src, 1_000_000_000+types.SynWindowNs+1))
}

func TestAllowSYN_DistinctSourcesHaveIndependentState(t *testing.T) {
	l := newTestLimiter()
	a := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}
	b := types.RateSourceKey{Addr: [16]byte{2, 2, 2, 2}}

	for i := 0; i < 20; i++ {
		require.True(t, l.AllowSYN(a, 1_000_000_000))
	}
	require.False(t, l.AllowSYN(a, 1_000_000_000))

	assert.True(t, l.AllowSYN(b, 1_000_000_000))
}

func TestAllowUDP_ExhaustsBurstThenDrops(t *testing.T) {
	l := newTestLimiter()
	require.NoError(t, l.SetConfig(types.RateLimitConfig{RefillPeriodNs: 1_000_000, Burst: 2}))
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	assert.True(t, l.AllowUDP(src, 0))
	assert.True(t, l.AllowUDP(src, 0))
	assert.False(t, l.AllowUDP(src, 0))
}

func TestAllowUDP_RefillsLinearlyWithElapsedTime(t *testing.T) {
	l := newTestLimiter()
	require.NoError(t, l.SetConfig(types.RateLimitConfig{RefillPeriodNs: 1_000_000, Burst: 2}))
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	require.True(t, l.AllowUDP(src, 0))
	require.True(t, l.AllowUDP(src, 0))
	require.False(t, l.AllowUDP(src, 0))

	// One refill period later, exactly one token has accrued.
	assert.True(t, l.AllowUDP(src, 1_000_000))
	assert.False(t, l.AllowUDP(src, 1_000_000))
}

func TestAllowUDP_FullyRefillsAfterIdleThreshold(t *testing.T) {
	l := newTestLimiter()
	require.NoError(t, l.SetConfig(types.RateLimitConfig{RefillPeriodNs: 1_000_000, Burst: 5}))
	src := types.RateSourceKey{Addr: [16]byte{1, 1, 1, 1}}

	for i := 0; i < 5; i++ {
		require.True(t, l.AllowUDP(src, 0))
	}
	require.False(t, l.AllowUDP(src, 0))

	// After UDPIdleNs of silence the bucket is fully refilled, not linearly
	// accrued.
	for i := 0; i < 5; i++ {
		assert.True(t, l.AllowUDP(src, types.UDPIdleNs))
	}
}
