// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ratelimit

import (
	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

// Limiter wraps the tcp_rate, udp_rl, and rate_limit_cfg tables and
// implements both per-source limiters from spec.md §4.9.
type Limiter struct {
	cfgSlot tables.Slot
	tcpRate tables.KV
	udpRate tables.KV
}

// NewLimiter wraps the rate-limit tables in set.
func NewLimiter(set *tables.Set) *Limiter {
	return &Limiter{cfgSlot: set.RateLimitCfg, tcpRate: set.TCPRate, udpRate: set.UDPRateLimit}
}

// Config reads the current rate-limit configuration, falling back to
// spec.md defaults if the slot is empty or malformed (spec.md §7: a
// missing rate-limit config defaults rather than errors). A slot that
// still holds its all-zero initial value counts as empty.
func (l *Limiter) Config() types.RateLimitConfig {
	raw := l.cfgSlot.Load()
	cfg, ok := decodeConfig(raw)
	if !ok || cfg == (types.RateLimitConfig{}) {
		return types.DefaultRateLimitConfig()
	}
	return cfg
}

// SetConfig overwrites the rate-limit configuration.
func (l *Limiter) SetConfig(cfg types.RateLimitConfig) error {
	return l.cfgSlot.Store(encodeConfig(cfg))
}

// AllowSYN applies the TCP SYN sliding-window limiter to a SYN-only packet
// (SYN set, ACK clear) from src at time now, per spec.md §4.9. It reports
// whether the packet should be admitted (true) or dropped by the rate
// limiter (false); both the rate and burst thresholds are checked
// independently, either one drops.
func (l *Limiter) AllowSYN(src types.RateSourceKey, now uint64) bool {
	cfg := l.Config()
	key := encodeSourceKey(src)

	state, ok := decodeSynState(mustGet(l.tcpRate, key))
	if !ok {
		state = types.SynWindowState{WindowStartNs: now, SynCount: 0}
	}

	if now-state.WindowStartNs < types.SynWindowNs {
		state.SynCount++
	} else {
		state.WindowStartNs = now
		state.SynCount = 1
	}

	l.tcpRate.Set(key, encodeSynState(state))

	if state.SynCount > cfg.SynRateLimit {
		return false
	}
	if state.SynCount > cfg.SynBurstCeiling {
		return false
	}
	return true
}

func mustGet(t tables.KV, key []byte) []byte {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	return v
}
