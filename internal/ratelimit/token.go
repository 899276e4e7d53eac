// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ratelimit

import "sentrywall.dev/sentrywall/internal/types"

// AllowUDP applies the UDP token-bucket limiter to a packet from src at
// time now, per spec.md §4.9. It reports whether the packet should be
// admitted; on admission one token is consumed and the new state is
// stored.
func (l *Limiter) AllowUDP(src types.RateSourceKey, now uint64) bool {
	cfg := l.Config()
	key := encodeSourceKey(src)

	state, ok := decodeTokenState(mustGet(l.udpRate, key))
	if !ok {
		state = types.TokenBucketState{LastSeenNs: now, Tokens: cfg.Burst}
	} else {
		idle := now - state.LastSeenNs
		if idle >= types.UDPIdleNs {
			state.Tokens = cfg.Burst
		} else if cfg.RefillPeriodNs > 0 {
			refill := idle / cfg.RefillPeriodNs
			state.Tokens = minU32(cfg.Burst, state.Tokens+uint32(refill))
		}
	}

	allow := state.Tokens != 0
	if allow {
		state.Tokens--
	}
	state.LastSeenNs = now

	l.udpRate.Set(key, encodeTokenState(state))
	return allow
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
