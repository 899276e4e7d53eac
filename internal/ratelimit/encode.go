// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package ratelimit implements the two per-source limiters the state stage
// combines: a TCP SYN sliding window and a UDP token bucket, both keyed by
// {family, source address} so no state ever leaks across sources.
package ratelimit

import (
	"encoding/binary"

	"sentrywall.dev/sentrywall/internal/types"
)

func encodeSourceKey(k types.RateSourceKey) []byte {
	b := make([]byte, 17)
	if k.IsV6 {
		b[0] = 1
	}
	copy(b[1:], k.Addr[:])
	return b
}

func encodeSynState(s types.SynWindowState) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint64(b[0:8], s.WindowStartNs)
	binary.BigEndian.PutUint32(b[8:12], s.SynCount)
	return b
}

func decodeSynState(b []byte) (types.SynWindowState, bool) {
	var s types.SynWindowState
	if len(b) != 12 {
		return s, false
	}
	s.WindowStartNs = binary.BigEndian.Uint64(b[0:8])
	s.SynCount = binary.BigEndian.Uint32(b[8:12])
	return s, true
}

func encodeTokenState(s types.TokenBucketState) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint64(b[0:8], s.LastSeenNs)
	binary.BigEndian.PutUint32(b[8:12], s.Tokens)
	return b
}

func decodeTokenState(b []byte) (types.TokenBucketState, bool) {
	var s types.TokenBucketState
	if len(b) != 12 {
		return s, false
	}
	s.LastSeenNs = binary.BigEndian.Uint64(b[0:8])
	s.Tokens = binary.BigEndian.Uint32(b[8:12])
	return s, true
}

func encodeConfig(c types.RateLimitConfig) []byte {
	b := make([]byte, 20)
	binary.BigEndian.PutUint64(b[0:8], c.RefillPeriodNs)
	binary.BigEndian.PutUint32(b[8:12], c.Burst)
	binary.BigEndian.PutUint32(b[12:16], c.SynRateLimit)
	binary.BigEndian.PutUint32(b[16:20], c.SynBurstCeiling)
	return b
}

func decodeConfig(b []byte) (types.RateLimitConfig, bool) {
	var c types.RateLimitConfig
	if len(b) != 20 {
		return c, false
	}
	c.RefillPeriodNs = binary.BigEndian.Uint64(b[0:8])
	c.Burst = binary.BigEndian.Uint32(b[8:12])
	c.SynRateLimit = binary.BigEndian.Uint32(b[12:16])
	c.SynBurstCeiling = binary.BigEndian.Uint32(b[16:20])
	return c, true
}
