// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package types

// SynWindowState is the per-source TCP SYN sliding-window counter.
type SynWindowState struct {
	WindowStartNs uint64
	SynCount      uint32
	_             [4]byte
}

// TokenBucketState is the per-source UDP token-bucket counter.
type TokenBucketState struct {
	LastSeenNs uint64
	Tokens     uint32
	_          [4]byte
}

// RateLimitConfig parameterizes both limiters: SynRateLimit and
// SynBurstCeiling bound the TCP SYN window (either predicate drops), and
// RefillPeriodNs/Burst parameterize the UDP token bucket.
type RateLimitConfig struct {
	RefillPeriodNs  uint64
	Burst           uint32
	SynRateLimit    uint32
	SynBurstCeiling uint32
}

// DefaultRateLimitConfig matches spec defaults: 1ms refill / 100 token
// burst, SYN rate 20/s, SYN burst ceiling 100/s.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RefillPeriodNs:  1_000_000,
		Burst:           100,
		SynRateLimit:    20,
		SynBurstCeiling: 100,
	}
}

// SynWindowNs is the fixed 1-second rolling window width for the TCP SYN
// limiter.
const SynWindowNs uint64 = 1_000_000_000

// Idle thresholds for flow-table freshness, in nanoseconds.
const (
	TCPIdleNs uint64 = 15 * 1_000_000_000
	UDPIdleNs uint64 = 5 * 1_000_000_000
)
