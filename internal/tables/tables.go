// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package tables declares the shared, read-mostly containers every pipeline
// stage consults, and the four kinds of container the external control
// tool and the data-plane agree on: plain key/value hashes, LRU-evicting flow caches,
// single-slot scalars, and per-CPU counter arrays.
//
// A table is addressed by name, exactly as in the control-plane boundary:
// the same set of names backs both the in-process simulator used by tests
// and non-Linux builds, and the pinned eBPF-map backend used on Linux.
package tables

import "sentrywall.dev/sentrywall/internal/errors"

// Names of every table defined at the control-plane boundary.
const (
	Whitelist     = "whitelist"
	PanicFlag     = "panic_flag"
	GlobalBypass  = "global_bypass"
	ACLPorts      = "acl_ports"
	ICMPAllow     = "icmp_allow"
	IPv4Drop      = "ipv4_drop"
	IPv6Drop      = "ipv6_drop"
	TCPFlow       = "tcp_flow"
	UDPFlow       = "udp_flow"
	TCP6Flow      = "tcp6_flow"
	UDP6Flow      = "udp6_flow"
	FlowTableV4   = "flow_table_v4"
	FlowTableV6   = "flow_table_v6"
	RateLimitCfg  = "rate_limit_cfg"
	TCPRate       = "tcp_rate"
	UDPRateLimit  = "udp_rl"
	PathStats     = "path_stats"
)

// Sizes holds the fixed table capacities decided at startup (spec.md §5).
type Sizes struct {
	TCPFlow, UDPFlow, TCP6Flow int
	UDP6Flow                   int
	Bypass                     int
	Whitelist                  int
	Blacklist                  int
	RatePerCPU                 int
}

// DefaultSizes matches spec.md §5 literally.
func DefaultSizes() Sizes {
	return Sizes{
		TCPFlow:    32768,
		UDPFlow:    32768,
		TCP6Flow:   32768,
		UDP6Flow:   1024,
		Bypass:     65536,
		Whitelist:  64,
		Blacklist:  4096,
		RatePerCPU: 128,
	}
}

// KV is a plain hash table keyed by a fixed-size byte slice. Implementations
// tolerate concurrent Get/Set/Delete from many goroutines; a stale read
// never violates safety (spec.md §5).
type KV interface {
	Get(key []byte) (value []byte, ok bool)
	Set(key, value []byte) error
	Delete(key []byte) error
	Len() int
	// Range calls fn for every entry; fn returning false stops iteration.
	Range(fn func(key, value []byte) bool)
}

// LRU is a KV table with bounded capacity and LRU eviction, used for the
// flow fastpath tables.
type LRU interface {
	KV
	Cap() int
}

// Slot is a single-entry scalar table (panic_flag, global_bypass,
// acl_ports, rate_limit_cfg).
type Slot interface {
	Load() []byte
	Store(value []byte) error
}

// PerCPUCounter is a relaxed-add counter array, used for path_stats and
// whitelist-miss accounting. Add is safe for concurrent use from any
// goroutine.
type PerCPUCounter interface {
	Add(index int, delta uint64)
	Value(index int) uint64
}

// ErrNotFound is returned by backends that distinguish "no such table" from
// a present-but-empty one; most callers only need the Get ok bool instead.
var ErrNotFound = errors.New(errors.KindNotFound, "table not found")
