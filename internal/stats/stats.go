// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package stats holds the data plane's in-band observability: the
// fastpath/slowpath/whitelist-miss counters spec.md §2/§7 names, plus a
// per-stage drop counter. Every increment on the packet path is a relaxed
// atomic add (spec.md §5); nothing here ever touches Prometheus directly —
// internal/admin syncs these atomics into Prometheus instruments only when
// /metrics is scraped.
package stats

import "sync/atomic"

// Counters is the full set of atomics touched on the per-packet path.
type Counters struct {
	FastHits      atomic.Uint64
	SlowHits      atomic.Uint64
	WhitelistMiss atomic.Uint64

	DropWhitelist atomic.Uint64
	DropPanic     atomic.Uint64
	DropACL       atomic.Uint64
	DropBlacklist atomic.Uint64
	DropGate      atomic.Uint64
	DropSYNRate   atomic.Uint64
	DropUDPToken  atomic.Uint64
}

// New returns a zeroed Counters block.
func New() *Counters {
	return &Counters{}
}

// Snapshot is a point-in-time read of every counter, used by /metrics and
// /healthz.
type Snapshot struct {
	FastHits      uint64
	SlowHits      uint64
	WhitelistMiss uint64
	DropWhitelist uint64
	DropPanic     uint64
	DropACL       uint64
	DropBlacklist uint64
	DropGate      uint64
	DropSYNRate   uint64
	DropUDPToken  uint64
}

// Snapshot reads every counter without resetting it.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		FastHits:      c.FastHits.Load(),
		SlowHits:      c.SlowHits.Load(),
		WhitelistMiss: c.WhitelistMiss.Load(),
		DropWhitelist: c.DropWhitelist.Load(),
		DropPanic:     c.DropPanic.Load(),
		DropACL:       c.DropACL.Load(),
		DropBlacklist: c.DropBlacklist.Load(),
		DropGate:      c.DropGate.Load(),
		DropSYNRate:   c.DropSYNRate.Load(),
		DropUDPToken:  c.DropUDPToken.Load(),
	}
}
