// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import (
	"sentrywall.dev/sentrywall/internal/bypass"
	"sentrywall.dev/sentrywall/internal/flow"
	"sentrywall.dev/sentrywall/internal/frame"
	"sentrywall.dev/sentrywall/internal/ratelimit"
	"sentrywall.dev/sentrywall/internal/stats"
	"sentrywall.dev/sentrywall/internal/tables"
)

// Pipeline is the fully-wired stage chain: one instance owns the shared
// tables and the flow/bypass/rate-limit helpers built on top of them, and
// is safe to call Run on concurrently from many goroutines (spec.md §5:
// each packet is processed end-to-end without suspension, and multiple
// packets may be in flight on separate goroutines at once).
type Pipeline struct {
	set       *tables.Set
	flows     *flow.Manager
	gate      *bypass.Gate
	limiter   *ratelimit.Limiter
	counters  *stats.Counters
	jumpTable [numStages]stageFunc
}

// New builds a Pipeline over set, with a fresh counters block.
func New(set *tables.Set) *Pipeline {
	p := &Pipeline{
		set:      set,
		flows:    flow.NewManager(set),
		gate:     bypass.NewGate(set),
		limiter:  ratelimit.NewLimiter(set),
		counters: stats.New(),
	}
	p.jumpTable = [numStages]stageFunc{
		StageWhitelist: stepWhitelist,
		StagePanic:     stepPanic,
		StageACL:       stepACL,
		StageBlacklist: stepBlacklist,
		StageFastpath:  stepFastpath,
		StageGate:      stepGate,
		StageDispatch:  stepDispatch,
		StageState:     stepState,
	}
	return p
}

// Counters exposes the live counters block, for internal/stats and
// internal/admin to read.
func (p *Pipeline) Counters() *stats.Counters { return p.counters }

// Run decides PASS or DROP for one raw Ethernet frame received at time now
// (host-order nanoseconds, matching spec.md §9 Endianness).
func (p *Pipeline) Run(raw []byte, now uint64) Verdict {
	f := frame.New(raw)

	l3, ok := frame.Parse(f)
	if !ok {
		return VerdictDrop
	}
	if !l3.IsV4 && !l3.IsV6 {
		return VerdictPass
	}

	slots, ok := frame.BuildFlowSlots(f, l3)
	if !ok {
		return VerdictDrop
	}

	ctx := &packetContext{
		now:     now,
		f:       f,
		l3:      l3,
		l3ok:    true,
		slots:   slots,
		slotsOk: true,
	}

	return p.dispatch(StageWhitelist, ctx)
}
