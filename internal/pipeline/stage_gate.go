// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

// stepGate implements S5 (spec.md §4.7): a flow-key match against the
// deep-inspector's bypass table short-circuits with a DROP; otherwise a
// single global_bypass flag decides whether to PASS outright or continue
// to proto-dispatch.
func stepGate(p *Pipeline, ctx *packetContext) result {
	var matched bool
	if ctx.l3.IsV4 {
		switch {
		case ctx.slots.V4TCP.Proto != 0:
			matched = p.gate.MatchV4(ctx.slots.V4TCP)
		case ctx.slots.V4UDP.Proto != 0:
			matched = p.gate.MatchV4(ctx.slots.V4UDP)
		}
	} else if ctx.l3.IsV6 {
		switch {
		case ctx.slots.V6TCP.Proto != 0:
			matched = p.gate.MatchV6(ctx.slots.V6TCP)
		case ctx.slots.V6UDP.Proto != 0:
			matched = p.gate.MatchV6(ctx.slots.V6UDP)
		}
	}

	if matched {
		p.counters.DropGate.Add(1)
		return drop()
	}

	global := p.set.GlobalBypass.Load()
	if len(global) > 0 && global[0]&1 == 1 {
		return pass()
	}

	return tail(StageDispatch)
}
