// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import (
	"sentrywall.dev/sentrywall/internal/flow"
	"sentrywall.dev/sentrywall/internal/types"
)

// activeSlot picks the one flow-table slot (of the four candidates)
// relevant to this packet's family/proto combination, and its encoded
// byte key. The other three candidate keys are zero-valued and would
// never legitimately match a stored entry (spec.md §4.6: "unused slots
// are zeroed via masks so at most one slot can hit").
func activeSlot(ctx *packetContext) (slot flow.Slot, key []byte, ok bool) {
	switch {
	case ctx.l3.IsV4 && ctx.l3.L4Proto == types.ProtoTCP:
		return flow.SlotV4TCP, flow.EncodeV4(ctx.slots.V4TCP), true
	case ctx.l3.IsV4 && ctx.l3.L4Proto == types.ProtoUDP:
		return flow.SlotV4UDP, flow.EncodeV4(ctx.slots.V4UDP), true
	case ctx.l3.IsV6 && ctx.l3.L4Proto == types.ProtoTCP:
		return flow.SlotV6TCP, flow.EncodeV6(ctx.slots.V6TCP), true
	case ctx.l3.IsV6 && ctx.l3.L4Proto == types.ProtoUDP:
		return flow.SlotV6UDP, flow.EncodeV6(ctx.slots.V6UDP), true
	}
	return 0, nil, false
}

// stepFastpath implements S4 (spec.md §4.6): the per-flow timestamp cache.
// A fresh hit for UDP applies the token bucket inline; a fresh hit for TCP
// defers to the state stage for its own rate limiting; no fresh hit falls
// through to the deep-inspector gate. ICMP/ICMPv6 always passes here,
// since the ACL stage has already admitted it.
func stepFastpath(p *Pipeline, ctx *packetContext) result {
	if isICMP(ctx.l3) {
		return pass()
	}

	slot, key, ok := activeSlot(ctx)
	if !ok {
		return tail(StageGate)
	}

	if ctx.l3.L4Proto == types.ProtoTCP {
		flags, fok := ctx.l3.TCPFlags(ctx.f)
		if fok && flags&(types.TCPFlagFIN|types.TCPFlagRST) != 0 {
			p.flows.Delete(slot, key)
			ctx.sawTCPFinRst = true
		}
	}

	if !p.flows.FreshHit(slot, key, ctx.now) {
		p.counters.SlowHits.Add(1)
		return tail(StageGate)
	}
	p.counters.FastHits.Add(1)

	if ctx.l3.L4Proto == types.ProtoUDP {
		if !p.limiter.AllowUDP(rateSource(ctx.l3), ctx.now) {
			p.counters.DropUDPToken.Add(1)
			return drop()
		}
		return pass()
	}

	return tail(StageState)
}
