// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import "sentrywall.dev/sentrywall/internal/types"

// stepBlacklist implements S3 (spec.md §4.5): drops explicitly
// blacklisted sources and sources in a private/reserved range, for both
// address families. A drop here also invalidates any bypass-gate record
// for this flow so a freshly-blacklisted source cannot continue on the
// fast path.
func stepBlacklist(p *Pipeline, ctx *packetContext) result {
	l3 := ctx.l3

	if l3.IsV4 {
		addr := l3.SrcAddr[:4]
		if isPrivateV4(addr) {
			p.invalidateBypass(ctx)
			p.counters.DropBlacklist.Add(1)
			return drop()
		}
		if _, found := p.set.IPv4Drop.Get(addr); found {
			p.invalidateBypass(ctx)
			p.counters.DropBlacklist.Add(1)
			return drop()
		}
	} else if l3.IsV6 {
		addr := l3.SrcAddr[:]
		if isPrivateV6(addr) {
			p.invalidateBypass(ctx)
			p.counters.DropBlacklist.Add(1)
			return drop()
		}
		if _, found := p.set.IPv6Drop.Get(addr); found {
			p.invalidateBypass(ctx)
			p.counters.DropBlacklist.Add(1)
			return drop()
		}
	}

	return tail(StageFastpath)
}

// isPrivateV4 reports whether addr falls in 10/8, 172.16/12, 192.168/16,
// or 169.254/16.
func isPrivateV4(addr []byte) bool {
	switch {
	case addr[0] == 10:
		return true
	case addr[0] == 172 && addr[1]&0xF0 == 16:
		return true
	case addr[0] == 192 && addr[1] == 168:
		return true
	case addr[0] == 169 && addr[1] == 254:
		return true
	}
	return false
}

// isPrivateV6 reports whether addr is a ULA (fc00::/7) or link-local
// (fe80::/10) address.
func isPrivateV6(addr []byte) bool {
	if addr[0]&0xFE == 0xFC {
		return true
	}
	if addr[0] == 0xFE && addr[1]&0xC0 == 0x80 {
		return true
	}
	return false
}

// invalidateBypass clears the bypass-gate record for whichever flow slot
// applies to this packet, if any.
func (p *Pipeline) invalidateBypass(ctx *packetContext) {
	if !ctx.slotsOk {
		return
	}
	var zeroV4 types.FlowKeyV4
	var zeroV6 types.FlowKeyV6

	switch {
	case ctx.l3.IsV4 && ctx.slots.V4TCP != zeroV4:
		p.gate.InvalidateV4(ctx.slots.V4TCP)
	case ctx.l3.IsV4 && ctx.slots.V4UDP != zeroV4:
		p.gate.InvalidateV4(ctx.slots.V4UDP)
	case ctx.l3.IsV6 && ctx.slots.V6TCP != zeroV6:
		p.gate.InvalidateV6(ctx.slots.V6TCP)
	case ctx.l3.IsV6 && ctx.slots.V6UDP != zeroV6:
		p.gate.InvalidateV6(ctx.slots.V6UDP)
	}
}
