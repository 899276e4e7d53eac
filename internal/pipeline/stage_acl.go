// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import "sentrywall.dev/sentrywall/internal/types"

// stepACL implements S2 (spec.md §4.4): destination-port + protocol
// admission via a 64-bit bitmap, plus allow-listed ICMP. Anything not
// admitted is dropped here; an admitted packet tail-calls to the
// blacklist stage.
func stepACL(p *Pipeline, ctx *packetContext) result {
	switch ctx.l3.L4Proto {
	case types.ProtoTCP, types.ProtoUDP:
		_, dport, ok := ctx.l3.L4Ports(ctx.f)
		if ok && dport < 64 && aclBitSet(p, dport) {
			return tail(StageBlacklist)
		}
	case types.ProtoICMP, types.ProtoICMPv6:
		icmpType, code, ok := ctx.l3.ICMPTypeCode(ctx.f)
		if ok {
			if _, found := p.set.ICMPAllow.Get(icmpAllowKey(ctx.l3, icmpType, code)); found {
				return tail(StageBlacklist)
			}
		}
	}

	p.counters.DropACL.Add(1)
	return drop()
}

// aclBitSet reports whether bit n of the acl_ports bitmap is set. A
// missing or undersized bitmap is treated as all-zero, deny-by-default
// (spec.md §7).
func aclBitSet(p *Pipeline, n uint16) bool {
	raw := p.set.ACLPorts.Load()
	if len(raw) < 8 {
		return false
	}
	bitmap := uint64(0)
	for i := 0; i < 8; i++ {
		bitmap |= uint64(raw[i]) << (8 * i)
	}
	return bitmap&(1<<n) != 0
}
