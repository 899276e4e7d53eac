// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

// stepWhitelist implements S0 (spec.md §4.2): immediate PASS for a known
// source; on miss, an ICMP echo is dropped outright, anything else
// tail-calls into the panic stage.
func stepWhitelist(p *Pipeline, ctx *packetContext) result {
	key := whitelistKey(ctx.l3)
	if _, ok := p.set.Whitelist.Get(key); ok {
		return pass()
	}

	p.counters.WhitelistMiss.Add(1)

	if isICMP(ctx.l3) {
		icmpType, _, ok := ctx.l3.ICMPTypeCode(ctx.f)
		if ok && isICMPEcho(ctx.l3, icmpType) {
			p.counters.DropWhitelist.Add(1)
			return drop()
		}
	}

	return tail(StagePanic)
}
