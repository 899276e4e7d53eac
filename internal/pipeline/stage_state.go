// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import "sentrywall.dev/sentrywall/internal/types"

// stepState implements S7 (spec.md §4.9): the TCP SYN sliding-window
// limiter and the UDP token bucket. Only SYN-set/ACK-clear TCP packets are
// counted against the SYN limiter; every UDP packet that reaches here
// consumes a token. The final verdict is DROP iff the applicable limiter
// says so.
func stepState(p *Pipeline, ctx *packetContext) result {
	src := rateSource(ctx.l3)

	switch ctx.l3.L4Proto {
	case types.ProtoTCP:
		flags, ok := ctx.l3.TCPFlags(ctx.f)
		if ok && flags&types.TCPFlagSYN != 0 && flags&types.TCPFlagACK == 0 {
			if !p.limiter.AllowSYN(src, ctx.now) {
				p.counters.DropSYNRate.Add(1)
				return drop()
			}
		}
	case types.ProtoUDP:
		if !p.limiter.AllowUDP(src, ctx.now) {
			p.counters.DropUDPToken.Add(1)
			return drop()
		}
	}

	return pass()
}
