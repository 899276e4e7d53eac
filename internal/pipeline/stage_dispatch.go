// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import "sentrywall.dev/sentrywall/internal/types"

// stepDispatch implements S6 (spec.md §4.8): refreshes the one flow-table
// slot this packet belongs to (unless the fastpath stage just removed it
// on TCP FIN/RST), then hands off to the state stage for TCP/UDP;
// anything else passes here.
func stepDispatch(p *Pipeline, ctx *packetContext) result {
	slot, key, ok := activeSlot(ctx)
	if ok && !ctx.sawTCPFinRst {
		p.flows.Touch(slot, key, ctx.now)
	}

	if ctx.l3.L4Proto == types.ProtoTCP || ctx.l3.L4Proto == types.ProtoUDP {
		return tail(StageState)
	}
	return pass()
}
