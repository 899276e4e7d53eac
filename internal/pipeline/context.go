// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import (
	"sentrywall.dev/sentrywall/internal/frame"
)

// packetContext carries everything a stage needs for one frame. It is
// built once per packet and threaded through the chain's tail-calls, but
// never retained past Run — per-packet descriptors live only for the
// current invocation (spec.md §3 Lifecycles).
type packetContext struct {
	now uint64

	f  frame.Frame
	l3 frame.L3Descriptor
	l3ok bool

	slots   frame.FlowSlots
	slotsOk bool

	// sawTCPFinRst records whether the fastpath stage already deleted the
	// TCP flow entry for this packet (spec.md §4.6), so proto-dispatch
	// does not re-insert it.
	sawTCPFinRst bool
}
