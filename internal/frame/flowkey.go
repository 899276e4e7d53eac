// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package frame

import "sentrywall.dev/sentrywall/internal/types"

// FlowSlots holds the four proto-specific flow-key candidates the fastpath
// and proto-dispatch stages operate on. At most one of V4TCP/V4UDP/V6TCP/
// V6UDP is ever meaningful for a given packet; the rest are left zeroed so
// a slot that does not apply can never collide with a real flow.
type FlowSlots struct {
	V4TCP, V4UDP types.FlowKeyV4
	V6TCP, V6UDP types.FlowKeyV6
}

// BuildFlowSlots builds all four candidate flow keys for d, masking off the
// three that do not apply to this packet's family/protocol combination.
// ok is false only on a truncated frame.
func BuildFlowSlots(f Frame, d L3Descriptor) (FlowSlots, bool) {
	var slots FlowSlots

	isTCP := d.L4Proto == types.ProtoTCP
	isUDP := d.L4Proto == types.ProtoUDP
	if !isTCP && !isUDP {
		return slots, true
	}

	sport, dport, ok := d.L4Ports(f)
	if !ok {
		return slots, false
	}

	if d.IsV4 {
		key := types.FlowKeyV4{SrcPort: sport, DstPort: dport, Proto: d.L4Proto}
		copy(key.SrcAddr[:], d.SrcAddr[:4])
		copy(key.DstAddr[:], d.DstAddr[:4])
		if isTCP {
			slots.V4TCP = key
		} else {
			slots.V4UDP = key
		}
	} else if d.IsV6 {
		key := types.FlowKeyV6{SrcPort: sport, DstPort: dport, Proto: d.L4Proto}
		copy(key.SrcAddr[:], d.SrcAddr[:])
		copy(key.DstAddr[:], d.DstAddr[:])
		if isTCP {
			slots.V6TCP = key
		} else {
			slots.V6UDP = key
		}
	}

	return slots, true
}
