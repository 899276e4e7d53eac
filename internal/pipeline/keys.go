// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

import (
	"sentrywall.dev/sentrywall/internal/frame"
	"sentrywall.dev/sentrywall/internal/types"
)

// whitelistKey builds the {family, pad[3], addr[16]} key spec.md §6
// defines for the whitelist table.
func whitelistKey(l3 frame.L3Descriptor) []byte {
	b := make([]byte, 20)
	if l3.IsV6 {
		b[0] = byte(types.FamilyV6)
		copy(b[4:20], l3.SrcAddr[:])
	} else {
		b[0] = byte(types.FamilyV4)
		copy(b[4:8], l3.SrcAddr[:4])
	}
	return b
}

// icmpAllowKey builds the {family, type, code} key for the icmp_allow
// table.
func icmpAllowKey(l3 frame.L3Descriptor, icmpType, code uint8) []byte {
	family := byte(types.FamilyV4)
	if l3.IsV6 {
		family = byte(types.FamilyV6)
	}
	return []byte{family, icmpType, code}
}

// rateSource builds the {is_v6, addr[16]} key the rate limiters use.
func rateSource(l3 frame.L3Descriptor) types.RateSourceKey {
	var k types.RateSourceKey
	k.IsV6 = l3.IsV6
	k.Addr = l3.SrcAddr
	return k
}

func isICMPEcho(l3 frame.L3Descriptor, icmpType uint8) bool {
	if l3.IsV4 && l3.L4Proto == types.ProtoICMP {
		return icmpType == types.ICMPv4EchoReply || icmpType == types.ICMPv4EchoRequest
	}
	if l3.IsV6 && l3.L4Proto == types.ProtoICMPv6 {
		return icmpType == types.ICMPv6EchoRequest || icmpType == types.ICMPv6EchoReply
	}
	return false
}

func isICMP(l3 frame.L3Descriptor) bool {
	return (l3.IsV4 && l3.L4Proto == types.ProtoICMP) || (l3.IsV6 && l3.L4Proto == types.ProtoICMPv6)
}
