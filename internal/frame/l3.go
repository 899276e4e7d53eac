// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package frame

import "sentrywall.dev/sentrywall/internal/types"

const (
	ethSrcOff   = 6
	ethDstOff   = 0
	ethProtoOff = 12
	l3Start     = 14

	ipv4SrcOff  = 12
	ipv4DstOff  = 16
	ipv4ProtoOff = 9

	ipv6HeaderLen = 40
	ipv6NextHdr   = 6
	ipv6SrcOff    = 8
	ipv6DstOff    = 24
)

// L3Descriptor is the per-packet result of Parse: which family matched,
// where the L4 header starts, what protocol it carries, and the source and
// (zero-extended where narrower) destination addresses.
type L3Descriptor struct {
	IsV4      bool
	IsV6      bool
	HeaderLen int
	L4Proto   types.L4Proto
	SrcAddr   [16]byte
	DstAddr   [16]byte
}

// Parse derives an L3Descriptor from f. ok is false only on a truncated
// frame (a bounds-checked load overran the end); an unrecognised Ethernet
// proto is not an error — it returns a descriptor with both IsV4 and IsV6
// false, which every stage treats as PASS-through.
func Parse(f Frame) (L3Descriptor, bool) {
	var d L3Descriptor

	proto, ok := f.be16(ethProtoOff)
	if !ok {
		return d, false
	}

	switch types.EtherType(proto) {
	case types.EtherTypeIPv4:
		return parseV4(f)
	case types.EtherTypeIPv6:
		return parseV6(f)
	default:
		return d, true
	}
}

func parseV4(f Frame) (L3Descriptor, bool) {
	var d L3Descriptor

	verIHL, ok := f.byte8(l3Start)
	if !ok {
		return d, false
	}
	headerLen := int(verIHL&0x0F) << 2

	protoByte, ok := f.byte8(l3Start + ipv4ProtoOff)
	if !ok {
		return d, false
	}

	src, ok := f.slice(l3Start+ipv4SrcOff, 4)
	if !ok {
		return d, false
	}
	dst, ok := f.slice(l3Start+ipv4DstOff, 4)
	if !ok {
		return d, false
	}

	d.IsV4 = true
	d.HeaderLen = headerLen
	d.L4Proto = types.L4Proto(protoByte)
	copy(d.SrcAddr[:4], src)
	copy(d.DstAddr[:4], dst)
	return d, true
}

func parseV6(f Frame) (L3Descriptor, bool) {
	var d L3Descriptor

	nextHdr, ok := f.byte8(l3Start + ipv6NextHdr)
	if !ok {
		return d, false
	}

	src, ok := f.slice(l3Start+ipv6SrcOff, 16)
	if !ok {
		return d, false
	}
	dst, ok := f.slice(l3Start+ipv6DstOff, 16)
	if !ok {
		return d, false
	}

	d.IsV6 = true
	d.HeaderLen = ipv6HeaderLen
	d.L4Proto = types.L4Proto(nextHdr)
	copy(d.SrcAddr[:], src)
	copy(d.DstAddr[:], dst)
	return d, true
}

// L4Ports loads the source and destination port from f, given the L3
// descriptor's header length. Only meaningful for TCP/UDP; ok is false on
// a truncated frame.
func (d L3Descriptor) L4Ports(f Frame) (sport, dport uint16, ok bool) {
	base := l3Start + d.HeaderLen
	sport, ok = f.be16(base)
	if !ok {
		return 0, 0, false
	}
	dport, ok = f.be16(base + 2)
	if !ok {
		return 0, 0, false
	}
	return sport, dport, true
}

// TCPFlags loads the TCP flags byte, given the L3 descriptor's header
// length. ok is false on a truncated frame.
func (d L3Descriptor) TCPFlags(f Frame) (flags uint8, ok bool) {
	return f.byte8(l3Start + d.HeaderLen + 13)
}

// ICMPTypeCode loads the ICMP/ICMPv6 type and code bytes, given the L3
// descriptor's header length. ok is false on a truncated frame.
func (d L3Descriptor) ICMPTypeCode(f Frame) (icmpType, code uint8, ok bool) {
	base := l3Start + d.HeaderLen
	icmpType, ok = f.byte8(base)
	if !ok {
		return 0, 0, false
	}
	code, ok = f.byte8(base + 1)
	if !ok {
		return 0, 0, false
	}
	return icmpType, code, true
}
