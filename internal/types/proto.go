// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package types holds the deterministic, byte-layout-stable key and value
// structs shared between the data plane and the tables that back it. None
// of these types allocate on the hot path. The tables store field-by-field
// encodings of these structs (built in internal/flow, internal/bypass and
// internal/ratelimit), not their padded in-memory layout.
package types

// EtherType is the 16-bit big-endian value at offset 12 of an Ethernet
// frame.
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeIPv6 EtherType = 0x86DD
)

// L4Proto is the IPv4 protocol field / IPv6 next-header byte.
type L4Proto uint8

const (
	ProtoICMP   L4Proto = 1
	ProtoTCP    L4Proto = 6
	ProtoUDP    L4Proto = 17
	ProtoICMPv6 L4Proto = 58
)

// Family tags whether an address is IPv4 or IPv6, matching the family byte
// stored in whitelist and ICMP-allow keys.
type Family uint8

const (
	FamilyV4 Family = 4
	FamilyV6 Family = 6
)

// ICMP echo types, used by the whitelist stage to decide whether a miss
// must be dropped outright.
const (
	ICMPv4EchoReply   uint8 = 0
	ICMPv4EchoRequest uint8 = 8
	ICMPv6EchoRequest uint8 = 128
	ICMPv6EchoReply   uint8 = 129
)

// TCP flag bits relevant to the pipeline; only FIN, SYN, RST, ACK are ever
// inspected.
const (
	TCPFlagFIN uint8 = 1 << 0
	TCPFlagSYN uint8 = 1 << 1
	TCPFlagRST uint8 = 1 << 2
	TCPFlagACK uint8 = 1 << 4
)
