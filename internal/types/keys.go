// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package types

// FlowKeyV4 identifies a directed IPv4 flow. The explicit padding after
// Proto keeps the struct's layout deterministic; the tables themselves
// store the 13-byte field-by-field encoding built by flow.EncodeV4, not
// the struct's in-memory bytes.
type FlowKeyV4 struct {
	SrcAddr [4]byte
	DstAddr [4]byte
	SrcPort uint16
	DstPort uint16
	Proto   L4Proto
	_       [3]byte
}

// FlowKeyV6 identifies a directed IPv6 flow.
type FlowKeyV6 struct {
	SrcAddr [16]byte
	DstAddr [16]byte
	SrcPort uint16
	DstPort uint16
	Proto   L4Proto
	_       [3]byte
}

// BypassRecordV4 is the fingerprint the deep-inspector writes into the
// bypass table; Direction disambiguates which side of the flow the
// record applies to.
type BypassRecordV4 struct {
	Key       FlowKeyV4
	Direction uint8
	_         [7]byte
}

// BypassRecordV6 is the v6 counterpart of BypassRecordV4.
type BypassRecordV6 struct {
	Key       FlowKeyV6
	Direction uint8
	_         [7]byte
}

// WhitelistKey always reserves 16 bytes of address storage; a v4 address
// occupies the first 4 bytes with the remainder zeroed.
type WhitelistKey struct {
	Family Family
	_      [3]byte
	Addr   [16]byte
}

// ICMPAllowKey identifies an admitted {family, type, code} triple.
type ICMPAllowKey struct {
	Family Family
	Type   uint8
	Code   uint8
}

// RateSourceKey identifies a source address for the per-source rate
// limiters; IsV6 disambiguates which 4 or 16 bytes of Addr are significant.
type RateSourceKey struct {
	IsV6 bool
	Addr [16]byte
}
