// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package bypass implements the deep-inspector gate (spec.md §4.7): a
// 14-bit hashed index into a bypass table written by the external
// stream-inspection engine. A byte-for-byte match of the stored record
// against the current flow's fingerprint means the engine has already
// condemned this flow; the gate stage treats a match as grounds to
// short-circuit with a DROP rather than forwarding it on for inspection.
package bypass

import (
	"encoding/binary"

	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

// IndexBits is the width of the gate's hash index (spec.md §4.7).
const IndexBits = 14
const indexMask = (1 << IndexBits) - 1

// Gate wraps the v4/v6 bypass tables.
type Gate struct {
	v4, v6 tables.KV
}

// NewGate wraps the flow_table_v4/v6 tables in set.
func NewGate(set *tables.Set) *Gate {
	return &Gate{v4: set.FlowTableV4, v6: set.FlowTableV6}
}

// HashV4 computes the 14-bit index for a v4 flow key: an XOR fold of
// saddr, daddr, the packed port pair, and proto.
func HashV4(k types.FlowKeyV4) uint16 {
	saddr := binary.BigEndian.Uint32(k.SrcAddr[:])
	daddr := binary.BigEndian.Uint32(k.DstAddr[:])
	ports := uint32(k.SrcPort)<<16 | uint32(k.DstPort)
	h := saddr ^ daddr ^ ports ^ uint32(k.Proto)
	return uint16(h) & indexMask
}

// HashV6 computes the 14-bit index for a v6 flow key: an XOR fold of the
// two 64-bit halves of each address, combined the same way as HashV4.
func HashV6(k types.FlowKeyV6) uint16 {
	sHi := binary.BigEndian.Uint64(k.SrcAddr[0:8])
	sLo := binary.BigEndian.Uint64(k.SrcAddr[8:16])
	dHi := binary.BigEndian.Uint64(k.DstAddr[0:8])
	dLo := binary.BigEndian.Uint64(k.DstAddr[8:16])
	saddr := sHi ^ sLo
	daddr := dHi ^ dLo
	ports := uint64(k.SrcPort)<<16 | uint64(k.DstPort)
	h := saddr ^ daddr ^ ports ^ uint64(k.Proto)
	return uint16(h) & indexMask
}

func indexKey(idx uint16) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(idx))
	return b
}

// MatchV4 reports whether the bypass table's v4 slot at key's hashed index
// holds a record matching key byte-for-byte.
func (g *Gate) MatchV4(key types.FlowKeyV4) bool {
	raw, ok := g.v4.Get(indexKey(HashV4(key)))
	if !ok {
		return false
	}
	rec, ok := decodeV4(raw)
	if !ok {
		return false
	}
	return rec.Key == key
}

// MatchV6 is the v6 counterpart of MatchV4.
func (g *Gate) MatchV6(key types.FlowKeyV6) bool {
	raw, ok := g.v6.Get(indexKey(HashV6(key)))
	if !ok {
		return false
	}
	rec, ok := decodeV6(raw)
	if !ok {
		return false
	}
	return rec.Key == key
}

// InvalidateV4 clears whatever record currently occupies key's hashed
// slot, called by the blacklist stage so a freshly-blacklisted source
// cannot continue on the bypass fast path (spec.md §4.5).
func (g *Gate) InvalidateV4(key types.FlowKeyV4) error {
	return g.v4.Delete(indexKey(HashV4(key)))
}

// InvalidateV6 is the v6 counterpart of InvalidateV4.
func (g *Gate) InvalidateV6(key types.FlowKeyV6) error {
	return g.v6.Delete(indexKey(HashV6(key)))
}

// WriteV4 is the control-surface the external deep-inspector uses to
// install a bypass record (exercised by tests standing in for that
// engine).
func (g *Gate) WriteV4(rec types.BypassRecordV4) error {
	return g.v4.Set(indexKey(HashV4(rec.Key)), encodeV4(rec))
}

// WriteV6 is the v6 counterpart of WriteV4.
func (g *Gate) WriteV6(rec types.BypassRecordV6) error {
	return g.v6.Set(indexKey(HashV6(rec.Key)), encodeV6(rec))
}
