// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package flow implements the per-flow timestamp cache behind the fastpath
// stage: four idle-aware LRU tables (TCP/UDP x v4/v6) whose values are a
// single monotonic last-seen timestamp, matching the tables boundary in
// spec.md §6 (tcp_flow/udp_flow/tcp6_flow/udp6_flow -> u64 ns).
package flow

import (
	"encoding/binary"

	"sentrywall.dev/sentrywall/internal/types"
)

// EncodeV4 renders a FlowKeyV4 as the deterministic byte key stored in
// tcp_flow/udp_flow, built field-by-field rather than via unsafe casts so
// the layout never depends on compiler struct packing.
func EncodeV4(k types.FlowKeyV4) []byte {
	b := make([]byte, 13)
	copy(b[0:4], k.SrcAddr[:])
	copy(b[4:8], k.DstAddr[:])
	binary.BigEndian.PutUint16(b[8:10], k.SrcPort)
	binary.BigEndian.PutUint16(b[10:12], k.DstPort)
	b[12] = byte(k.Proto)
	return b
}

// EncodeV6 renders a FlowKeyV6 as the deterministic byte key stored in
// tcp6_flow/udp6_flow.
func EncodeV6(k types.FlowKeyV6) []byte {
	b := make([]byte, 37)
	copy(b[0:16], k.SrcAddr[:])
	copy(b[16:32], k.DstAddr[:])
	binary.BigEndian.PutUint16(b[32:34], k.SrcPort)
	binary.BigEndian.PutUint16(b[34:36], k.DstPort)
	b[36] = byte(k.Proto)
	return b
}

func encodeTimestamp(ns uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, ns)
	return b
}

func decodeTimestamp(b []byte) (uint64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}
