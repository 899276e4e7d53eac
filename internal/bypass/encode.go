// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package bypass

import (
	"encoding/binary"

	"sentrywall.dev/sentrywall/internal/types"
)

func encodeV4(rec types.BypassRecordV4) []byte {
	b := make([]byte, 14)
	copy(b[0:4], rec.Key.SrcAddr[:])
	copy(b[4:8], rec.Key.DstAddr[:])
	binary.BigEndian.PutUint16(b[8:10], rec.Key.SrcPort)
	binary.BigEndian.PutUint16(b[10:12], rec.Key.DstPort)
	b[12] = byte(rec.Key.Proto)
	b[13] = rec.Direction
	return b
}

func decodeV4(b []byte) (types.BypassRecordV4, bool) {
	var rec types.BypassRecordV4
	if len(b) != 14 {
		return rec, false
	}
	copy(rec.Key.SrcAddr[:], b[0:4])
	copy(rec.Key.DstAddr[:], b[4:8])
	rec.Key.SrcPort = binary.BigEndian.Uint16(b[8:10])
	rec.Key.DstPort = binary.BigEndian.Uint16(b[10:12])
	rec.Key.Proto = types.L4Proto(b[12])
	rec.Direction = b[13]
	return rec, true
}

func encodeV6(rec types.BypassRecordV6) []byte {
	b := make([]byte, 38)
	copy(b[0:16], rec.Key.SrcAddr[:])
	copy(b[16:32], rec.Key.DstAddr[:])
	binary.BigEndian.PutUint16(b[32:34], rec.Key.SrcPort)
	binary.BigEndian.PutUint16(b[34:36], rec.Key.DstPort)
	b[36] = byte(rec.Key.Proto)
	b[37] = rec.Direction
	return b
}

func decodeV6(b []byte) (types.BypassRecordV6, bool) {
	var rec types.BypassRecordV6
	if len(b) != 38 {
		return rec, false
	}
	copy(rec.Key.SrcAddr[:], b[0:16])
	copy(rec.Key.DstAddr[:], b[16:32])
	rec.Key.SrcPort = binary.BigEndian.Uint16(b[32:34])
	rec.Key.DstPort = binary.BigEndian.Uint16(b[34:36])
	rec.Key.Proto = types.L4Proto(b[36])
	rec.Direction = b[37]
	return rec, true
}
