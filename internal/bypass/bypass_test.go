// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package bypass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

func newTestGate() *Gate {
	return NewGate(tables.NewMemSimSet(tables.DefaultSizes()))
}

func TestHashV4_Deterministic(t *testing.T) {
	k := types.FlowKeyV4{SrcAddr: [4]byte{1, 2, 3, 4}, DstAddr: [4]byte{5, 6, 7, 8}, SrcPort: 1111, DstPort: 80, Proto: types.ProtoTCP}
	assert.Equal(t, HashV4(k), HashV4(k))
	assert.LessOrEqual(t, int(HashV4(k)), (1<<IndexBits)-1)
}

func TestHashV6_Deterministic(t *testing.T) {
	var k types.FlowKeyV6
	k.SrcAddr[0] = 0xfe
	k.DstAddr[0] = 0xff
	k.SrcPort = 1234
	k.DstPort = 443
	k.Proto = types.ProtoUDP
	assert.Equal(t, HashV6(k), HashV6(k))
	assert.LessOrEqual(t, int(HashV6(k)), (1<<IndexBits)-1)
}

func TestMatchV4_MissOnEmptyTable(t *testing.T) {
	g := newTestGate()
	k := types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP}
	assert.False(t, g.MatchV4(k))
}

func TestWriteV4ThenMatchV4_Hits(t *testing.T) {
	g := newTestGate()
	k := types.FlowKeyV4{SrcAddr: [4]byte{10, 0, 0, 1}, DstAddr: [4]byte{10, 0, 0, 2}, SrcPort: 5555, DstPort: 443, Proto: types.ProtoTCP}

	require.NoError(t, g.WriteV4(types.BypassRecordV4{Key: k, Direction: 1}))
	assert.True(t, g.MatchV4(k))
}

func TestMatchV4_MissesOnHashCollisionWithDifferentKey(t *testing.T) {
	g := newTestGate()
	a := types.FlowKeyV4{SrcAddr: [4]byte{10, 0, 0, 1}, DstAddr: [4]byte{10, 0, 0, 2}, SrcPort: 5555, DstPort: 443, Proto: types.ProtoTCP}
	b := types.FlowKeyV4{SrcAddr: [4]byte{10, 0, 0, 1}, DstAddr: [4]byte{10, 0, 0, 2}, SrcPort: 5556, DstPort: 443, Proto: types.ProtoTCP}

	require.NoError(t, g.WriteV4(types.BypassRecordV4{Key: a, Direction: 0}))
	// If a and b happen to hash to the same slot, the stored record still
	// belongs to a, so a lookup for b must not byte-for-byte match.
	assert.False(t, g.MatchV4(b))
}

func TestInvalidateV4_RemovesRecord(t *testing.T) {
	g := newTestGate()
	k := types.FlowKeyV4{SrcAddr: [4]byte{10, 0, 0, 1}, DstAddr: [4]byte{10, 0, 0, 2}, SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP}

	require.NoError(t, g.WriteV4(types.BypassRecordV4{Key: k}))
	require.True(t, g.MatchV4(k))

	require.NoError(t, g.InvalidateV4(k))
	assert.False(t, g.MatchV4(k))
}

func TestWriteV6ThenMatchV6_Hits(t *testing.T) {
	g := newTestGate()
	var k types.FlowKeyV6
	k.SrcAddr[0] = 0xfe
	k.DstAddr[0] = 0xff
	k.SrcPort = 443
	k.DstPort = 51820
	k.Proto = types.ProtoUDP

	require.NoError(t, g.WriteV6(types.BypassRecordV6{Key: k, Direction: 1}))
	assert.True(t, g.MatchV6(k))
}

func TestInvalidateV6_RemovesRecord(t *testing.T) {
	g := newTestGate()
	var k types.FlowKeyV6
	k.SrcAddr[0] = 0xaa
	k.DstAddr[0] = 0xbb

	require.NoError(t, g.WriteV6(types.BypassRecordV6{Key: k}))
	require.NoError(t, g.InvalidateV6(k))
	assert.False(t, g.MatchV6(k))
}
