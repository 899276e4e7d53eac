// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

func newTestManager() *Manager {
	return NewManager(tables.NewMemSimSet(tables.DefaultSizes()))
}

func TestFreshHit_MissOnEmptyTable(t *testing.T) {
	m := newTestManager()
	key := EncodeV4(types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})

	assert.False(t, m.FreshHit(SlotV4TCP, key, 1_000_000_000))
}

func TestTouchThenFreshHit_WithinIdleThreshold(t *testing.T) {
	m := newTestManager()
	key := EncodeV4(types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})

	require.NoError(t, m.Touch(SlotV4TCP, key, 1_000_000_000))
	assert.True(t, m.FreshHit(SlotV4TCP, key, 1_000_000_000+types.TCPIdleNs))
	assert.False(t, m.FreshHit(SlotV4TCP, key, 1_000_000_000+types.TCPIdleNs+1))
}

func TestTouchThenFreshHit_UDPUsesShorterIdleThreshold(t *testing.T) {
	m := newTestManager()
	key := EncodeV4(types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoUDP})

	require.NoError(t, m.Touch(SlotV4UDP, key, 0))
	assert.True(t, m.FreshHit(SlotV4UDP, key, types.UDPIdleNs))
	assert.False(t, m.FreshHit(SlotV4UDP, key, types.UDPIdleNs+1))
}

func TestDelete_RemovesFlowEntry(t *testing.T) {
	m := newTestManager()
	key := EncodeV4(types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})

	require.NoError(t, m.Touch(SlotV4TCP, key, 100))
	require.NoError(t, m.Delete(SlotV4TCP, key))
	assert.False(t, m.FreshHit(SlotV4TCP, key, 100))
}

func TestEncodeV4_DistinctKeysForDistinctFlows(t *testing.T) {
	a := EncodeV4(types.FlowKeyV4{SrcAddr: [4]byte{1, 1, 1, 1}, SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})
	b := EncodeV4(types.FlowKeyV4{SrcAddr: [4]byte{1, 1, 1, 2}, SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})
	assert.NotEqual(t, a, b)
}

func TestLen_ReflectsTableSize(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, 0, m.Len(SlotV4TCP))

	key := EncodeV4(types.FlowKeyV4{SrcPort: 1, DstPort: 2, Proto: types.ProtoTCP})
	require.NoError(t, m.Touch(SlotV4TCP, key, 1))
	assert.Equal(t, 1, m.Len(SlotV4TCP))
}
