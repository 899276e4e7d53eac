// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package memsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_SetGetDelete(t *testing.T) {
	h := NewHash()

	_, ok := h.Get([]byte("k1"))
	assert.False(t, ok)

	require.NoError(t, h.Set([]byte("k1"), []byte("v1")))
	v, ok := h.Get([]byte("k1"))
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), v)
	assert.Equal(t, 1, h.Len())

	require.NoError(t, h.Delete([]byte("k1")))
	_, ok = h.Get([]byte("k1"))
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHash_GetReturnsCopyNotAlias(t *testing.T) {
	h := NewHash()
	require.NoError(t, h.Set([]byte("k"), []byte("v")))

	v, _ := h.Get([]byte("k"))
	v[0] = 'X'

	v2, _ := h.Get([]byte("k"))
	assert.Equal(t, []byte("v"), v2)
}

func TestHash_Range_VisitsEveryEntry(t *testing.T) {
	h := NewHash()
	require.NoError(t, h.Set([]byte("a"), []byte("1")))
	require.NoError(t, h.Set([]byte("b"), []byte("2")))

	seen := map[string]string{}
	h.Range(func(k, v []byte) bool {
		seen[string(k)] = string(v)
		return true
	})
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, seen)
}

func TestLRU_EvictsOldestBeyondCapacity(t *testing.T) {
	l := NewLRU(2)

	require.NoError(t, l.Set([]byte("a"), []byte("1")))
	require.NoError(t, l.Set([]byte("b"), []byte("2")))
	require.NoError(t, l.Set([]byte("c"), []byte("3")))

	assert.Equal(t, 2, l.Len())
	_, ok := l.Get([]byte("a"))
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = l.Get([]byte("b"))
	assert.True(t, ok)
	_, ok = l.Get([]byte("c"))
	assert.True(t, ok)
}

func TestLRU_GetPromotesToFrontSoItSurvivesEviction(t *testing.T) {
	l := NewLRU(2)

	require.NoError(t, l.Set([]byte("a"), []byte("1")))
	require.NoError(t, l.Set([]byte("b"), []byte("2")))

	// Touching "a" should make "b" the next eviction candidate.
	_, ok := l.Get([]byte("a"))
	require.True(t, ok)

	require.NoError(t, l.Set([]byte("c"), []byte("3")))

	_, ok = l.Get([]byte("b"))
	assert.False(t, ok)
	_, ok = l.Get([]byte("a"))
	assert.True(t, ok)
}

func TestLRU_SetExistingKeyUpdatesValueWithoutEviction(t *testing.T) {
	l := NewLRU(2)
	require.NoError(t, l.Set([]byte("a"), []byte("1")))
	require.NoError(t, l.Set([]byte("a"), []byte("2")))

	assert.Equal(t, 1, l.Len())
	v, ok := l.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("2"), v)
}

func TestLRU_DeleteRemovesEntry(t *testing.T) {
	l := NewLRU(4)
	require.NoError(t, l.Set([]byte("a"), []byte("1")))
	require.NoError(t, l.Delete([]byte("a")))

	_, ok := l.Get([]byte("a"))
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLRU_CapReportsConfiguredCapacity(t *testing.T) {
	l := NewLRU(7)
	assert.Equal(t, 7, l.Cap())
}

func TestSlot_LoadStoreRoundTrip(t *testing.T) {
	s := NewSlot([]byte("initial"))
	assert.Equal(t, []byte("initial"), s.Load())

	require.NoError(t, s.Store([]byte("updated")))
	assert.Equal(t, []byte("updated"), s.Load())
}

func TestPerCPUCounter_AddAccumulatesPerIndex(t *testing.T) {
	c := NewPerCPUCounter(3)
	c.Add(0, 5)
	c.Add(0, 2)
	c.Add(1, 10)

	assert.Equal(t, uint64(7), c.Value(0))
	assert.Equal(t, uint64(10), c.Value(1))
	assert.Equal(t, uint64(0), c.Value(2))
}

func TestPerCPUCounter_OutOfRangeIndexIsANoop(t *testing.T) {
	c := NewPerCPUCounter(2)
	c.Add(5, 100)
	assert.Equal(t, uint64(0), c.Value(5))
}
