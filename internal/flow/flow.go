// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package flow

import (
	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

// Manager is the thin wrapper pipeline stages use to consult and refresh
// the four flow tables. It holds no state of its own beyond the table
// handles; all concurrency control lives in the tables.LRU implementation.
type Manager struct {
	set *tables.Set
}

// NewManager wraps the flow tables in set.
func NewManager(set *tables.Set) *Manager {
	return &Manager{set: set}
}

// Slot identifies one of the four proto-specific flow tables.
type Slot int

const (
	SlotV4TCP Slot = iota
	SlotV4UDP
	SlotV6TCP
	SlotV6UDP
)

func (m *Manager) table(slot Slot) tables.LRU {
	switch slot {
	case SlotV4TCP:
		return m.set.TCPFlow
	case SlotV4UDP:
		return m.set.UDPFlow
	case SlotV6TCP:
		return m.set.TCP6Flow
	case SlotV6UDP:
		return m.set.UDP6Flow
	default:
		return nil
	}
}

func idleThreshold(slot Slot) uint64 {
	if slot == SlotV4UDP || slot == SlotV6UDP {
		return types.UDPIdleNs
	}
	return types.TCPIdleNs
}

// FreshHit reports whether key has a last-seen timestamp in slot's table
// that is within that protocol's idle threshold of now.
func (m *Manager) FreshHit(slot Slot, key []byte, now uint64) bool {
	t := m.table(slot)
	if t == nil {
		return false
	}
	raw, ok := t.Get(key)
	if !ok {
		return false
	}
	ts, ok := decodeTimestamp(raw)
	if !ok {
		return false
	}
	return now-ts <= idleThreshold(slot)
}

// Touch sets key's last-seen timestamp to now, inserting it if absent.
// Called unconditionally at proto-dispatch (spec.md §4.8); the caller is
// responsible for only touching the one slot a given packet belongs to.
func (m *Manager) Touch(slot Slot, key []byte, now uint64) error {
	t := m.table(slot)
	if t == nil {
		return nil
	}
	return t.Set(key, encodeTimestamp(now))
}

// Delete removes key from slot's table, used on TCP FIN/RST.
func (m *Manager) Delete(slot Slot, key []byte) error {
	t := m.table(slot)
	if t == nil {
		return nil
	}
	return t.Delete(key)
}

// Len reports the current entry count of slot's table.
func (m *Manager) Len(slot Slot) int {
	t := m.table(slot)
	if t == nil {
		return 0
	}
	return t.Len()
}
