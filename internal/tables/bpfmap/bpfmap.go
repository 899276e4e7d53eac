// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux

// Package bpfmap backs every shared table with a real *ebpf.Map created
// directly via ebpf.NewMap, with no compiled program ever loaded — there is
// no kernel bytecode in this repository (see DESIGN.md Open Question O1).
// Each map is pinned under /sys/fs/bpf/sentrywall/<name> so a second
// process (sentrywallctl) can open and mutate tables like whitelist
// independently of the running data plane, mirroring the real
// control-tool/data-plane split the tables boundary describes.
package bpfmap

import (
	"os"
	"path/filepath"

	"github.com/cilium/ebpf"

	"sentrywall.dev/sentrywall/internal/errors"
)

// PinDir is the directory every table is pinned under.
const PinDir = "/sys/fs/bpf/sentrywall"

// Hash wraps a HASH-type *ebpf.Map.
type Hash struct {
	m *ebpf.Map
}

// NewHash creates (or re-opens, if already pinned) a HASH map with the
// given key/value sizes and capacity.
func NewHash(name string, keySize, valueSize uint32, maxEntries uint32) (*Hash, error) {
	m, err := openOrCreate(name, ebpf.Hash, keySize, valueSize, maxEntries)
	if err != nil {
		return nil, err
	}
	return &Hash{m: m}, nil
}

func (h *Hash) Get(key []byte) ([]byte, bool) {
	value := make([]byte, h.m.ValueSize())
	if err := h.m.Lookup(key, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (h *Hash) Set(key, value []byte) error {
	return h.m.Update(key, value, ebpf.UpdateAny)
}

func (h *Hash) Delete(key []byte) error {
	err := h.m.Delete(key)
	if err != nil {
		// Deleting an absent key is not an error at this boundary (spec.md
		// §3: "Missing entries are not errors").
		if errors.Is(err, ebpf.ErrKeyNotExist) {
			return nil
		}
	}
	return err
}

func (h *Hash) Len() int {
	n := 0
	var key, value []byte
	it := h.m.Iterate()
	for it.Next(&key, &value) {
		n++
	}
	return n
}

func (h *Hash) Range(fn func(key, value []byte) bool) {
	var key, value []byte
	it := h.m.Iterate()
	for it.Next(&key, &value) {
		k := append([]byte(nil), key...)
		v := append([]byte(nil), value...)
		if !fn(k, v) {
			return
		}
	}
}

// LRU wraps an LRU_HASH-type *ebpf.Map.
type LRU struct {
	*Hash
	cap int
}

// NewLRU creates an LRU_HASH map with the given capacity.
func NewLRU(name string, keySize, valueSize uint32, capacity int) (*LRU, error) {
	m, err := openOrCreate(name, ebpf.LRUHash, keySize, valueSize, uint32(capacity))
	if err != nil {
		return nil, err
	}
	return &LRU{Hash: &Hash{m: m}, cap: capacity}, nil
}

func (l *LRU) Cap() int { return l.cap }

// Slot wraps a single-element ARRAY map.
type Slot struct {
	m *ebpf.Map
}

// NewSlot creates a single-slot ARRAY map initialized to value.
func NewSlot(name string, value []byte) (*Slot, error) {
	m, err := openOrCreate(name, ebpf.Array, 4, uint32(len(value)), 1)
	if err != nil {
		return nil, err
	}
	s := &Slot{m: m}
	if err := s.Store(value); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Slot) Load() []byte {
	value := make([]byte, s.m.ValueSize())
	var idx uint32
	if err := s.m.Lookup(&idx, &value); err != nil {
		return nil
	}
	return value
}

func (s *Slot) Store(value []byte) error {
	var idx uint32
	return s.m.Update(&idx, value, ebpf.UpdateAny)
}

// PerCPUCounter wraps a PERCPU_ARRAY map; Add/Value operate on the calling
// CPU's slot via the kernel's own per-CPU aggregation on lookup.
type PerCPUCounter struct {
	m *ebpf.Map
}

// NewPerCPUCounter creates a PERCPU_ARRAY map with n indices.
func NewPerCPUCounter(name string, n int) (*PerCPUCounter, error) {
	m, err := openOrCreate(name, ebpf.PerCPUArray, 4, 8, uint32(n))
	if err != nil {
		return nil, err
	}
	return &PerCPUCounter{m: m}, nil
}

func (c *PerCPUCounter) Add(index int, delta uint64) {
	cur := c.Value(index)
	idx := uint32(index)
	_ = c.m.Put(idx, cur+delta)
}

func (c *PerCPUCounter) Value(index int) uint64 {
	idx := uint32(index)
	var values []uint64
	if err := c.m.Lookup(&idx, &values); err != nil {
		return 0
	}
	var total uint64
	for _, v := range values {
		total += v
	}
	return total
}

func openOrCreate(name string, typ ebpf.MapType, keySize, valueSize, maxEntries uint32) (*ebpf.Map, error) {
	if err := os.MkdirAll(PinDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.KindUnavailable, "bpfmap: create pin dir %s", PinDir)
	}

	pinPath := filepath.Join(PinDir, name)
	if m, err := ebpf.LoadPinnedMap(pinPath, nil); err == nil {
		return m, nil
	}

	m, err := ebpf.NewMapWithOptions(&ebpf.MapSpec{
		Name:       name,
		Type:       typ,
		KeySize:    keySize,
		ValueSize:  valueSize,
		MaxEntries: maxEntries,
		Pinning:    ebpf.PinByName,
	}, ebpf.MapOptions{PinPath: PinDir})
	if err != nil {
		return nil, errors.Wrapf(err, errors.KindUnavailable, "bpfmap: create map %s", name)
	}
	return m, nil
}
