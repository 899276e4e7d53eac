// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package frame

// boolMask returns ^uint64(0) when cond is true, 0 otherwise. It is
// written with an ordinary conditional and is not called by the parser:
// flow-slot selection (BuildFlowSlots) uses plain branching, which
// produces the same observable result as masking.
func boolMask(cond bool) uint64 {
	var m uint64
	if cond {
		m = ^uint64(0)
	}
	return m
}

// maskBytes zeroes dst unless keep is true, in place.
func maskBytes(dst []byte, keep bool) {
	if keep {
		return
	}
	for i := range dst {
		dst[i] = 0
	}
}
