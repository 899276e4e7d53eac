// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build !linux

package tables

import "sentrywall.dev/sentrywall/internal/logging"

// Open builds a Set backed by the in-memory simulator; pinned eBPF maps
// are a Linux-only backend (see bpfmap).
func Open(sizes Sizes) (*Set, Backend, error) {
	logging.Default().Info("tables backend selected", "backend", BackendMemSim, "reason", "non-linux build")
	return newMemSimSet(sizes), BackendMemSim, nil
}
