// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package host

// OffloadWarning names a feature flag on an interface that can coalesce
// multiple logical packets into one frame, which breaks the parser's
// first-L3/L4-header-pair assumption (spec.md §1 Non-goals).
type OffloadWarning struct {
	Interface string
	Feature   string
}
