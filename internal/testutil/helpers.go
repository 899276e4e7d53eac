// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"os"
	"testing"
)

// RequireVM skips the test if the SENTRYWALL_VM_TEST environment variable is
// not set. Tests that need real kernel capabilities (CAP_BPF, a bpffs mount,
// a live interface) are gated behind this so `go test ./...` on a laptop or
// in CI never needs privilege.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv("SENTRYWALL_VM_TEST") == "" {
		t.Skip("Skipping test: requires SENTRYWALL_VM_TEST environment")
	}
}
