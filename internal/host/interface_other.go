// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build !linux

package host

import "fmt"

// AttachInterface is unavailable off Linux: promiscuous-mode AF_PACKET
// capture is a Linux-specific facility.
func AttachInterface(name string) (interface{}, error) {
	return nil, fmt.Errorf("host: interface attach is linux-only")
}

// DetachInterface is unavailable off Linux.
func DetachInterface(link interface{}) error {
	return fmt.Errorf("host: interface detach is linux-only")
}

// InterfaceIndex is unavailable off Linux.
func InterfaceIndex(name string) (int, error) {
	return 0, fmt.Errorf("host: interface index lookup is linux-only")
}
