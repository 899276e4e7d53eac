// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux

package host

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// AttachInterface resolves name to a netlink.Link and forces it into
// promiscuous mode: an AF_PACKET capture socket only sees frames addressed
// to the local MAC or broadcast otherwise, which would silently narrow
// the inline filter to a fraction of the traffic it's meant to see.
func AttachInterface(name string) (netlink.Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, fmt.Errorf("host: lookup interface %s: %w", name, err)
	}
	if err := netlink.SetPromiscOn(link); err != nil {
		return nil, fmt.Errorf("host: set promiscuous mode on %s: %w", name, err)
	}
	return link, nil
}

// DetachInterface reverses AttachInterface, clearing promiscuous mode.
func DetachInterface(link netlink.Link) error {
	return netlink.SetPromiscOff(link)
}

// InterfaceIndex returns the kernel ifindex for name, needed by
// mdlayher/packet to bind an AF_PACKET socket.
func InterfaceIndex(name string) (int, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return 0, fmt.Errorf("host: lookup interface %s: %w", name, err)
	}
	return link.Attrs().Index, nil
}
