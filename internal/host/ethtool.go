// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux

package host

import (
	"github.com/safchain/ethtool"
)

var coalescingFeatures = []string{
	"rx-checksumming",
	"generic-segmentation-offload",
	"generic-receive-offload",
}

// CheckOffloadFeatures queries iface's driver-reported feature flags and
// returns one OffloadWarning per coalescing-capable feature that is
// enabled. It never returns an error for an unsupported/virtual
// interface (veth, bridge, etc.) — an empty result in that case just
// means ethtool had nothing to report.
func CheckOffloadFeatures(iface string) ([]OffloadWarning, error) {
	eth, err := ethtool.NewEthtool()
	if err != nil {
		return nil, err
	}
	defer eth.Close()

	features, err := eth.Features(iface)
	if err != nil {
		return nil, nil
	}

	var warnings []OffloadWarning
	for _, name := range coalescingFeatures {
		if features[name] {
			warnings = append(warnings, OffloadWarning{Interface: iface, Feature: name})
		}
	}
	return warnings, nil
}

// DriverName reports the kernel driver bound to iface, for diagnostic
// logging at attach time.
func DriverName(iface string) (string, error) {
	eth, err := ethtool.NewEthtool()
	if err != nil {
		return "", err
	}
	defer eth.Close()

	info, err := eth.DriverInfo(iface)
	if err != nil {
		return "", err
	}
	return info.Driver, nil
}
