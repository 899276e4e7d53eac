// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tables

import "sentrywall.dev/sentrywall/internal/tables/memsim"

// NewMemSimSet builds a complete Set backed entirely by memsim, regardless
// of OS. Tests use this directly so pipeline behaviour doesn't depend on
// whether the test host has CAP_BPF or a bpffs mount.
func NewMemSimSet(sizes Sizes) *Set {
	return newMemSimSet(sizes)
}

// newMemSimSet builds a complete Set backed entirely by memsim. Used
// directly on non-Linux builds, and as the fallback Open reaches for when
// the bpfmap backend can't acquire CAP_BPF or a bpffs mount.
func newMemSimSet(sizes Sizes) *Set {
	return &Set{
		Whitelist:    memsim.NewHash(),
		PanicFlag:    memsim.NewSlot([]byte{0}),
		GlobalBypass: memsim.NewSlot([]byte{0}),
		ACLPorts:     memsim.NewSlot(make([]byte, 8)),
		ICMPAllow:    memsim.NewHash(),
		IPv4Drop:     memsim.NewHash(),
		IPv6Drop:     memsim.NewHash(),

		TCPFlow:  memsim.NewLRU(sizes.TCPFlow),
		UDPFlow:  memsim.NewLRU(sizes.UDPFlow),
		TCP6Flow: memsim.NewLRU(sizes.TCP6Flow),
		UDP6Flow: memsim.NewLRU(sizes.UDP6Flow),

		FlowTableV4: memsim.NewHash(),
		FlowTableV6: memsim.NewHash(),

		RateLimitCfg: memsim.NewSlot(make([]byte, 20)),
		TCPRate:      memsim.NewHash(),
		UDPRateLimit: memsim.NewHash(),

		PathStats:     memsim.NewPerCPUCounter(2),
		WhitelistMiss: memsim.NewPerCPUCounter(1),
	}
}
