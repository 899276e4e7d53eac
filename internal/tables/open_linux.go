// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux

package tables

import (
	"sentrywall.dev/sentrywall/internal/logging"
	"sentrywall.dev/sentrywall/internal/tables/bpfmap"
)

// Open tries to back every table with a real, pinned eBPF map and falls
// back to the in-memory simulator if map creation fails (no CAP_BPF, no
// bpffs mount, container sandbox, etc.) — the same degrade-gracefully
// idiom host.VerifyBPFSupport uses for JIT checks.
func Open(sizes Sizes) (*Set, Backend, error) {
	set, err := newBPFMapSet(sizes)
	if err != nil {
		logging.Default().Warn("falling back to in-memory tables", "error", err)
		return newMemSimSet(sizes), BackendMemSim, nil
	}
	return set, BackendBPFMap, nil
}

func newBPFMapSet(sizes Sizes) (*Set, error) {
	whitelist, err := bpfmap.NewHash("whitelist", 20, 1, uint32(sizes.Whitelist))
	if err != nil {
		return nil, err
	}
	panicFlag, err := bpfmap.NewSlot("panic_flag", []byte{0})
	if err != nil {
		return nil, err
	}
	globalBypass, err := bpfmap.NewSlot("global_bypass", []byte{0})
	if err != nil {
		return nil, err
	}
	aclPorts, err := bpfmap.NewSlot("acl_ports", make([]byte, 8))
	if err != nil {
		return nil, err
	}
	icmpAllow, err := bpfmap.NewHash("icmp_allow", 3, 1, 256)
	if err != nil {
		return nil, err
	}
	ipv4Drop, err := bpfmap.NewHash("ipv4_drop", 4, 1, uint32(sizes.Blacklist))
	if err != nil {
		return nil, err
	}
	ipv6Drop, err := bpfmap.NewHash("ipv6_drop", 16, 1, uint32(sizes.Blacklist))
	if err != nil {
		return nil, err
	}

	tcpFlow, err := bpfmap.NewLRU("tcp_flow", 13, 8, sizes.TCPFlow)
	if err != nil {
		return nil, err
	}
	udpFlow, err := bpfmap.NewLRU("udp_flow", 13, 8, sizes.UDPFlow)
	if err != nil {
		return nil, err
	}
	tcp6Flow, err := bpfmap.NewLRU("tcp6_flow", 37, 8, sizes.TCP6Flow)
	if err != nil {
		return nil, err
	}
	udp6Flow, err := bpfmap.NewLRU("udp6_flow", 37, 8, sizes.UDP6Flow)
	if err != nil {
		return nil, err
	}

	flowTableV4, err := bpfmap.NewHash("flow_table_v4", 4, 14, uint32(sizes.Bypass))
	if err != nil {
		return nil, err
	}
	flowTableV6, err := bpfmap.NewHash("flow_table_v6", 4, 38, uint32(sizes.Bypass))
	if err != nil {
		return nil, err
	}

	rateLimitCfg, err := bpfmap.NewSlot("rate_limit_cfg", make([]byte, 20))
	if err != nil {
		return nil, err
	}
	tcpRate, err := bpfmap.NewHash("tcp_rate", 17, 12, uint32(sizes.RatePerCPU))
	if err != nil {
		return nil, err
	}
	udpRate, err := bpfmap.NewHash("udp_rl", 17, 12, uint32(sizes.RatePerCPU))
	if err != nil {
		return nil, err
	}

	pathStats, err := bpfmap.NewPerCPUCounter("path_stats", 2)
	if err != nil {
		return nil, err
	}
	whitelistMiss, err := bpfmap.NewPerCPUCounter("whitelist_miss", 1)
	if err != nil {
		return nil, err
	}

	return &Set{
		Whitelist:    whitelist,
		PanicFlag:    panicFlag,
		GlobalBypass: globalBypass,
		ACLPorts:     aclPorts,
		ICMPAllow:    icmpAllow,
		IPv4Drop:     ipv4Drop,
		IPv6Drop:     ipv6Drop,

		TCPFlow:  tcpFlow,
		UDPFlow:  udpFlow,
		TCP6Flow: tcp6Flow,
		UDP6Flow: udp6Flow,

		FlowTableV4: flowTableV4,
		FlowTableV6: flowTableV6,

		RateLimitCfg: rateLimitCfg,
		TCPRate:      tcpRate,
		UDPRateLimit: udpRate,

		PathStats:     pathStats,
		WhitelistMiss: whitelistMiss,
	}, nil
}
