// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tables

// Set is the full collection of tables a pipeline instance operates on,
// built once at startup by Open and handed to every stage.
type Set struct {
	Whitelist    KV
	PanicFlag    Slot
	GlobalBypass Slot
	ACLPorts     Slot
	ICMPAllow    KV
	IPv4Drop     KV
	IPv6Drop     KV

	TCPFlow, UDPFlow, TCP6Flow, UDP6Flow LRU

	FlowTableV4, FlowTableV6 KV

	RateLimitCfg Slot
	TCPRate      KV
	UDPRateLimit KV

	PathStats    PerCPUCounter
	WhitelistMiss PerCPUCounter
}

// Backend names an Open implementation, reported by sentrywalld at startup
// so operators can tell whether pinned kernel maps or the in-memory
// simulator backed a given run.
type Backend string

const (
	BackendBPFMap Backend = "bpfmap"
	BackendMemSim Backend = "memsim"
)
