// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the HCL file that parameterizes a sentrywalld
// instance: which interfaces to attach to, the table capacities, the
// rate-limit thresholds, and the admin listener address.
package config

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"sentrywall.dev/sentrywall/internal/errors"
	"sentrywall.dev/sentrywall/internal/tables"
	"sentrywall.dev/sentrywall/internal/types"
)

// Config is the top-level decoded shape of a sentrywalld HCL file.
type Config struct {
	SchemaVersion string      `hcl:"schema_version,optional" json:"schema_version,omitempty"`
	Interfaces    []Interface `hcl:"interface,block" json:"interface,omitempty"`
	Admin         *Admin      `hcl:"admin,block" json:"admin,omitempty"`
	RateLimit     *RateLimit  `hcl:"rate_limit,block" json:"rate_limit,omitempty"`
	TableSizes    *TableSizes `hcl:"table_sizes,block" json:"table_sizes,omitempty"`
}

// Interface names one NIC to attach an AF_PACKET socket to.
type Interface struct {
	Name string `hcl:"name,label" json:"name"`
}

// Admin configures the metrics/health/debug HTTP surface.
type Admin struct {
	ListenAddr string `hcl:"listen_addr,optional" json:"listen_addr,omitempty"`
}

// RateLimit mirrors types.RateLimitConfig as reloadable HCL fields
// (spec.md §4.9/§9: both SYN thresholds are independently configurable).
type RateLimit struct {
	RefillPeriodNs  uint64 `hcl:"refill_period_ns,optional" json:"refill_period_ns,omitempty"`
	Burst           uint32 `hcl:"burst,optional" json:"burst,omitempty"`
	SynRateLimit    uint32 `hcl:"syn_rate_limit,optional" json:"syn_rate_limit,omitempty"`
	SynBurstCeiling uint32 `hcl:"syn_burst_ceiling,optional" json:"syn_burst_ceiling,omitempty"`
}

// TableSizes mirrors tables.Sizes as reloadable-at-startup HCL fields
// (spec.md §5 defaults).
type TableSizes struct {
	TCPFlow    int `hcl:"tcp_flow,optional" json:"tcp_flow,omitempty"`
	UDPFlow    int `hcl:"udp_flow,optional" json:"udp_flow,omitempty"`
	TCP6Flow   int `hcl:"tcp6_flow,optional" json:"tcp6_flow,omitempty"`
	UDP6Flow   int `hcl:"udp6_flow,optional" json:"udp6_flow,omitempty"`
	Bypass     int `hcl:"bypass,optional" json:"bypass,omitempty"`
	Whitelist  int `hcl:"whitelist,optional" json:"whitelist,omitempty"`
	Blacklist  int `hcl:"blacklist,optional" json:"blacklist,omitempty"`
	RatePerCPU int `hcl:"rate_percpu,optional" json:"rate_percpu,omitempty"`
}

// Default returns a Config with every optional field at its spec.md
// default and a single "eth0" interface, suitable as a starting point for
// a real deployment file.
func Default() *Config {
	return &Config{
		SchemaVersion: "1.0",
		Interfaces:    []Interface{{Name: "eth0"}},
		Admin:         &Admin{ListenAddr: ":9401"},
		RateLimit: &RateLimit{
			RefillPeriodNs:  1_000_000,
			Burst:           100,
			SynRateLimit:    20,
			SynBurstCeiling: 100,
		},
		TableSizes: &TableSizes{
			TCPFlow:    32768,
			UDPFlow:    32768,
			TCP6Flow:   32768,
			UDP6Flow:   1024,
			Bypass:     65536,
			Whitelist:  64,
			Blacklist:  4096,
			RatePerCPU: 128,
		},
	}
}

// Load reads and decodes an HCL file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "read config file")
	}
	return Decode(path, data)
}

// Decode parses raw HCL bytes into a Config, filling any block the file
// omits with spec.md defaults.
func Decode(filename string, data []byte) (*Config, error) {
	cfg := &Config{}
	if err := hclsimple.Decode(filename, data, nil, cfg); err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "decode config")
	}

	def := Default()
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = def.SchemaVersion
	}
	if len(cfg.Interfaces) == 0 {
		cfg.Interfaces = def.Interfaces
	}
	if cfg.Admin == nil {
		cfg.Admin = def.Admin
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = def.RateLimit
	}
	if cfg.TableSizes == nil {
		cfg.TableSizes = def.TableSizes
	}
	return cfg, nil
}

// RateLimitConfig converts the decoded RateLimit block into the wire-shape
// types.RateLimitConfig the data plane stores in the rate_limit_cfg slot.
func (c *Config) RateLimitConfig() types.RateLimitConfig {
	if c.RateLimit == nil {
		return types.DefaultRateLimitConfig()
	}
	return types.RateLimitConfig{
		RefillPeriodNs:  c.RateLimit.RefillPeriodNs,
		Burst:           c.RateLimit.Burst,
		SynRateLimit:    c.RateLimit.SynRateLimit,
		SynBurstCeiling: c.RateLimit.SynBurstCeiling,
	}
}

// Sizes converts the decoded TableSizes block into tables.Sizes.
func (c *Config) Sizes() tables.Sizes {
	if c.TableSizes == nil {
		return tables.DefaultSizes()
	}
	return tables.Sizes{
		TCPFlow:    c.TableSizes.TCPFlow,
		UDPFlow:    c.TableSizes.UDPFlow,
		TCP6Flow:   c.TableSizes.TCP6Flow,
		UDP6Flow:   c.TableSizes.UDP6Flow,
		Bypass:     c.TableSizes.Bypass,
		Whitelist:  c.TableSizes.Whitelist,
		Blacklist:  c.TableSizes.Blacklist,
		RatePerCPU: c.TableSizes.RatePerCPU,
	}
}

// InterfaceNames returns the configured list of interface names to attach
// to, in file order.
func (c *Config) InterfaceNames() []string {
	names := make([]string, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		names[i] = iface.Name
	}
	return names
}

// AdminListenAddr returns the configured admin listener address, or the
// default if the admin block was omitted.
func (c *Config) AdminListenAddr() string {
	if c.Admin == nil || c.Admin.ListenAddr == "" {
		return ":9401"
	}
	return c.Admin.ListenAddr
}
