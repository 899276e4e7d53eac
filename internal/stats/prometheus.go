// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package stats

import "github.com/prometheus/client_golang/prometheus"

// PromCollector mirrors Counters into Prometheus instruments. It is a
// prometheus.Collector, not a set of directly-incremented metrics: Collect
// reads the atomics fresh on every scrape, so the hot path never touches
// the Prometheus client library.
type PromCollector struct {
	counters *Counters

	fastHits      prometheus.Desc
	slowHits      prometheus.Desc
	whitelistMiss prometheus.Desc
	drops         prometheus.Desc
}

// NewPromCollector wraps counters for registration with a
// prometheus.Registry.
func NewPromCollector(counters *Counters) *PromCollector {
	return &PromCollector{
		counters: counters,
		fastHits: *prometheus.NewDesc(
			"sentrywall_fastpath_hits_total", "Packets that completed via the flow fastpath.", nil, nil),
		slowHits: *prometheus.NewDesc(
			"sentrywall_slowpath_hits_total", "Packets that completed via proto-dispatch/state.", nil, nil),
		whitelistMiss: *prometheus.NewDesc(
			"sentrywall_whitelist_miss_total", "Packets whose source was not found in the whitelist.", nil, nil),
		drops: *prometheus.NewDesc(
			"sentrywall_drops_total", "Packets dropped, by stage.", []string{"stage"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *PromCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- &c.fastHits
	ch <- &c.slowHits
	ch <- &c.whitelistMiss
	ch <- &c.drops
}

// Collect implements prometheus.Collector.
func (c *PromCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.counters.Snapshot()

	ch <- prometheus.MustNewConstMetric(&c.fastHits, prometheus.CounterValue, float64(snap.FastHits))
	ch <- prometheus.MustNewConstMetric(&c.slowHits, prometheus.CounterValue, float64(snap.SlowHits))
	ch <- prometheus.MustNewConstMetric(&c.whitelistMiss, prometheus.CounterValue, float64(snap.WhitelistMiss))

	for stage, v := range map[string]uint64{
		"whitelist": snap.DropWhitelist,
		"panic":     snap.DropPanic,
		"acl":       snap.DropACL,
		"blacklist": snap.DropBlacklist,
		"gate":      snap.DropGate,
		"syn_rate":  snap.DropSYNRate,
		"udp_token": snap.DropUDPToken,
	} {
		ch <- prometheus.MustNewConstMetric(&c.drops, prometheus.CounterValue, float64(v), stage)
	}
}
