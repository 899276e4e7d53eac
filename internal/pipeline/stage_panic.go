// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

// stepPanic implements S1 (spec.md §4.3): a constant-time emergency
// shutoff. A set low bit in panic_flag drops everything that reaches
// here; otherwise control tail-calls to the ACL stage.
func stepPanic(p *Pipeline, ctx *packetContext) result {
	v := p.set.PanicFlag.Load()
	if len(v) > 0 && v[0]&1 == 1 {
		p.counters.DropPanic.Add(1)
		return drop()
	}
	return tail(StageACL)
}
