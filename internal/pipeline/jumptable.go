// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

// dispatch runs the stage chain starting at entry, following tail-calls
// until a stage produces a verdict. An out-of-range tail-call index is
// equivalent to PASS (spec.md §3 invariant: "the jump table always
// dispatches to a valid stage; an out-of-range index is equivalent to
// PASS").
func (p *Pipeline) dispatch(entry int, ctx *packetContext) Verdict {
	idx := entry
	for {
		if idx < 0 || idx >= numStages {
			return VerdictPass
		}
		fn := p.jumpTable[idx]
		if fn == nil {
			return VerdictPass
		}
		r := fn(p, ctx)
		if !r.isTail {
			return r.verdict
		}
		idx = r.next
	}
}
