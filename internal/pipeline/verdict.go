// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package pipeline implements the stage chain: an ordered, data-driven
// sequence of filter stages tail-calling one another through a jump table
// rather than direct function calls, so the chain can be inspected or
// reassembled without touching stage code (spec.md §2, §9).
package pipeline

// Verdict is the only observable per-frame output (spec.md §6).
type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictDrop
)

func (v Verdict) String() string {
	if v == VerdictPass {
		return "PASS"
	}
	return "DROP"
}

// result tags what a single stage produced: an immediate verdict, or a
// tail-call to another stage by jump-table index.
type result struct {
	verdict Verdict
	isTail  bool
	next    int
}

func pass() result           { return result{verdict: VerdictPass} }
func drop() result           { return result{verdict: VerdictDrop} }
func tail(idx int) result    { return result{isTail: true, next: idx} }
