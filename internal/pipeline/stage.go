// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package pipeline

// Stage indices, in chain order (spec.md §2). The exact numeric layout of
// a kernel jmp_table is not observable externally — only the chain order
// is — so these are simply 0-based positions in this repository's jump
// table, not a literal replica of any program-array index assignment.
const (
	StageWhitelist = iota
	StagePanic
	StageACL
	StageBlacklist
	StageFastpath
	StageGate
	StageDispatch
	StageState

	numStages
)

// stageFunc is one chain link: inspect headers/tables via ctx, return a
// tagged result of PASS, DROP, or tail-call to another stage index.
type stageFunc func(p *Pipeline, ctx *packetContext) result
