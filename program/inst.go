// Package program compiles a minimized DFA into a linear instruction
// program (spec.md §4.5): straight-line runs of single-target
// transitions get fused into one Literal instruction, qualifying
// "common character" self-loops compile to a byte-level LoopWhile, and
// everything else falls back to a per-rune Branch. This is the
// counterpart of the teacher's dfa/onepass package (which also
// compiles a DFA-shaped automaton into a flatter, faster-to-walk form),
// generalized to the fully-materialized DFA this repo builds.
package program

import (
	"fmt"
	"strings"

	"github.com/coregx/fulldfa/asciiset"
	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/dfa"
)

// Op discriminates the variant fields of an Inst that are meaningful.
type Op uint8

const (
	// OpLiteral matches a fixed byte sequence, then jumps to Next
	// unconditionally. Produced by chain fusion (spec.md §4.5).
	OpLiteral Op = iota
	// OpBranch decodes the next rune and jumps according to Branches,
	// or to Reject if no branch matches.
	OpBranch
	// OpLoopWhile consumes bytes matching LoopSet for as long as
	// possible (a fused self-loop, spec.md §4.5), then falls through to
	// Next to resolve whatever comes after the loop.
	OpLoopWhile
	// OpAcc marks an accepting state with no outgoing transitions;
	// Accept says under what condition (end of input and/or specific
	// next rune) it accepts. If the condition does not hold, the match
	// attempt fails; Next is not used.
	OpAcc
	// OpReject is a dead end: the state has no outgoing transitions and
	// does not accept.
	OpReject
)

func (o Op) String() string {
	switch o {
	case OpLiteral:
		return "Literal"
	case OpBranch:
		return "Branch"
	case OpLoopWhile:
		return "LoopWhile"
	case OpAcc:
		return "Acc"
	case OpReject:
		return "Reject"
	default:
		return fmt.Sprintf("Op(%d)", o)
	}
}

// BranchArm is one arm of an OpBranch's range table.
type BranchArm struct {
	Range charset.Range
	To    int
}

// Inst is one instruction in the compiled program.
type Inst struct {
	Op Op

	// OpLiteral
	Literal []byte
	Next    int

	// OpBranch
	Branches []BranchArm

	// OpLoopWhile
	LoopSet asciiset.Extended

	// OpAcc / OpBranch fallback when a state is also a DFA source with
	// further transitions (a state can both accept and have outgoing
	// transitions, per spec.md's Accept model).
	Accept  dfa.Accept
	IsAccept bool
}

// Program is the compiled, linear instruction stream plus the entry
// points mirroring DFA.InitAtStart/InitAfterChar/InitOtherwise.
type Program struct {
	Insts         []Inst
	InitAtStart   int
	InitAfterChar *charset.Map[int]
	InitOtherwise int
}

// Dump renders the instruction stream, one Inst per line — a debugging
// aid (SPEC_FULL.md §4, item 2), not part of the matching contract.
func (p *Program) Dump() string {
	var sb strings.Builder
	for i, inst := range p.Insts {
		fmt.Fprintf(&sb, "%4d: %s", i, inst.Op)
		switch inst.Op {
		case OpLiteral:
			fmt.Fprintf(&sb, " %q -> %d", inst.Literal, inst.Next)
		case OpBranch:
			for _, a := range inst.Branches {
				fmt.Fprintf(&sb, " [%d-%d]->%d", a.Range.Lo, a.Range.Hi, a.To)
			}
		case OpLoopWhile:
			fmt.Fprintf(&sb, " -> %d", inst.Next)
		}
		if inst.IsAccept {
			fmt.Fprintf(&sb, " accept(eoi=%t)", inst.Accept.AtEOI)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
