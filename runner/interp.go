// Package runner glues a compiled program together with a prefix-skip
// searcher to perform leftmost-shortest search (spec.md §4.6). It picks
// between a "fast" runner, which can skip ahead to plausible candidate
// starts because the program has one context-independent entry point,
// and a "slow" runner, which re-derives the correct entry state at
// every offset because the pattern's leading predicates (\A, ^, \b, ...)
// make the entry point depend on what precedes the attempt.
package runner

import (
	"unicode/utf8"

	"github.com/coregx/fulldfa/dfa"
	"github.com/coregx/fulldfa/program"
	"github.com/coregx/fulldfa/search"
)

// Runner finds the leftmost-shortest match of a compiled program in a
// byte slice.
type Runner struct {
	prog     *program.Program
	searcher search.Searcher
	uniform  bool
}

// New builds a Runner for prog, selecting the fast or slow strategy.
func New(prog *program.Program) *Runner {
	if isUniformEntry(prog) {
		return &Runner{prog: prog, searcher: pickSearcher(prog), uniform: true}
	}
	return &Runner{prog: prog, searcher: search.NoOpSearcher{}, uniform: false}
}

// Find returns the leftmost-shortest match's byte span in b, scanning
// left to right and returning the first position at which any start
// succeeds (spec.md's leftmost-shortest semantics, SPEC_FULL.md §6).
func (r *Runner) Find(b []byte) (start, end int, ok bool) {
	pos := 0
	for pos <= len(b) {
		from, found := r.searcher.Next(b, pos)
		if !found {
			return 0, 0, false
		}
		if s, e, matched := r.tryMatchAt(b, from); matched {
			return s, e, true
		}
		pos = from + 1
	}
	return 0, 0, false
}

// IsMatch reports whether the program matches anywhere in b.
func (r *Runner) IsMatch(b []byte) bool {
	_, _, ok := r.Find(b)
	return ok
}

func (r *Runner) tryMatchAt(b []byte, at int) (start, end int, ok bool) {
	pc := r.entryState(b, at)
	i := at
	for {
		inst := r.prog.Insts[pc]
		if inst.IsAccept && acceptSatisfied(inst.Accept, b, i) {
			return at, i, true
		}
		switch inst.Op {
		case program.OpReject, program.OpAcc:
			return 0, 0, false
		case program.OpLiteral:
			if i+len(inst.Literal) > len(b) || !bytesEqual(b[i:i+len(inst.Literal)], inst.Literal) {
				return 0, 0, false
			}
			i += len(inst.Literal)
			pc = inst.Next
		case program.OpLoopWhile:
			for i < len(b) && inst.LoopSet.ContainsByte(b[i]) {
				i++
			}
			pc = inst.Next
		case program.OpBranch:
			if i >= len(b) {
				return 0, 0, false
			}
			rn, size := utf8.DecodeRune(b[i:])
			to, matched := findBranch(inst.Branches, rn)
			if !matched {
				return 0, 0, false
			}
			i += size
			pc = to
		default:
			return 0, 0, false
		}
	}
}

func findBranch(arms []program.BranchArm, r rune) (int, bool) {
	for _, a := range arms {
		if a.Range.Lo <= r && r <= a.Range.Hi {
			return a.To, true
		}
	}
	return 0, false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// acceptSatisfied evaluates a dfa.Accept condition against byte
// position i: end of input satisfies AtEOI, otherwise the next rune is
// tested against AtChar.
func acceptSatisfied(accept dfa.Accept, b []byte, i int) bool {
	if i >= len(b) {
		return accept.AtEOI
	}
	if accept.AtChar == nil {
		return false
	}
	r, _ := utf8.DecodeRune(b[i:])
	return accept.AtChar.Contains(r)
}
