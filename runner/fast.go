package runner

import (
	"unicode/utf8"

	"github.com/coregx/fulldfa/asciiset"
	"github.com/coregx/fulldfa/program"
	"github.com/coregx/fulldfa/search"
)

// isUniformEntry reports whether prog's entry point is the same
// instruction regardless of position — i.e. none of \A, ^, \b, \B
// distinguish the very first step of the pattern. When true, a
// searcher can safely skip ahead to candidate starts.
func isUniformEntry(prog *program.Program) bool {
	if prog.InitAtStart != prog.InitOtherwise {
		return false
	}
	for i := 0; i < prog.InitAfterChar.Len(); i++ {
		if prog.InitAfterChar.Value(i) != prog.InitOtherwise {
			return false
		}
	}
	return true
}

// pickSearcher chooses a prefix-skip searcher from the shape of prog's
// single entry instruction.
func pickSearcher(prog *program.Program) search.Searcher {
	inst := prog.Insts[prog.InitOtherwise]
	if inst.IsAccept {
		// The entry state can accept before consuming anything, so every
		// offset (including len(b)) is a candidate.
		return search.NoOpSearcher{}
	}
	switch inst.Op {
	case program.OpLiteral:
		if len(inst.Literal) > 0 {
			return search.LiteralSearcher{Lit: inst.Literal}
		}
	case program.OpBranch:
		if len(inst.Branches) == 1 {
			r := inst.Branches[0].Range
			if r.Lo == r.Hi && r.Lo < utf8.RuneSelf {
				return search.ByteSearcher{B: byte(r.Lo)}
			}
		}
		if lits, ok := literalAlternatives(prog, inst.Branches); ok {
			if s, ok := search.NewAhoCorasickSearcher(lits); ok {
				return s
			}
		}
		if set, ok := asciiSetOf(inst.Branches); ok {
			return search.AsciiSetSearcher{Set: set}
		}
	}
	// OpLoopWhile entries fall through to NoOpSearcher rather than
	// search.LoopWhileComplementSearcher: skipping to the first byte
	// outside the loop set is only sound on a *retry* after a failed
	// attempt at the run's start, not as the very first candidate (the
	// run's start is itself a valid — and leftmost — candidate).
	// LoopWhileComplementSearcher stays available as a primitive for
	// search callers that can make that distinction themselves.
	return search.NoOpSearcher{}
}

// asciiSetOf builds an ExtendedAsciiSet from a multi-arm branch whose
// every arm is entirely within the ASCII range, used for the "Branch
// with ASCII character set" fast-path searcher of spec.md §4.6. Branches
// that reach outside ASCII (a rune >= 0x80 would require byte-level
// reasoning this searcher doesn't do) are rejected.
func asciiSetOf(branches []program.BranchArm) (asciiset.Extended, bool) {
	if len(branches) < 2 {
		return asciiset.Extended{}, false
	}
	var ext asciiset.Extended
	for _, a := range branches {
		if a.Range.Hi >= utf8.RuneSelf {
			return asciiset.Extended{}, false
		}
		for b := a.Range.Lo; b <= a.Range.Hi; b++ {
			ext.ASCII.Insert(byte(b))
		}
	}
	return ext, true
}

// literalAlternatives walks each arm of a multi-arm entry branch,
// extending a single-rune arm into the fully-fused literal chain that
// follows it (program.Compile already fused any such chain into one
// OpLiteral), so that a pattern like `cat|dog|bird` exposes its three
// complete literals rather than just their first bytes. Reports ok only
// when every arm resolves to a genuine literal of at least one byte,
// since a bare Branch/Acc/LoopWhile continuation can't be represented as
// a fixed string for the Aho-Corasick prefilter.
func literalAlternatives(prog *program.Program, branches []program.BranchArm) ([][]byte, bool) {
	if len(branches) < 2 {
		return nil, false
	}
	lits := make([][]byte, 0, len(branches))
	extended := false
	for _, a := range branches {
		if a.Range.Lo != a.Range.Hi || a.Range.Lo >= utf8.RuneSelf {
			return nil, false
		}
		buf := []byte{byte(a.Range.Lo)}
		// A fused OpLiteral chain never embeds an accept (program.Compile's
		// tryLiteralChain stops at the first accepting state), so its
		// whole byte run is a sound required-substring extension of this
		// arm's single leading byte. Anything else (Branch, Acc, Reject,
		// LoopWhile) isn't a fixed continuation, so the single byte is as
		// far as this arm's literal goes.
		if next := prog.Insts[a.To]; next.Op == program.OpLiteral {
			buf = append(buf, next.Literal...)
			extended = true
		}
		lits = append(lits, buf)
	}
	// When no arm extends past its leading byte, every literal here is a
	// single ASCII byte and asciiSetOf's plain byte-set scan covers the
	// same ground more cheaply — reserve the automaton for genuine
	// multi-byte alternations like `cat|dog|bird`.
	if !extended {
		return nil, false
	}
	return lits, true
}
