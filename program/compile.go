package program

import (
	"unicode/utf8"

	"github.com/coregx/fulldfa/asciiset"
	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/dfa"
	"github.com/coregx/fulldfa/internal/conv"
)

// Compile lowers a minimized DFA into a linear Program (spec.md §4.5).
// Every DFA state gets a straightforward instruction first; two
// optimization passes then replace qualifying states' instructions:
// literal chain fusion (a run of non-accepting, single-target,
// singleton-rune states collapses into one OpLiteral) and common
// self-loop detection (a non-accepting self-loop over enough of
// [0-9A-Za-z], with any non-ASCII portion covering the whole non-ASCII
// scalar space, collapses into a byte-level OpLoopWhile whose fallback
// is a duplicate of the original per-rune instruction — so the fast
// loop never has to special-case its own exit condition).
func Compile(d *dfa.DFA) *Program {
	insts := make([]Inst, len(d.States))
	for i, s := range d.States {
		insts[i] = plainInst(s)
	}

	for i, s := range d.States {
		idx := dfa.StateIdx(conv.IntToUint32(i))
		if loop, ok := trySelfLoop(idx, s); ok {
			fallback := insts[i]
			fallbackIdx := len(insts)
			insts = append(insts, fallback)
			insts[i] = Inst{Op: OpLoopWhile, LoopSet: loop, Next: fallbackIdx}
			continue
		}
		if lit, next, ok := tryLiteralChain(d, idx); ok {
			insts[i] = Inst{Op: OpLiteral, Literal: lit, Next: next}
		}
	}

	p := &Program{
		Insts:         insts,
		InitAtStart:   int(d.InitAtStart),
		InitOtherwise: int(d.InitOtherwise),
		InitAfterChar: charset.NewMap[int](),
	}
	for i := 0; i < d.InitAfterChar.Len(); i++ {
		r, to := d.InitAfterChar.Range(i), d.InitAfterChar.Value(i)
		p.InitAfterChar.Push(r, int(to))
	}
	p.InitAfterChar.Normalize(func(a, b int) bool { return a == b })
	return p
}

func plainInst(s dfa.State) Inst {
	isAccept := !s.Accept.IsNever()
	if len(s.Trans) == 0 {
		if !isAccept {
			return Inst{Op: OpReject}
		}
		return Inst{Op: OpAcc, Accept: s.Accept, IsAccept: true}
	}
	branches := make([]BranchArm, len(s.Trans))
	for i, t := range s.Trans {
		branches[i] = BranchArm{Range: t.Range, To: int(t.To)}
	}
	return Inst{Op: OpBranch, Branches: branches, Accept: s.Accept, IsAccept: isAccept}
}

// tryLiteralChain walks forward from start through non-accepting,
// single-transition, singleton-rune states, accumulating their UTF-8
// bytes, stopping at the first state that doesn't qualify. It reports
// ok only when at least two runes were fused (a single rune gains
// nothing from this instruction shape).
func tryLiteralChain(d *dfa.DFA, start dfa.StateIdx) ([]byte, int, bool) {
	var buf []byte
	cur := start
	count := 0
	for {
		s := d.States[cur]
		if !s.Accept.IsNever() || len(s.Trans) != 1 {
			break
		}
		t := s.Trans[0]
		if t.Range.Lo != t.Range.Hi {
			break
		}
		var rbuf [utf8.UTFMax]byte
		n := utf8.EncodeRune(rbuf[:], t.Range.Lo)
		buf = append(buf, rbuf[:n]...)
		count++
		next := t.To
		if next == start {
			break
		}
		cur = next
	}
	if count < 2 {
		return nil, 0, false
	}
	return buf, int(cur), true
}

// trySelfLoop detects a qualifying common self-loop on state idx: a
// non-accepting state with a transition back to itself whose range
// clears the common-overlap bar (program/commonset.go).
func trySelfLoop(idx dfa.StateIdx, s dfa.State) (asciiset.Extended, bool) {
	if !s.Accept.IsNever() {
		return asciiset.Extended{}, false
	}
	selfRanges := charset.NewSet()
	for _, t := range s.Trans {
		if t.To == idx {
			selfRanges.Push(t.Range)
		}
	}
	selfRanges.Normalize()
	if selfRanges.IsEmpty() || !qualifiesForLoopWhile(selfRanges) {
		return asciiset.Extended{}, false
	}

	ext := asciiset.Extended{ASCII: asciiRuneSetToByteSet(selfRanges.Intersect(asciiUniverse))}
	nonASCII := selfRanges.Intersect(nonASCIIUniverse)
	ext.ContainsNonASCII = !nonASCII.IsEmpty()
	return ext, true
}
