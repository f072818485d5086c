package dfa

import (
	"fmt"
	"strings"

	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/internal/conv"
)

// Minimize collapses d into a behaviorally-equivalent DFA with the
// fewest possible states (spec.md §4.4), using partition refinement
// over a common alphabet: states start partitioned by Accept signature,
// then the partition is refined by transition behavior until a fixpoint
// is reached — a Moore-style refinement rather than Hopcroft's
// incremental worklist, chosen for straightforward correctness (see
// DESIGN.md for the complexity trade-off this accepts).
func Minimize(d *DFA) *DFA {
	n := len(d.States)
	if n == 0 {
		return d
	}

	atoms := globalAlphabet(d)

	block := make([]int, n)
	sigOf := make(map[string]int, n)
	nextBlock := 0
	for i, s := range d.States {
		sig := acceptSignature(s.Accept)
		id, ok := sigOf[sig]
		if !ok {
			id = nextBlock
			nextBlock++
			sigOf[sig] = id
		}
		block[i] = id
	}

	for {
		changed := false
		newBlock := make([]int, n)
		classOf := make(map[string]int, n)
		nb := 0
		for i := 0; i < n; i++ {
			sig := transitionSignature(d.States[i], atoms, block)
			key := fmt.Sprintf("%d|%s", block[i], sig)
			id, ok := classOf[key]
			if !ok {
				id = nb
				nb++
				classOf[key] = id
			}
			newBlock[i] = id
		}
		if nb != nextBlock {
			changed = true
		} else {
			for i := range block {
				if block[i] != newBlock[i] {
					changed = true
					break
				}
			}
		}
		block = newBlock
		nextBlock = nb
		if !changed {
			break
		}
	}

	out := &DFA{States: make([]State, nextBlock)}
	seen := make([]bool, nextBlock)
	for i, b := range block {
		if seen[b] {
			continue
		}
		seen[b] = true
		src := d.States[i]
		trans := make([]Trans, len(src.Trans))
		for j, t := range src.Trans {
			trans[j] = Trans{Range: t.Range, To: StateIdx(conv.IntToUint32(block[t.To]))}
		}
		out.States[b] = State{Accept: src.Accept, Trans: mergeAdjacentSameTarget(trans)}
	}

	out.InitAtStart = StateIdx(conv.IntToUint32(block[d.InitAtStart]))
	out.InitOtherwise = StateIdx(conv.IntToUint32(block[d.InitOtherwise]))
	out.InitAfterChar = charset.NewMap[StateIdx]()
	for i := 0; i < d.InitAfterChar.Len(); i++ {
		r, to := d.InitAfterChar.Range(i), d.InitAfterChar.Value(i)
		out.InitAfterChar.Push(r, StateIdx(conv.IntToUint32(block[to])))
	}
	out.InitAfterChar.Normalize(func(a, b StateIdx) bool { return a == b })

	return out
}

// globalAlphabet refines every transition range in the whole DFA into a
// single shared set of disjoint atoms, so that transition signatures
// computed per state are directly comparable.
func globalAlphabet(d *DFA) []charset.Range {
	var ranges []charset.Range
	for _, s := range d.States {
		for _, t := range s.Trans {
			ranges = append(ranges, t.Range)
		}
	}
	return charset.Refine(ranges)
}

// transitionSignature describes, for each atom in the shared alphabet,
// which block (or "dead") a state's transitions land in.
func transitionSignature(s State, atoms []charset.Range, block []int) string {
	var sb strings.Builder
	ti := 0
	for _, a := range atoms {
		for ti < len(s.Trans) && s.Trans[ti].Range.Hi < a.Lo {
			ti++
		}
		if ti < len(s.Trans) && s.Trans[ti].Range.Lo <= a.Lo && a.Hi <= s.Trans[ti].Range.Hi {
			fmt.Fprintf(&sb, "%d,", block[s.Trans[ti].To])
		} else {
			sb.WriteString("-,")
		}
	}
	return sb.String()
}

func acceptSignature(a Accept) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%t|", a.AtEOI)
	if a.AtChar != nil {
		for _, r := range a.AtChar.Ranges() {
			fmt.Fprintf(&sb, "[%d-%d]", r.Lo, r.Hi)
		}
	}
	return sb.String()
}
