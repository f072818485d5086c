package dfa

import (
	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/internal/conv"
)

// ReverseTrans is one reverse-graph edge: consuming a rune in Range
// could have arrived here From state From.
type ReverseTrans struct {
	Range charset.Range
	From  StateIdx
}

// Reverse builds the reverse adjacency of d — for each state, which
// transitions from elsewhere lead into it. This is a pure introspection
// aid (e.g. checking which states can reach an accepting state, or that
// every state is reachable from some initial state) and plays no part
// in matching.
func Reverse(d *DFA) [][]ReverseTrans {
	rev := make([][]ReverseTrans, len(d.States))
	for from, s := range d.States {
		for _, t := range s.Trans {
			rev[t.To] = append(rev[t.To], ReverseTrans{Range: t.Range, From: StateIdx(conv.IntToUint32(from))})
		}
	}
	return rev
}

// Reachable returns the set of state indices reachable from the DFA's
// three initial states.
func Reachable(d *DFA) map[StateIdx]bool {
	seen := make(map[StateIdx]bool)
	var stack []StateIdx
	push := func(idx StateIdx) {
		if !seen[idx] {
			seen[idx] = true
			stack = append(stack, idx)
		}
	}
	push(d.InitAtStart)
	push(d.InitOtherwise)
	for i := 0; i < d.InitAfterChar.Len(); i++ {
		push(d.InitAfterChar.Value(i))
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range d.States[idx].Trans {
			push(t.To)
		}
	}
	return seen
}
