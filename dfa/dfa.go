// Package dfa builds a fully-materialized, minimized DFA from a
// predicate-bearing NFA (spec.md §3, §4.3, §4.4). Unlike the teacher's
// dfa/lazy package, which expands states on demand during search and
// caches them, every state here is computed up front by Determinize and
// then collapsed by Minimize — the engine this repo builds trades the
// teacher's incremental-cache complexity for one-shot, inspectable
// automata (DFA.Stats lets a caller see exactly how big the result is).
package dfa

import "github.com/coregx/fulldfa/charset"

// StateIdx identifies a state within a DFA.
type StateIdx uint32

// Accept is the acceptance condition attached to a DFA state: the
// pattern matches upon reaching this state if the input is exhausted
// (AtEOI) or if the next rune is a member of AtChar. Both may hold at
// once (e.g. a state reachable via `\z` also reachable via an
// unconditional ending position). A state that never accepts has
// AtEOI == false and AtChar == nil (or empty).
type Accept struct {
	AtEOI  bool
	AtChar *charset.Set
}

// Union is the lattice join of two Accept values (spec.md §4.3.3): the
// result accepts whatever either input accepted.
func (a Accept) Union(b Accept) Accept {
	out := Accept{AtEOI: a.AtEOI || b.AtEOI}
	switch {
	case a.AtChar == nil:
		out.AtChar = b.AtChar
	case b.AtChar == nil:
		out.AtChar = a.AtChar
	default:
		out.AtChar = a.AtChar.Union(b.AtChar)
	}
	return out
}

// IsNever reports whether this Accept condition can never fire.
func (a Accept) IsNever() bool {
	return !a.AtEOI && (a.AtChar == nil || a.AtChar.IsEmpty())
}

// Trans is one outgoing transition: consuming a rune in Range moves to To.
type Trans struct {
	Range charset.Range
	To    StateIdx
}

// State is one DFA state: its acceptance condition and its outgoing,
// sorted, pairwise-disjoint transitions. A rune not covered by any Trans
// implicitly rejects.
type State struct {
	Accept Accept
	Trans  []Trans
}

// DFA is a fully-materialized automaton with three initial states
// (spec.md §4.3.4), used to resolve \A/^ and the leading \b/\B without
// needing backtracking: which one a search uses depends on whether the
// attempt starts at absolute offset 0 (InitAtStart), or what rune
// precedes the attempted start position (InitAfterChar, falling back to
// InitOtherwise when the preceding rune isn't specially categorized).
type DFA struct {
	States        []State
	InitAtStart   StateIdx
	InitAfterChar *charset.Map[StateIdx]
	InitOtherwise StateIdx
}

// Stats reports coarse size information about the DFA, primarily so
// tests can assert exact state counts (spec.md §8 scenario S7).
type Stats struct {
	NumStates      int
	NumTransitions int
}

// Stats computes size statistics for d.
func (d *DFA) Stats() Stats {
	st := Stats{NumStates: len(d.States)}
	for _, s := range d.States {
		st.NumTransitions += len(s.Trans)
	}
	return st
}

// InitialState picks which of the three initial states to use given
// whether the attempt starts at absolute offset 0 and, if not, the rune
// immediately preceding the attempt position.
func (d *DFA) InitialState(atStart bool, precedingRune rune, hasPreceding bool) StateIdx {
	if atStart {
		return d.InitAtStart
	}
	if hasPreceding {
		if idx, ok := d.InitAfterChar.Get(precedingRune); ok {
			return idx
		}
	}
	return d.InitOtherwise
}
