// Package nfa builds the predicate-bearing NFA that sits between the
// regex AST and the DFA (spec.md §3, §4.2). States carry either an
// ordinary range-labeled transition, an epsilon/split for composition, or
// a zero-width Look predicate; there is no single fixed start state —
// Closure resolves Look predicates against a Context describing what is
// known about the position (start of text, preceding newline, preceding
// word character) and returns the member states together with any
// still-pending Requirement on whatever comes next, which is exactly the
// mechanism the DFA package uses to do both "multiple initial states" and
// mid-pattern \b/\B/\z/$ resolution (see dfa/determinize.go and
// DESIGN.md).
package nfa

import "fmt"

// StateID identifies a state within an NFA.
type StateID uint32

// InvalidState is a sentinel for "no target yet" / "not applicable".
const InvalidState StateID = 1<<32 - 1

// StateKind discriminates the variant fields of a State that are valid.
type StateKind uint8

const (
	// StateMatch is an accepting state: reaching it (after resolving
	// any pending Requirement) means the pattern has matched.
	StateMatch StateKind = iota
	// StateRange consumes exactly one scalar in [Lo, Hi] and moves to Next.
	StateRange
	// StateSparse consumes exactly one scalar covered by any of its
	// Transitions and moves to that transition's Next (character class).
	StateSparse
	// StateSplit is an epsilon branch to Left and Right, used for
	// alternation and quantifiers.
	StateSplit
	// StateEpsilon is an unconditional epsilon move to Next.
	StateEpsilon
	// StateLook is a zero-width predicate; traversing it to Next is
	// gated by the Look assertion it carries.
	StateLook
)

func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateRange:
		return "Range"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	default:
		return fmt.Sprintf("StateKind(%d)", k)
	}
}

// Transition is one arm of a StateSparse character class.
type Transition struct {
	Lo, Hi rune
	Next   StateID
}

// State is one node of the NFA. Only the fields relevant to Kind are
// meaningful; the rest are zero.
type State struct {
	kind        StateKind
	lo, hi      rune
	next        StateID
	trans       []Transition
	left, right StateID
	look        Look
}

// Range returns the (lo, hi, next) triple for a StateRange state.
func (s *State) Range() (lo, hi rune, next StateID) { return s.lo, s.hi, s.next }

// Transitions returns the transition list for a StateSparse state.
func (s *State) Transitions() []Transition { return s.trans }

// Split returns the two epsilon targets for a StateSplit state.
func (s *State) Split() (left, right StateID) { return s.left, s.right }

// Epsilon returns the target for a StateEpsilon state.
func (s *State) Epsilon() StateID { return s.next }

// LookAndNext returns the predicate and target for a StateLook state.
func (s *State) LookAndNext() (look Look, next StateID) { return s.look, s.next }

// KindOf returns the state's kind.
func (s *State) KindOf() StateKind { return s.kind }

// NFA is a vector of States plus a single logical entry point. Multiple
// initial states (spec.md §3, §4.3.4) are not represented here — they are
// derived by calling Closure with different Contexts from the same Start.
type NFA struct {
	states []State
	start  StateID
}

// Start returns the NFA's single logical entry point. Boundary-sensitive
// behavior is obtained by calling Closure(Start()) under different
// Contexts, not by having multiple entry StateIDs.
func (n *NFA) Start() StateID { return n.start }

// State returns the state with the given ID.
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// Len returns the number of states.
func (n *NFA) Len() int { return len(n.states) }
