package nfa

import (
	"unicode"

	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/internal/sparse"
)

// WordRunes is the set of runes \b and \B are defined over: any Unicode
// letter or number, plus underscore. This mirrors the original
// jneem/automaton source's test_word_boundary (\bהחומוס\b matches
// surrounding Hebrew text), not RE2's ASCII-only [0-9A-Za-z_] — see
// nfa.IsWordRune, which this set must agree with.
var WordRunes = charset.SetFromRanges(
	append(append(rangesFromTable(unicode.L), rangesFromTable(unicode.N)...),
		charset.Range{Lo: '_', Hi: '_'})...,
)

// NonWordRunes is the complement of WordRunes.
var NonWordRunes = WordRunes.Complement()

// rangesFromTable flattens a *unicode.RangeTable into charset.Ranges,
// expanding stride>1 entries (e.g. alternating-parity blocks) one
// scalar at a time.
func rangesFromTable(t *unicode.RangeTable) []charset.Range {
	out := make([]charset.Range, 0, len(t.R16)+len(t.R32))
	for _, r := range t.R16 {
		if r.Stride == 1 {
			out = append(out, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			out = append(out, charset.Range{Lo: c, Hi: c})
		}
	}
	for _, r := range t.R32 {
		if r.Stride == 1 {
			out = append(out, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			out = append(out, charset.Range{Lo: c, Hi: c})
		}
	}
	return out
}

// Context describes what is known about the input immediately before the
// position a Closure call starts from. AtStart is true only at absolute
// offset 0 of the whole search; AfterNewline and FromWord describe the
// rune that was just consumed to reach this position (both false at
// offset 0). These three bits are exactly what spec.md §4.3.4's
// multiple-initial-state mechanism keys on, generalized: the same
// Context parameter also resolves \A and ^ since both only depend on the
// past.
type Context struct {
	AtStart     bool
	AfterNewline bool
	FromWord    bool
}

// Requirement constrains what may legally follow a position reached via
// a Look assertion that depends on the *next* input (\z, $, \b, \B).
// A zero-value-like "unrestricted" Requirement (Chars == nil) means
// anything may follow, including end of input.
type Requirement struct {
	EOIOk bool
	Chars *charset.Set // nil means unrestricted
}

// unrestricted is the identity Requirement: no pending look constrains
// what comes next.
func unrestricted() Requirement { return Requirement{EOIOk: true, Chars: nil} }

// combine intersects two requirements, as happens when two deferred Look
// predicates are traversed back to back (e.g. \b\b, \b$). A combination
// whose Chars become the empty set and whose EOIOk is false represents an
// unsatisfiable chain (e.g. \b\B), and correctly contributes neither
// transitions nor acceptance.
func combine(a, b Requirement) Requirement {
	out := Requirement{EOIOk: a.EOIOk && b.EOIOk}
	switch {
	case a.Chars == nil:
		out.Chars = b.Chars
	case b.Chars == nil:
		out.Chars = a.Chars
	default:
		out.Chars = a.Chars.Intersect(b.Chars)
	}
	return out
}

// dead reports whether this requirement can never be satisfied: no
// character can follow and end-of-input isn't allowed either.
func (r Requirement) dead() bool {
	return r.Chars != nil && r.Chars.IsEmpty() && !r.EOIOk
}

// ClosureItem is one member of an epsilon closure: an ordinary
// (Range/Sparse/Match) state reached under an accumulated Requirement.
type ClosureItem struct {
	State StateID
	Req   Requirement
}

// Closure computes the epsilon closure of seeds under ctx, resolving
// every Look predicate reached along the way. LookBeginText/LookBeginLine
// depend only on ctx and are resolved immediately (the path is pruned
// if unsatisfied); LookEndText/LookEndLine/LookWordBoundary/
// LookNoWordBoundary depend on what comes next and are resolved by
// accumulating a Requirement that the caller (dfa.determinize) applies
// when it computes outgoing transitions and acceptance for the
// resulting DFA state. This is the predicate-elimination step of
// spec.md §4.2, performed lazily during subset construction rather than
// as a prior NFA rewrite, because \z/$/\b/\B need one token of
// lookahead that a prior NFA-only rewrite would have to re-derive anyway
// (see DESIGN.md).
func (n *NFA) Closure(seeds []StateID, ctx Context) []ClosureItem {
	//nolint:gosec // G115: NFA state counts never approach uint32 overflow.
	visited := sparse.NewSparseSet(uint32(len(n.states)))
	var out []ClosureItem

	var walk func(id StateID, req Requirement)
	walk = func(id StateID, req Requirement) {
		if req.dead() {
			return
		}
		if visited.Contains(uint32(id)) {
			return
		}
		visited.Insert(uint32(id))

		s := &n.states[id]
		switch s.kind {
		case StateEpsilon:
			walk(s.next, req)
		case StateSplit:
			walk(s.left, req)
			walk(s.right, req)
		case StateLook:
			switch s.look {
			case LookBeginText:
				if ctx.AtStart {
					walk(s.next, req)
				}
			case LookBeginLine:
				if ctx.AtStart || ctx.AfterNewline {
					walk(s.next, req)
				}
			case LookEndText:
				walk(s.next, combine(req, Requirement{EOIOk: true, Chars: charset.NewSet()}))
			case LookEndLine:
				nl := charset.SetFromRanges(charset.Range{Lo: '\n', Hi: '\n'})
				walk(s.next, combine(req, Requirement{EOIOk: true, Chars: nl}))
			case LookWordBoundary:
				walk(s.next, combine(req, wordBoundaryRequirement(ctx.FromWord, true)))
			case LookNoWordBoundary:
				walk(s.next, combine(req, wordBoundaryRequirement(ctx.FromWord, false)))
			}
		case StateMatch, StateRange, StateSparse:
			out = append(out, ClosureItem{State: id, Req: req})
		}
	}

	for _, seed := range seeds {
		walk(seed, unrestricted())
	}
	return out
}

// wordBoundaryRequirement computes the Requirement imposed by \b (want=true)
// or \B (want=false) given that the preceding rune's wordness is fromWord.
// \b holds iff the next rune's wordness differs from fromWord (end of
// input counts as non-word, so \b also accepts EOI when fromWord is
// true); \B holds iff the next rune has the same wordness as fromWord
// (and accepts EOI when fromWord is false).
func wordBoundaryRequirement(fromWord, want bool) Requirement {
	nextMustBeWord := fromWord != want // \b(want=true): next != fromWord
	if nextMustBeWord {
		return Requirement{EOIOk: false, Chars: WordRunes.Clone()}
	}
	return Requirement{EOIOk: true, Chars: NonWordRunes.Clone()}
}
