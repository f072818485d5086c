package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/fulldfa/charset"
	"github.com/coregx/fulldfa/internal/conv"
	"github.com/coregx/fulldfa/nfa"
)

// TooBigError is returned by Determinize when the number of distinct
// subsets would exceed the configured budget (spec.md §4.3, the
// max_states guard).
type TooBigError struct {
	MaxStates int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("dfa: determinization exceeded max_states=%d", e.MaxStates)
}

// Determinize runs subset construction over n, resolving every Look
// predicate along the way (nfa.Closure does the predicate-elimination
// work; see its doc comment and DESIGN.md). maxStates <= 0 means
// unbounded.
func Determinize(n *nfa.NFA, maxStates int) (*DFA, error) {
	b := &builder{n: n, maxStates: maxStates, cache: make(map[string]StateIdx)}

	seed := []nfa.StateID{n.Start()}

	atStart, err := b.addSubset(n.Closure(seed, nfa.Context{AtStart: true}))
	if err != nil {
		return nil, err
	}
	otherwise, err := b.addSubset(n.Closure(seed, nfa.Context{}))
	if err != nil {
		return nil, err
	}
	afterWord, err := b.addSubset(n.Closure(seed, nfa.Context{FromWord: true}))
	if err != nil {
		return nil, err
	}
	afterNL, err := b.addSubset(n.Closure(seed, nfa.Context{AfterNewline: true}))
	if err != nil {
		return nil, err
	}

	initAfterChar := charset.NewMap[StateIdx]()
	for _, r := range nfa.WordRunes.Ranges() {
		initAfterChar.Push(r, afterWord)
	}
	initAfterChar.Push(charset.Range{Lo: '\n', Hi: '\n'}, afterNL)
	initAfterChar.Normalize(func(a, b StateIdx) bool { return a == b })

	if err := b.run(); err != nil {
		return nil, err
	}

	return &DFA{
		States:        b.states,
		InitAtStart:   atStart,
		InitAfterChar: initAfterChar,
		InitOtherwise: otherwise,
	}, nil
}

type builder struct {
	n         *nfa.NFA
	maxStates int
	cache     map[string]StateIdx
	subsets   [][]nfa.ClosureItem
	states    []State
	queue     []StateIdx
}

func (b *builder) addSubset(items []nfa.ClosureItem) (StateIdx, error) {
	key := subsetKey(items)
	if idx, ok := b.cache[key]; ok {
		return idx, nil
	}
	idx := StateIdx(conv.IntToUint32(len(b.states)))
	if b.maxStates > 0 && int(idx) >= b.maxStates {
		return 0, &TooBigError{MaxStates: b.maxStates}
	}
	b.cache[key] = idx
	b.states = append(b.states, State{})
	b.subsets = append(b.subsets, items)
	b.queue = append(b.queue, idx)
	return idx, nil
}

func (b *builder) run() error {
	for len(b.queue) > 0 {
		idx := b.queue[0]
		b.queue = b.queue[1:]
		if err := b.expand(idx); err != nil {
			return err
		}
	}
	return nil
}

// expand computes state idx's Accept condition and outgoing transitions
// from its member NFA closure items (spec.md §4.3.2, §4.3.3).
func (b *builder) expand(idx StateIdx) error {
	items := b.subsets[idx]
	n := b.n

	var accept Accept
	mm := charset.NewMultiMap[nfa.StateID]()

	for _, it := range items {
		s := n.State(it.State)
		switch s.KindOf() {
		case nfa.StateMatch:
			accept = accept.Union(requirementToAccept(it.Req))
		case nfa.StateRange:
			lo, hi, next := s.Range()
			pushMasked(mm, charset.Range{Lo: lo, Hi: hi}, next, it.Req)
		case nfa.StateSparse:
			for _, tr := range s.Transitions() {
				pushMasked(mm, charset.Range{Lo: tr.Lo, Hi: tr.Hi}, tr.Next, it.Req)
			}
		}
	}

	grouped := mm.Group()
	var trans []Trans
	for i := 0; i < grouped.Len(); i++ {
		r, targets := grouped.Range(i), grouped.Value(i)
		if len(targets) == 0 {
			continue
		}
		for _, sub := range splitByContext(r) {
			ctx := contextForAtom(sub)
			closureItems := n.Closure(targets, ctx)
			if len(closureItems) == 0 {
				continue
			}
			toIdx, err := b.addSubset(closureItems)
			if err != nil {
				return err
			}
			trans = append(trans, Trans{Range: sub, To: toIdx})
		}
	}

	b.states[idx] = State{Accept: accept, Trans: mergeAdjacentSameTarget(trans)}
	return nil
}

// requirementToAccept converts a deferred Requirement on a Match state
// into an Accept condition. An unrestricted requirement means the match
// completes regardless of what (if anything) follows.
func requirementToAccept(req nfa.Requirement) Accept {
	if req.Chars == nil {
		return Accept{AtEOI: true, AtChar: charset.All()}
	}
	return Accept{AtEOI: req.EOIOk, AtChar: req.Chars}
}

// pushMasked pushes r -> target into mm, first intersecting r with any
// pending Requirement's allowed character set.
func pushMasked(mm *charset.MultiMap[nfa.StateID], r charset.Range, target nfa.StateID, req nfa.Requirement) {
	if req.Chars == nil {
		mm.Push(r, target)
		return
	}
	allowed := charset.SetFromRanges(r).Intersect(req.Chars)
	for i := 0; i < allowed.Len(); i++ {
		mm.Push(allowed.Range(i), target)
	}
}

// splitByContext splits r into sub-ranges that each lie entirely within
// one of {word runes, the newline rune, everything else}, so that every
// DFA transition atom has an unambiguous (FromWord, AfterNewline)
// classification for whatever Look predicates are reachable past it —
// needed for \b/\B/^ correctness anywhere they occur, not only at the
// very start of a match. Minimization collapses any states this
// unconditional splitting made redundant when no boundary predicate
// actually depends on it.
func splitByContext(r charset.Range) []charset.Range {
	rs := charset.SetFromRanges(r)
	word := rs.Intersect(nfa.WordRunes)
	nl := rs.Intersect(newlineSet)
	wordAndNL := word.Union(nl)
	other := rs.Intersect(wordAndNL.Complement())

	var out []charset.Range
	out = append(out, word.Ranges()...)
	out = append(out, nl.Ranges()...)
	out = append(out, other.Ranges()...)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return out
}

var newlineSet = charset.SetFromRanges(charset.Range{Lo: '\n', Hi: '\n'})

func contextForAtom(r charset.Range) nfa.Context {
	if r == (charset.Range{Lo: '\n', Hi: '\n'}) {
		return nfa.Context{AfterNewline: true}
	}
	if nfa.WordRunes.Contains(r.Lo) {
		return nfa.Context{FromWord: true}
	}
	return nfa.Context{}
}

// mergeAdjacentSameTarget coalesces adjacent/equal-target transitions
// produced by splitByContext's extra partitioning, keeping the
// transition list minimal and sorted.
func mergeAdjacentSameTarget(trans []Trans) []Trans {
	if len(trans) == 0 {
		return nil
	}
	sort.Slice(trans, func(i, j int) bool { return trans[i].Range.Lo < trans[j].Range.Lo })
	out := trans[:1]
	for _, t := range trans[1:] {
		last := &out[len(out)-1]
		if last.To == t.To && last.Range.Hi+1 == t.Range.Lo {
			last.Range.Hi = t.Range.Hi
			continue
		}
		out = append(out, t)
	}
	return out
}

// subsetKey builds a canonical string identifying a closure's member
// (state, requirement) pairs, used to dedupe DFA states during subset
// construction.
func subsetKey(items []nfa.ClosureItem) string {
	sorted := make([]nfa.ClosureItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].State != sorted[j].State {
			return sorted[i].State < sorted[j].State
		}
		return reqKey(sorted[i].Req) < reqKey(sorted[j].Req)
	})
	var sb strings.Builder
	for _, it := range sorted {
		fmt.Fprintf(&sb, "%d|%s;", it.State, reqKey(it.Req))
	}
	return sb.String()
}

func reqKey(r nfa.Requirement) string {
	if r.Chars == nil {
		return fmt.Sprintf("%t|*", r.EOIOk)
	}
	var sb strings.Builder
	for _, rg := range r.Chars.Ranges() {
		fmt.Fprintf(&sb, "[%d-%d]", rg.Lo, rg.Hi)
	}
	return fmt.Sprintf("%t|%s", r.EOIOk, sb.String())
}
