package search

import "github.com/coregx/ahocorasick"

// AhoCorasickSearcher scans for the next occurrence of any literal in a
// set of alternatives using a single multi-pattern automaton, used when
// the program's entry instruction is a Branch whose arms are each a
// distinct literal (e.g. `cat|dog|bird`). This is the "multi-pattern
// substring search" external collaborator spec.md §6 names — the
// teacher reaches for the same automaton (meta/compile.go's
// ahoCorasick field) once a literal alternation grows past what a
// SIMD-based multi-literal prefilter handles well; this engine has no
// SIMD prefilter tier, so it reaches for Aho-Corasick at any alternation
// width of two or more rather than only above a pattern-count cutoff.
type AhoCorasickSearcher struct {
	auto *ahocorasick.Automaton
}

// NewAhoCorasickSearcher builds an AhoCorasickSearcher over lits. It
// reports ok == false if lits is empty, any literal is empty, or the
// automaton fails to build — callers should fall back to a different
// searcher in that case.
func NewAhoCorasickSearcher(lits [][]byte) (AhoCorasickSearcher, bool) {
	if len(lits) == 0 {
		return AhoCorasickSearcher{}, false
	}
	b := ahocorasick.NewBuilder()
	for _, lit := range lits {
		if len(lit) == 0 {
			return AhoCorasickSearcher{}, false
		}
		b.AddPattern(lit)
	}
	auto, err := b.Build()
	if err != nil {
		return AhoCorasickSearcher{}, false
	}
	return AhoCorasickSearcher{auto: auto}, true
}

// Next finds the next byte offset at or after from where some literal
// in the automaton begins to match.
func (s AhoCorasickSearcher) Next(b []byte, from int) (int, bool) {
	if from > len(b) {
		return -1, false
	}
	m := s.auto.Find(b, from)
	if m == nil {
		return -1, false
	}
	return m.Start, true
}
