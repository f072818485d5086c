package dfa

import (
	"regexp/syntax"
	"testing"

	"github.com/coregx/fulldfa/nfa"
)

func build(t *testing.T, pattern string) *DFA {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	n, err := nfa.FromSyntax(re)
	if err != nil {
		t.Fatalf("FromSyntax(%q): %v", pattern, err)
	}
	d, err := Determinize(n, 0)
	if err != nil {
		t.Fatalf("Determinize(%q): %v", pattern, err)
	}
	return d
}

// run walks d from its InitOtherwise state over s, requiring full
// consumption and then EOI acceptance — the simplest possible
// exhaustive-match check for tests (the runner package implements the
// real leftmost-shortest search).
func run(d *DFA, s string) bool {
	cur := d.InitOtherwise
	for _, r := range s {
		st := d.States[cur]
		next, ok := findTrans(st, r)
		if !ok {
			return false
		}
		cur = next
	}
	return d.States[cur].Accept.AtEOI
}

func findTrans(s State, r rune) (StateIdx, bool) {
	for _, t := range s.Trans {
		if t.Range.Lo <= r && r <= t.Range.Hi {
			return t.To, true
		}
	}
	return 0, false
}

func TestDeterminizeLiteral(t *testing.T) {
	d := build(t, "abc")
	if !run(d, "abc") {
		t.Fatalf("expected abc to match")
	}
	if run(d, "abd") {
		t.Fatalf("expected abd not to match")
	}
}

func TestDeterminizeAlternation(t *testing.T) {
	d := build(t, "cat|dog")
	if !run(d, "cat") || !run(d, "dog") {
		t.Fatalf("expected both alternatives to match")
	}
	if run(d, "cow") {
		t.Fatalf("expected cow not to match")
	}
}

func TestDeterminizeStar(t *testing.T) {
	d := build(t, "a*b")
	for _, s := range []string{"b", "ab", "aaab"} {
		if !run(d, s) {
			t.Fatalf("expected %q to match", s)
		}
	}
	if run(d, "aaa") {
		t.Fatalf("expected aaa not to match")
	}
}

func TestMinimizeReducesOrPreservesStateCount(t *testing.T) {
	d := build(t, "a(b|c)*d")
	m := Minimize(d)
	if len(m.States) > len(d.States) {
		t.Fatalf("minimize grew the DFA: %d -> %d", len(d.States), len(m.States))
	}
	for _, s := range []string{"ad", "abd", "acd", "abcbcd"} {
		if !run(m, s) {
			t.Fatalf("expected %q to match after minimization", s)
		}
	}
	if run(m, "a") || run(m, "d") {
		t.Fatalf("unexpected match after minimization")
	}
}

func TestReachableCoversAllStates(t *testing.T) {
	d := Minimize(build(t, "foo|bar"))
	reach := Reachable(d)
	if len(reach) != len(d.States) {
		t.Fatalf("expected every state reachable after minimization, got %d/%d", len(reach), len(d.States))
	}
}

func TestWordBoundaryDeterminizes(t *testing.T) {
	d := build(t, `\bfoo\b`)
	if !run(d, "foo") {
		t.Fatalf("expected foo to match \\bfoo\\b in isolation")
	}
}

func TestAnchors(t *testing.T) {
	d := build(t, `^abc$`)
	cur := d.InitAtStart
	for _, r := range "abc" {
		st := d.States[cur]
		next, ok := findTrans(st, r)
		if !ok {
			t.Fatalf("expected transition on %q", r)
		}
		cur = next
	}
	if !d.States[cur].Accept.AtEOI {
		t.Fatalf("expected ^abc$ to accept at EOI after consuming abc from InitAtStart")
	}
}
