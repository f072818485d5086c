package fulldfa

import (
	"sync"
	"testing"
)

// scenario encodes one row of spec.md §8's concrete scenario table.
type scenario struct {
	name    string
	pattern string
	input   string
	want    [2]int
	wantOk  bool
}

var scenarios = []scenario{
	{"S1", `\btest\b`, "This is a test.", [2]int{10, 14}, true},
	{"S2", `(?m)^A line.$`, "Line 1\nA line.\nLine 2\n", [2]int{7, 14}, true},
	{"S3", `^A line.$`, "Line 1\nA line.\nLine 2\n", [2]int{0, 0}, false},
	{"S4", `a.b`, "a\nb", [2]int{0, 0}, false},
	{"S5", `(?s)a.b`, "a\nb", [2]int{0, 3}, true},
	{"S6", `(a*ba*ba*)*$`, "aaaaaba", [2]int{6, 7}, true},
	{"S8", `\b\btest\b\b`, "test", [2]int{0, 4}, true},
	{"S9", `(.*)c(.*)`, "abcde", [2]int{0, 3}, true},
}

// TestWordBoundaryUnicode mirrors the original jneem/automaton source's
// test_word_boundary (src/dfa.rs): \b must fire around a non-ASCII
// (Hebrew) word, not just ASCII ones, since \b is defined over
// nfa.IsWordRune's Unicode letter/number classes rather than RE2's
// ASCII-only [0-9A-Za-z_].
func TestWordBoundaryUnicode(t *testing.T) {
	p, err := FromRegex(`\bהחומוס\b`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	start, end, ok := p.ShortestMatch([]byte("למי יש את החומוס הכי טוב בארץ?"))
	if !ok || start != 17 || end != 29 {
		t.Fatalf("ShortestMatch = (%d, %d, %v), want (17, 29, true)", start, end, ok)
	}
}

func TestScenarios(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			p, err := FromRegex(sc.pattern)
			if err != nil {
				t.Fatalf("FromRegex(%q): %v", sc.pattern, err)
			}
			start, end, ok := p.ShortestMatch([]byte(sc.input))
			if ok != sc.wantOk {
				t.Fatalf("ShortestMatch(%q, %q) ok = %v, want %v", sc.pattern, sc.input, ok, sc.wantOk)
			}
			if ok && (start != sc.want[0] || end != sc.want[1]) {
				t.Fatalf("ShortestMatch(%q, %q) = (%d, %d), want (%d, %d)",
					sc.pattern, sc.input, start, end, sc.want[0], sc.want[1])
			}
		})
	}
}

// S7: [cgt]gggtaaa|tttaccc[acg] minimizes to exactly 16 states.
func TestScenarioS7MinimizedStateCount(t *testing.T) {
	p, err := FromRegex(`[cgt]gggtaaa|tttaccc[acg]`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	if got := p.Stats().NumStates; got != 16 {
		t.Fatalf("minimized DFA has %d states, want 16", got)
	}
}

func TestUniversalDeterminism(t *testing.T) {
	p, err := FromRegex(`[a-z]+@[a-z]+\.[a-z]+`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	input := []byte("contact me at user@example.com please")
	s1, e1, ok1 := p.ShortestMatch(input)
	s2, e2, ok2 := p.ShortestMatch(input)
	if s1 != s2 || e1 != e2 || ok1 != ok2 {
		t.Fatalf("repeated ShortestMatch calls disagreed: (%d,%d,%v) vs (%d,%d,%v)", s1, e1, ok1, s2, e2, ok2)
	}
}

func TestUniversalThreadSafety(t *testing.T) {
	p, err := FromRegex(`\d+`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	inputs := []string{"abc123", "no digits", "42 is the answer", "", "999999999"}
	want := make([][3]int, len(inputs))
	for i, in := range inputs {
		s, e, ok := p.ShortestMatch([]byte(in))
		okInt := 0
		if ok {
			okInt = 1
		}
		want[i] = [3]int{s, e, okInt}
	}

	var wg sync.WaitGroup
	for round := 0; round < 8; round++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				s, e, ok := p.ShortestMatch([]byte(in))
				okInt := 0
				if ok {
					okInt = 1
				}
				if got := [3]int{s, e, okInt}; got != want[i] {
					t.Errorf("concurrent ShortestMatch(%q) = %v, want %v", in, got, want[i])
				}
			}(i, in)
		}
	}
	wg.Wait()
}

func TestUniversalBudgetEnforcement(t *testing.T) {
	cfg := Config{MaxDFAStates: 1}
	_, err := FromRegexBounded(`[cgt]gggtaaa|tttaccc[acg]`, cfg)
	if err == nil {
		t.Fatalf("expected TooBig error for a 1-state budget")
	}
	if !IsTooBig(err) {
		t.Fatalf("expected IsTooBig(err) to hold, got %v", err)
	}

	p, err := FromRegexBounded(`[cgt]gggtaaa|tttaccc[acg]`, Config{MaxDFAStates: 10000})
	if err != nil {
		t.Fatalf("expected a generous budget to succeed: %v", err)
	}
	if p.Stats().NumStates != 16 {
		t.Fatalf("expected 16 states under a generous budget, got %d", p.Stats().NumStates)
	}
}

func TestEmptyRegexMatchesEverywhere(t *testing.T) {
	p, err := FromRegex(``)
	if err != nil {
		t.Fatalf("FromRegex(\"\"): %v", err)
	}
	start, end, ok := p.ShortestMatch([]byte("anything"))
	if !ok || start != 0 || end != 0 {
		t.Fatalf("ShortestMatch = (%d,%d,%v), want (0,0,true)", start, end, ok)
	}
}

func TestContradictoryPredicateMatchesNothing(t *testing.T) {
	p, err := FromRegex(`\b\Ba`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	if p.IsMatch([]byte("a bunch of words with a in them")) {
		t.Fatalf("expected a contradictory boundary pattern to match nothing")
	}
}

func TestUnicodeClassAdvancesByScalar(t *testing.T) {
	p, err := FromRegex(`\pL`)
	if err != nil {
		t.Fatalf("FromRegex: %v", err)
	}
	start, end, ok := p.ShortestMatch([]byte("日本語"))
	if !ok {
		t.Fatalf("expected a match")
	}
	if got := "日本語"[start:end]; got != "日" {
		t.Fatalf("matched %q, want a single scalar %q", got, "日")
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := FromRegex(`(unterminated`)
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected a *SyntaxError, got %T: %v", err, err)
	}
}

func TestMustCompilePanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustCompile to panic on an invalid pattern")
		}
	}()
	MustCompile(`(unterminated`)
}
