// Package fulldfa provides a regex search engine whose match phase is
// driven entirely by a fully-materialized, minimized DFA compiled
// ahead of time from the pattern — never by on-demand NFA simulation.
//
// Construction pipeline: regexp/syntax parses the pattern into an AST,
// nfa.FromSyntax builds a predicate-bearing NFA, dfa.Determinize
// eliminates zero-width predicates into a multi-initial-state DFA,
// dfa.Minimize collapses it to its canonical form, and program.Compile
// flattens it into a linear instruction stream that runner.Runner
// interprets against an input slice.
//
// The engine reports the shortest match's byte span, not the
// leftmost-longest one stdlib regexp reports, and does not support
// capture groups or replacement (see Non-goals below).
//
// Basic usage:
//
//	p, err := fulldfa.FromRegex(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	start, end, ok := p.ShortestMatch([]byte("room 204"))
//	if ok {
//	    fmt.Println(string([]byte("room 204")[start:end])) // "2"
//	}
//
// Non-goals: no capture groups, no leftmost-longest matching, no
// replace, no back-references. Unicode is supported at the code-point
// level; there is no locale-dependent case folding. Input is assumed to
// be well-formed UTF-8.
package fulldfa

import (
	"regexp/syntax"

	"github.com/coregx/fulldfa/dfa"
	"github.com/coregx/fulldfa/nfa"
	"github.com/coregx/fulldfa/program"
	"github.com/coregx/fulldfa/runner"
)

// syntaxFlags mirrors the teacher's choice of Perl-compatible syntax
// (regex.go uses syntax.Perl implicitly via its parser wrapper); capture
// groups parse but are never reported, matching spec.md §6.
const syntaxFlags = syntax.Perl

// Program is a compiled pattern, ready to search byte slices.
//
// A Program holds no mutable state once constructed and is safe to use
// concurrently from multiple goroutines (mirroring the teacher's
// Regex/meta.Engine concurrency contract).
type Program struct {
	pattern string
	run     *runner.Runner
	stats   dfa.Stats
}

// FromRegex compiles pattern into a Program with no limit on the
// number of DFA states produced during determinization.
//
// Example:
//
//	p, err := fulldfa.FromRegex(`\bfoo\b`)
func FromRegex(pattern string) (*Program, error) {
	return FromRegexBounded(pattern, DefaultConfig())
}

// FromRegexBounded compiles pattern into a Program, aborting with
// TooBig if determinization would exceed cfg.MaxDFAStates. Pass
// MaxDFAStates == 0 for an unbounded budget.
//
// Example:
//
//	cfg := fulldfa.DefaultConfig()
//	cfg.MaxDFAStates = 1000
//	p, err := fulldfa.FromRegexBounded(`(a|b)*c`, cfg)
func FromRegexBounded(pattern string, cfg Config) (*Program, error) {
	re, err := syntax.Parse(pattern, syntaxFlags)
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}

	n, err := nfa.FromSyntax(re)
	if err != nil {
		return nil, &InvalidAst{Pattern: pattern, Err: err}
	}

	d, err := dfa.Determinize(n, cfg.MaxDFAStates)
	if err != nil {
		return nil, tooBigFrom(pattern, err)
	}
	d = dfa.Minimize(d)

	prog := program.Compile(d)
	return &Program{
		pattern: pattern,
		run:     runner.New(prog),
		stats:   d.Stats(),
	}, nil
}

// MustCompile is like FromRegex but panics on error, for patterns
// known to be valid at init time.
func MustCompile(pattern string) *Program {
	p, err := FromRegex(pattern)
	if err != nil {
		panic("fulldfa: FromRegex(" + pattern + "): " + err.Error())
	}
	return p
}

// ShortestMatch returns the byte offsets of the shortest match in b,
// scanning left to right (spec.md §4.6). The second return reports
// whether a match was found.
func (p *Program) ShortestMatch(b []byte) (start, end int, ok bool) {
	return p.run.Find(b)
}

// IsMatch reports whether b contains any match of the pattern.
func (p *Program) IsMatch(b []byte) bool {
	return p.run.IsMatch(b)
}

// Stats reports the size of the minimized DFA this Program was
// compiled from (SPEC_FULL.md §4, item 3).
func (p *Program) Stats() dfa.Stats {
	return p.stats
}

// String returns the source pattern the Program was compiled from.
func (p *Program) String() string {
	return p.pattern
}
