package fulldfa

import (
	"errors"
	"fmt"

	"github.com/coregx/fulldfa/dfa"
)

// SyntaxError wraps a failure from regexp/syntax while parsing a
// pattern (spec.md §7's SyntaxError(msg)).
type SyntaxError struct {
	Pattern string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("fulldfa: invalid syntax in %q: %v", e.Pattern, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// InvalidAst wraps a failure to build an NFA from an otherwise
// successfully parsed AST — constructs the parser accepts but this
// engine does not support, such as back-references (spec.md §7).
type InvalidAst struct {
	Pattern string
	Err     error
}

func (e *InvalidAst) Error() string {
	return fmt.Sprintf("fulldfa: unsupported construct in %q: %v", e.Pattern, e.Err)
}

func (e *InvalidAst) Unwrap() error { return e.Err }

// TooBig reports that determinization would exceed the configured
// MaxDFAStates budget (spec.md §7, §4.3).
type TooBig struct {
	Pattern   string
	MaxStates int
}

func (e *TooBig) Error() string {
	return fmt.Sprintf("fulldfa: DFA for %q would exceed %d states", e.Pattern, e.MaxStates)
}

// errTooBig is the sentinel the rest of the package tests against with
// errors.Is, mirroring the teacher's sentinel-plus-wrapper idiom
// (nfa/error.go, dfa/lazy/error.go).
var errTooBig = errors.New("fulldfa: too big")

func (e *TooBig) Unwrap() error { return errTooBig }

// IsTooBig reports whether err (or any error it wraps) is a TooBig.
func IsTooBig(err error) bool {
	return errors.Is(err, errTooBig)
}

func tooBigFrom(pattern string, err error) error {
	var tb *dfa.TooBigError
	if errors.As(err, &tb) {
		return &TooBig{Pattern: pattern, MaxStates: tb.MaxStates}
	}
	return err
}
