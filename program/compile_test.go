package program

import (
	"regexp/syntax"
	"testing"

	"github.com/coregx/fulldfa/dfa"
	"github.com/coregx/fulldfa/nfa"
)

func buildProgram(t *testing.T, pattern string) *Program {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	n, err := nfa.FromSyntax(re)
	if err != nil {
		t.Fatalf("FromSyntax(%q): %v", pattern, err)
	}
	d, err := dfa.Determinize(n, 0)
	if err != nil {
		t.Fatalf("Determinize(%q): %v", pattern, err)
	}
	return Compile(dfa.Minimize(d))
}

func TestLiteralChainFusion(t *testing.T) {
	p := buildProgram(t, "hello")
	found := false
	for _, inst := range p.Insts {
		if inst.Op == OpLiteral && string(inst.Literal) == "hello" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a fused OpLiteral \"hello\", got:\n%s", p.Dump())
	}
}

func TestLoopWhileDetection(t *testing.T) {
	p := buildProgram(t, "[a-zA-Z0-9_]+x")
	found := false
	for _, inst := range p.Insts {
		if inst.Op == OpLoopWhile {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a common self-loop to compile to OpLoopWhile, got:\n%s", p.Dump())
	}
}

func TestDumpNonEmpty(t *testing.T) {
	p := buildProgram(t, "ab|cd")
	if p.Dump() == "" {
		t.Fatalf("expected non-empty dump")
	}
}
