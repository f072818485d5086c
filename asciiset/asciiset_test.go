package asciiset

import "testing"

func TestSetInsertContains(t *testing.T) {
	var s Set
	s.Insert('a')
	s.Insert('Z')
	s.Insert(200) // out of range, ignored

	if !s.Contains('a') || !s.Contains('Z') {
		t.Fatalf("expected a and Z to be members")
	}
	if s.Contains('b') {
		t.Fatalf("b should not be a member")
	}
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
}

func TestExtendedContainsByte(t *testing.T) {
	var s Set
	s.Insert('x')
	e := Extended{ASCII: s, ContainsNonASCII: true}

	if !e.ContainsByte('x') {
		t.Fatalf("expected 'x' to be a member")
	}
	if e.ContainsByte('y') {
		t.Fatalf("'y' should not be a member")
	}
	if !e.ContainsByte(0xC3) {
		t.Fatalf("non-ASCII lead byte should be a member when ContainsNonASCII is set")
	}
}

func TestCommonSetHas62CodePoints(t *testing.T) {
	if Common.Count() != 62 {
		t.Fatalf("Common.Count() = %d, want 62", Common.Count())
	}
}

func TestCommonOverlapThreshold(t *testing.T) {
	var digits Set
	for b := byte('0'); b <= '9'; b++ {
		digits.Insert(b)
	}
	if got := CommonOverlap(digits); got != 10 {
		t.Fatalf("CommonOverlap(digits) = %d, want 10", got)
	}
}
