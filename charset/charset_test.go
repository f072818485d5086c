package charset

import "testing"

func TestSetUnionIntersectComplement(t *testing.T) {
	a := SetFromRanges(Range{'a', 'f'}, Range{'m', 'z'})
	b := SetFromRanges(Range{'d', 'p'})

	union := a.Union(b)
	wantUnion := SetFromRanges(Range{'a', 'z'})
	if !union.Equal(wantUnion) {
		t.Fatalf("union = %v, want %v", union.Ranges(), wantUnion.Ranges())
	}

	inter := a.Intersect(b)
	wantInter := SetFromRanges(Range{'d', 'f'}, Range{'m', 'p'})
	if !inter.Equal(wantInter) {
		t.Fatalf("intersect = %v, want %v", inter.Ranges(), wantInter.Ranges())
	}

	comp := SetFromRanges(Range{'b', 'y'}).Complement()
	if comp.Contains('c') {
		t.Fatalf("complement should not contain 'c'")
	}
	if !comp.Contains('a') || !comp.Contains('z') {
		t.Fatalf("complement should contain 'a' and 'z'")
	}
}

func TestSetComplementExcludesSurrogates(t *testing.T) {
	comp := NewSet().Complement()
	if comp.Contains(0xD900) {
		t.Fatalf("complement of empty set must not contain a surrogate scalar")
	}
	if !comp.Contains(MaxScalar) {
		t.Fatalf("complement of empty set should contain MaxScalar")
	}
}

func TestMapNormalizeCoalesces(t *testing.T) {
	m := NewMap[int]()
	m.Push(Range{'a', 'c'}, 1)
	m.Push(Range{'d', 'f'}, 1)
	m.Push(Range{'x', 'z'}, 2)
	m.Normalize(func(a, b int) bool { return a == b })

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries after coalescing, got %d", m.Len())
	}
	r0, v0 := m.At(0)
	if r0 != (Range{'a', 'f'}) || v0 != 1 {
		t.Fatalf("entry 0 = %v/%v, want {a-f}/1", r0, v0)
	}
}

func TestMapGet(t *testing.T) {
	m := NewMap[string]()
	m.Push(Range{'0', '9'}, "digit")
	m.Push(Range{'a', 'z'}, "lower")
	m.Normalize(func(a, b string) bool { return a == b })

	if v, ok := m.Get('5'); !ok || v != "digit" {
		t.Fatalf("Get('5') = %v, %v", v, ok)
	}
	if _, ok := m.Get('!'); ok {
		t.Fatalf("Get('!') should miss")
	}
}

func TestRefineDisjoints(t *testing.T) {
	atoms := Refine([]Range{{'a', 'm'}, {'f', 'z'}, {'p', 'p'}})
	for i := 1; i < len(atoms); i++ {
		if atoms[i-1].Hi >= atoms[i].Lo {
			t.Fatalf("atoms not disjoint: %v then %v", atoms[i-1], atoms[i])
		}
	}
	total := 0
	for _, a := range atoms {
		total += a.Len()
	}
	if total != ('z' - 'a' + 1) {
		t.Fatalf("atoms should cover a-z exactly, total=%d", total)
	}
}

func TestMultiMapGroupLabels(t *testing.T) {
	mm := NewMultiMap[string]()
	mm.Push(Range{'a', 'm'}, "x")
	mm.Push(Range{'g', 'z'}, "y")

	grouped := mm.Group()
	// Expect three atoms: a-f (x only), g-m (x,y), n-z (y only)
	if grouped.Len() != 3 {
		t.Fatalf("expected 3 atoms, got %d: ", grouped.Len())
	}
	r, v := grouped.At(1)
	if r != (Range{'g', 'm'}) {
		t.Fatalf("middle atom = %v, want g-m", r)
	}
	if len(v) != 2 {
		t.Fatalf("middle atom should carry both labels, got %v", v)
	}
}
