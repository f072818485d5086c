package charset

import "sort"

// MultiMap allows duplicate and overlapping ranges, each tagged with a
// value. Group collapses it into a Map[[]V] over disjoint atoms, one of
// the two primitives (along with Refine) that determinization is built
// from: every NFA transition range, from every state in a subset, is
// pushed into a MultiMap tagged with its target NFA state, and Group
// turns the overlapping ranges into the disjoint character classes the
// DFA actually branches on.
type MultiMap[V any] struct {
	entries []entry[V]
}

// NewMultiMap returns an empty MultiMap.
func NewMultiMap[V any]() *MultiMap[V] {
	return &MultiMap[V]{}
}

// Push records that value v is associated with range r. Ranges may
// overlap and repeat.
func (m *MultiMap[V]) Push(r Range, v V) {
	if r.Lo > r.Hi {
		return
	}
	m.entries = append(m.entries, entry[V]{r, v})
}

// Len returns the number of (possibly overlapping) pushed entries.
func (m *MultiMap[V]) Len() int { return len(m.entries) }

// Group partitions the pushed ranges into disjoint atoms. Each atom is
// labeled with the slice of values whose original range covered it, in
// the order those values were pushed among entries touching the atom.
func (m *MultiMap[V]) Group() *Map[[]V] {
	out := NewMap[[]V]()
	if len(m.entries) == 0 {
		return out
	}

	endpoints := make([]rune, 0, len(m.entries)*2)
	for _, e := range m.entries {
		endpoints = append(endpoints, e.r.Lo, e.r.Hi+1)
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i] < endpoints[j] })
	endpoints = dedupeRunes(endpoints)

	for i := 0; i+1 < len(endpoints); i++ {
		lo, hi := endpoints[i], endpoints[i+1]-1
		if lo > hi {
			continue
		}
		var vals []V
		for _, e := range m.entries {
			if e.r.Lo <= lo && hi <= e.r.Hi {
				vals = append(vals, e.v)
			}
		}
		if len(vals) > 0 {
			out.Push(Range{lo, hi}, vals)
		}
	}
	out.Normalize(func(a, b []V) bool { return sliceEqualUnordered(a, b) })
	return out
}

func dedupeRunes(rs []rune) []rune {
	if len(rs) == 0 {
		return rs
	}
	out := rs[:1]
	for _, r := range rs[1:] {
		if r != out[len(out)-1] {
			out = append(out, r)
		}
	}
	return out
}

// sliceEqualUnordered is used only to decide whether two adjacent atoms
// in Group's output carry the same label set, so that Normalize can
// coalesce them; callers that need a stable comparator for other value
// types should compare the Map entries directly instead of relying on
// Group's Normalize call.
func sliceEqualUnordered[V any](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	// Group always builds a and b by repeating the same push order for
	// adjacent atoms sharing the same originating entries, so positional
	// comparison is sufficient here.
	for i := range a {
		if any(a[i]) != any(b[i]) {
			return false
		}
	}
	return true
}

// Refine partitions a bag of possibly-overlapping ranges into disjoint
// atoms without tracking which original range each atom came from —
// the value-free counterpart of Group, used wherever only the
// partitioning itself matters (e.g. merging several character classes
// before complementing them).
func Refine(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	// Tag each range with its own index so that Group only coalesces
	// neighbouring atoms covered by exactly the same input ranges.
	mm := NewMultiMap[int]()
	for i, r := range ranges {
		mm.Push(r, i)
	}
	grouped := mm.Group()
	out := make([]Range, grouped.Len())
	for i := range out {
		out[i] = grouped.Range(i)
	}
	return out
}
