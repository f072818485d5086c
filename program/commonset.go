package program

import (
	"github.com/coregx/fulldfa/asciiset"
	"github.com/coregx/fulldfa/charset"
)

var asciiUniverse = charset.SetFromRanges(charset.Range{Lo: 0, Hi: 127})

var nonASCIIUniverse = charset.All().Intersect(charset.SetFromRanges(
	charset.Range{Lo: 128, Hi: charset.MaxScalar},
))

// commonOverlapThreshold is the spec.md §4.5 qualification bar: a
// self-loop range must cover at least this many of the 62 common code
// points (asciiset.Common) to be worth lowering to a byte-level
// LoopWhile.
const commonOverlapThreshold = 46

// asciiRuneSetToByteSet converts a charset.Set known to lie entirely
// within [0, 127] into the byte-level asciiset.Set the LoopWhile
// instruction operand is built from.
func asciiRuneSetToByteSet(rs *charset.Set) asciiset.Set {
	var s asciiset.Set
	for i := 0; i < rs.Len(); i++ {
		r := rs.Range(i)
		for b := r.Lo; b <= r.Hi; b++ {
			s.Insert(byte(b))
		}
	}
	return s
}

// qualifiesForLoopWhile reports whether rs is a good candidate for
// byte-level LoopWhile compilation. It must cover enough of
// asciiset.Common, and its non-ASCII portion (if any) must be either
// empty or exactly the full non-ASCII scalar space: LoopWhile tests the
// input one byte at a time, not one rune, and every byte of a multi-byte
// UTF-8 sequence has its high bit set, so "high bit set" only soundly
// implies "rune is in rs" when rs accepts every non-ASCII scalar
// wholesale.
func qualifiesForLoopWhile(rs *charset.Set) bool {
	ascii := rs.Intersect(asciiUniverse)
	if asciiset.CommonOverlap(asciiRuneSetToByteSet(ascii)) < commonOverlapThreshold {
		return false
	}
	nonASCII := rs.Intersect(nonASCIIUniverse)
	return nonASCII.IsEmpty() || nonASCII.Equal(nonASCIIUniverse)
}
