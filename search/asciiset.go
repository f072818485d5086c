package search

import "github.com/coregx/fulldfa/asciiset"

// AsciiSetSearcher scans for the next byte that is a member of Set,
// used when the program's entry instruction is a small branch over an
// ASCII-only character class.
type AsciiSetSearcher struct {
	Set asciiset.Extended
}

func (s AsciiSetSearcher) Next(b []byte, from int) (int, bool) {
	for i := from; i < len(b); i++ {
		if s.Set.ContainsByte(b[i]) {
			return i, true
		}
	}
	return -1, false
}
