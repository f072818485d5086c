package search

import "github.com/coregx/fulldfa/asciiset"

// LoopWhileComplementSearcher scans for the next byte NOT in Set,
// reporting from itself when every remaining byte is in Set. It fits an
// entry instruction that is an OpLoopWhile: every byte covered by the
// loop set is consumed for free once matching starts, so the only bytes
// worth treating as distinguished candidates are the ones the loop would
// immediately reject. runner's pickSearcher does not select it (see
// runner/fast.go).
type LoopWhileComplementSearcher struct {
	Set asciiset.Extended
}

func (s LoopWhileComplementSearcher) Next(b []byte, from int) (int, bool) {
	for i := from; i < len(b); i++ {
		if !s.Set.ContainsByte(b[i]) {
			return i, true
		}
	}
	if from <= len(b) {
		return from, true
	}
	return -1, false
}
