package runner

import "unicode/utf8"

// entryState resolves the program counter a match attempt starting at
// byte offset at should begin from. A pattern whose leading predicates
// (\A, ^, \b, \B, ...) are sensitive to what precedes the attempt needs
// this resolved per-candidate; a uniform-entry program always lands on
// the same instruction here regardless of at, so this also doubles as
// the "slow runner" path mentioned in spec.md §4.6 — there is no
// separate interpreter loop, only a different entry lookup.
func (r *Runner) entryState(b []byte, at int) int {
	if r.uniform {
		return r.prog.InitOtherwise
	}
	if at == 0 {
		return r.prog.InitAtStart
	}
	prev, _ := utf8.DecodeLastRune(b[:at])
	if pc, ok := r.prog.InitAfterChar.Get(prev); ok {
		return pc
	}
	return r.prog.InitOtherwise
}
