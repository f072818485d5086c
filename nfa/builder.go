package nfa

// Builder incrementally assembles an NFA using Thompson's construction:
// each syntax node compiles to a Frag with a known start and a list of
// dangling "out" pointers patched to the next fragment's start once it's
// known. This mirrors the teacher's own incremental nfa builder (one
// state at a time, forward references patched after the fact) generalized
// to also emit StateLook nodes for predicates.
type Builder struct {
	states []State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// patchSlot identifies which field of a state a pending patch targets.
type patchSlot uint8

const (
	slotNext patchSlot = iota
	slotLeft
	slotRight
)

type patch struct {
	id   StateID
	slot patchSlot
}

// Frag is a partially-built sub-NFA: entry point Start, and a list of
// dangling exits (Out) to be patched to whatever follows.
type Frag struct {
	Start StateID
	Out   []patch
}

func (b *Builder) alloc(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// Range compiles a single-range consuming fragment [lo, hi].
func (b *Builder) Range(lo, hi rune) Frag {
	id := b.alloc(State{kind: StateRange, lo: lo, hi: hi, next: InvalidState})
	return Frag{Start: id, Out: []patch{{id, slotNext}}}
}

// Sparse compiles a character-class fragment from a set of (lo, hi)
// ranges, all of which lead to the same dangling exit.
func (b *Builder) Sparse(ranges [][2]rune) Frag {
	trans := make([]Transition, len(ranges))
	for i, r := range ranges {
		trans[i] = Transition{Lo: r[0], Hi: r[1], Next: InvalidState}
	}
	id := b.alloc(State{kind: StateSparse, trans: trans})
	// A single patch slot can't fan out to N transitions, so Sparse gets
	// its own patch bookkeeping: patchSparse below handles it via a
	// dedicated out-list entry per transition index, using slotNext on a
	// synthetic per-transition id is unnecessary since all transitions of
	// one class share a target in this builder's usage (always compiled
	// from a single class op) — patch every transition uniformly.
	return Frag{Start: id, Out: []patch{{id, slotSparseAll}}}
}

const slotSparseAll patchSlot = 99

// Look compiles a zero-width assertion fragment.
func (b *Builder) Look(look Look) Frag {
	id := b.alloc(State{kind: StateLook, look: look, next: InvalidState})
	return Frag{Start: id, Out: []patch{{id, slotNext}}}
}

// Empty compiles a fragment that matches the empty string (a single
// pass-through epsilon).
func (b *Builder) Empty() Frag {
	id := b.alloc(State{kind: StateEpsilon, next: InvalidState})
	return Frag{Start: id, Out: []patch{{id, slotNext}}}
}

// Concat sequences a then c: a's dangling exits are patched to c's start.
func (b *Builder) Concat(a, c Frag) Frag {
	b.patchAll(a.Out, c.Start)
	return Frag{Start: a.Start, Out: c.Out}
}

// Alternate compiles a|b as an immediate split (no patch needed, both
// starts are already known).
func (b *Builder) Alternate(a, c Frag) Frag {
	id := b.alloc(State{kind: StateSplit, left: a.Start, right: c.Start})
	out := make([]patch, 0, len(a.Out)+len(c.Out))
	out = append(out, a.Out...)
	out = append(out, c.Out...)
	return Frag{Start: id, Out: out}
}

// Star compiles e* (greedy): loop back into the body, with a dangling
// exit for "skip the body entirely" / "stop looping".
func (b *Builder) Star(e Frag) Frag {
	split := b.alloc(State{kind: StateSplit, left: e.Start, right: InvalidState})
	b.patchAll(e.Out, split)
	return Frag{Start: split, Out: []patch{{split, slotRight}}}
}

// Plus compiles e+ (greedy): body runs once, then loops.
func (b *Builder) Plus(e Frag) Frag {
	split := b.alloc(State{kind: StateSplit, left: e.Start, right: InvalidState})
	b.patchAll(e.Out, split)
	return Frag{Start: e.Start, Out: []patch{{split, slotRight}}}
}

// Quest compiles e? (greedy): either the body, or skip.
func (b *Builder) Quest(e Frag) Frag {
	split := b.alloc(State{kind: StateSplit, left: e.Start, right: InvalidState})
	out := make([]patch, 0, len(e.Out)+1)
	out = append(out, e.Out...)
	out = append(out, patch{split, slotRight})
	return Frag{Start: split, Out: out}
}

// patchAll resolves every dangling exit in pl to target, including the
// synthetic "all transitions of a Sparse state" slot.
func (b *Builder) patchAll(pl []patch, target StateID) {
	for _, p := range pl {
		switch p.slot {
		case slotNext:
			b.states[p.id].next = target
		case slotLeft:
			b.states[p.id].left = target
		case slotRight:
			b.states[p.id].right = target
		case slotSparseAll:
			trans := b.states[p.id].trans
			for i := range trans {
				trans[i].Next = target
			}
		}
	}
}

// Finish patches frag's dangling exits to a fresh Match state and
// returns the completed NFA rooted at frag.Start.
func (b *Builder) Finish(frag Frag) *NFA {
	match := b.alloc(State{kind: StateMatch})
	b.patchAll(frag.Out, match)
	return &NFA{states: b.states, start: frag.Start}
}
