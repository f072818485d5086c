package nfa

import (
	"fmt"
	"regexp/syntax"
	"unicode"
)

// maxRecursionDepth bounds the compiler's recursive descent over the
// syntax tree, mirroring the teacher's own guard against pathological
// nesting (nfa/compile.go's CompilerConfig.MaxRecursionDepth).
const maxRecursionDepth = 1000

// FromSyntax compiles a parsed *syntax.Regexp into a predicate-bearing
// NFA. Unlike the teacher, which walks byte-range UTF-8 expansions, this
// compiler stays at the Unicode scalar (rune) level throughout, since
// spec.md's character-range algebra (charset.Range) is defined over
// scalar values, not bytes; UTF-8 decoding happens once, in the runner,
// not duplicated across every NFA transition (see DESIGN.md).
func FromSyntax(re *syntax.Regexp) (*NFA, error) {
	b := NewBuilder()
	c := &fromSyntaxCompiler{b: b}
	frag, err := c.compile(re, 0)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return b.Finish(frag), nil
}

type fromSyntaxCompiler struct {
	b *Builder
}

type unsupportedOpError struct {
	op syntax.Op
}

func (e *unsupportedOpError) Error() string {
	return fmt.Sprintf("nfa: unsupported regex operation %v", e.op)
}

func (c *fromSyntaxCompiler) compile(re *syntax.Regexp, depth int) (Frag, error) {
	depth++
	if depth > maxRecursionDepth {
		return Frag{}, &unsupportedOpError{op: re.Op}
	}

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.b.Range(0, maxScalar), nil
	case syntax.OpAnyCharNotNL:
		return c.compileAnyCharNotNL()
	case syntax.OpEmptyMatch:
		return c.b.Empty(), nil
	case syntax.OpBeginText:
		return c.b.Look(LookBeginText), nil
	case syntax.OpEndText:
		return c.b.Look(LookEndText), nil
	case syntax.OpBeginLine:
		return c.b.Look(LookBeginLine), nil
	case syntax.OpEndLine:
		return c.b.Look(LookEndLine), nil
	case syntax.OpWordBoundary:
		return c.b.Look(LookWordBoundary), nil
	case syntax.OpNoWordBoundary:
		return c.b.Look(LookNoWordBoundary), nil
	case syntax.OpCapture:
		return c.compile(re.Sub[0], depth)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub, depth)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub, depth)
	case syntax.OpStar:
		f, err := c.compile(re.Sub[0], depth)
		if err != nil {
			return Frag{}, err
		}
		return c.b.Star(f), nil
	case syntax.OpPlus:
		f, err := c.compile(re.Sub[0], depth)
		if err != nil {
			return Frag{}, err
		}
		return c.b.Plus(f), nil
	case syntax.OpQuest:
		f, err := c.compile(re.Sub[0], depth)
		if err != nil {
			return Frag{}, err
		}
		return c.b.Quest(f), nil
	case syntax.OpRepeat:
		return c.compileRepeat(re, depth)
	default:
		return Frag{}, &unsupportedOpError{op: re.Op}
	}
}

const maxScalar = 0x10FFFF

func (c *fromSyntaxCompiler) compileAnyCharNotNL() (Frag, error) {
	return c.b.Sparse([][2]rune{
		{0, '\n' - 1},
		{'\n' + 1, maxScalar},
	}), nil
}

func (c *fromSyntaxCompiler) compileConcat(subs []*syntax.Regexp, depth int) (Frag, error) {
	if len(subs) == 0 {
		return c.b.Empty(), nil
	}
	acc, err := c.compile(subs[0], depth)
	if err != nil {
		return Frag{}, err
	}
	for _, sub := range subs[1:] {
		f, err := c.compile(sub, depth)
		if err != nil {
			return Frag{}, err
		}
		acc = c.b.Concat(acc, f)
	}
	return acc, nil
}

func (c *fromSyntaxCompiler) compileAlternate(subs []*syntax.Regexp, depth int) (Frag, error) {
	if len(subs) == 0 {
		return c.b.Empty(), nil
	}
	acc, err := c.compile(subs[0], depth)
	if err != nil {
		return Frag{}, err
	}
	for _, sub := range subs[1:] {
		f, err := c.compile(sub, depth)
		if err != nil {
			return Frag{}, err
		}
		acc = c.b.Alternate(acc, f)
	}
	return acc, nil
}

// compileRepeat expands {min,max} by unrolling: min mandatory copies
// followed by (max-min) optional copies, or a trailing Star when max is
// unbounded. This mirrors how the teacher's compileRepeat unrolls
// bounded repetition rather than building a counter into the automaton
// (nfa/compile.go compileRepeat).
func (c *fromSyntaxCompiler) compileRepeat(re *syntax.Regexp, depth int) (Frag, error) {
	sub := re.Sub[0]
	min, max := re.Min, re.Max

	var acc Frag
	have := false
	for i := 0; i < min; i++ {
		f, err := c.compile(sub, depth)
		if err != nil {
			return Frag{}, err
		}
		if !have {
			acc, have = f, true
		} else {
			acc = c.b.Concat(acc, f)
		}
	}

	if max == -1 {
		f, err := c.compile(sub, depth)
		if err != nil {
			return Frag{}, err
		}
		star := c.b.Star(f)
		if !have {
			return star, nil
		}
		return c.b.Concat(acc, star), nil
	}

	for i := min; i < max; i++ {
		f, err := c.compile(sub, depth)
		if err != nil {
			return Frag{}, err
		}
		opt := c.b.Quest(f)
		if !have {
			acc, have = opt, true
		} else {
			acc = c.b.Concat(acc, opt)
		}
	}

	if !have {
		return c.b.Empty(), nil
	}
	return acc, nil
}

// compileLiteral compiles a run of literal runes, expanding case folding
// via unicode.SimpleFold when syntax.FoldCase is set — defensively, since
// not every literal survives parsing as a pre-folded character class.
func (c *fromSyntaxCompiler) compileLiteral(re *syntax.Regexp) (Frag, error) {
	if len(re.Rune) == 0 {
		return c.b.Empty(), nil
	}
	fold := re.Flags&syntax.FoldCase != 0

	var acc Frag
	have := false
	for _, r := range re.Rune {
		f := c.compileFoldedRune(r, fold)
		if !have {
			acc, have = f, true
		} else {
			acc = c.b.Concat(acc, f)
		}
	}
	return acc, nil
}

func (c *fromSyntaxCompiler) compileFoldedRune(r rune, fold bool) Frag {
	if !fold {
		return c.b.Range(r, r)
	}
	orbit := foldOrbit(r)
	if len(orbit) == 1 {
		return c.b.Range(r, r)
	}
	ranges := make([][2]rune, len(orbit))
	for i, o := range orbit {
		ranges[i] = [2]rune{o, o}
	}
	return c.b.Sparse(ranges)
}

// foldOrbit returns every rune that case-folds to the same equivalence
// class as r, starting with r itself and then in unicode.SimpleFold
// order (not sorted).
func foldOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}

// compileCharClass compiles an already-range-form character class
// (regexp/syntax pairs consecutive entries as [lo, hi]).
func (c *fromSyntaxCompiler) compileCharClass(runes []rune) (Frag, error) {
	if len(runes) == 0 {
		// Matches nothing: an empty Sparse with no transitions.
		return c.b.Sparse(nil), nil
	}
	ranges := make([][2]rune, 0, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		ranges = append(ranges, [2]rune{runes[i], runes[i+1]})
	}
	return c.b.Sparse(ranges), nil
}
