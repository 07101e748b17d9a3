package nfa

import (
	"github.com/thaumasiotes/regexp/syntax"
)

// Compile maps a syntax tree to its Thompson NFA.
//
// Compilation is total: every tree the parser accepts yields a valid
// automaton, so there is no error return. Each node kind becomes a
// fragment with one entry and one exit; the exit is an epsilon state with
// no outgoing transition until composition patches it, which keeps every
// composition rule a single Patch call.
func Compile(re *syntax.Regexp) *NFA {
	c := &compiler{builder: NewBuilderWithCapacity(treeStates(re))}
	f := c.compile(re)
	match := c.builder.AddMatch()
	c.builder.Patch(f.exit, match)
	c.builder.SetStart(f.entry)
	return c.builder.mustBuild()
}

// frag is a Thompson fragment: an entry state and an exit state. The exit
// is always an epsilon state whose target is still unset.
type frag struct {
	entry, exit StateID
}

type compiler struct {
	builder *Builder
}

func (c *compiler) compile(re *syntax.Regexp) frag {
	switch re.Op {
	case syntax.OpEmpty:
		return c.compileEmpty()
	case syntax.OpLiteral:
		return c.compileLiteral(re.Char)
	case syntax.OpCharClass:
		return c.compileClass(re.Class)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub[0], re.Sub[1])
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub[0], re.Sub[1])
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	default:
		panic("nfa: unknown syntax tree node " + re.Op.String())
	}
}

// compileEmpty yields a fragment whose entry and exit are the same
// epsilon state: it matches the zero-length string.
func (c *compiler) compileEmpty() frag {
	id := c.builder.AddEpsilon(InvalidState)
	return frag{entry: id, exit: id}
}

// compileLiteral: entry and exit joined by one transition labeled b.
func (c *compiler) compileLiteral(b byte) frag {
	exit := c.builder.AddEpsilon(InvalidState)
	entry := c.builder.AddByte(b, exit)
	return frag{entry: entry, exit: exit}
}

// compileClass: entry and exit joined by one transition per member, all
// in parallel. Equivalent to an alternation over literals, built directly.
func (c *compiler) compileClass(class []byte) frag {
	exit := c.builder.AddEpsilon(InvalidState)
	entry := c.builder.AddClass(class, exit)
	return frag{entry: entry, exit: exit}
}

// compileConcat joins the left fragment's exit to the right fragment's
// entry with an epsilon transition.
func (c *compiler) compileConcat(left, right *syntax.Regexp) frag {
	fl := c.compile(left)
	fr := c.compile(right)
	c.builder.Patch(fl.exit, fr.entry)
	return frag{entry: fl.entry, exit: fr.exit}
}

// compileAlternate: a new entry splits to both branch entries; both
// branch exits converge on a new exit.
func (c *compiler) compileAlternate(left, right *syntax.Regexp) frag {
	fl := c.compile(left)
	fr := c.compile(right)
	exit := c.builder.AddEpsilon(InvalidState)
	entry := c.builder.AddSplit(fl.entry, fr.entry)
	c.builder.Patch(fl.exit, exit)
	c.builder.Patch(fr.exit, exit)
	return frag{entry: entry, exit: exit}
}

// compileStar: a new entry splits between the inner fragment (one more
// occurrence) and a new exit (zero occurrences); the inner exit loops
// back to the entry, which also provides the stop path after one or more
// occurrences.
func (c *compiler) compileStar(sub *syntax.Regexp) frag {
	fs := c.compile(sub)
	exit := c.builder.AddEpsilon(InvalidState)
	entry := c.builder.AddSplit(fs.entry, exit)
	c.builder.Patch(fs.exit, entry)
	return frag{entry: entry, exit: exit}
}

// treeStates estimates the arena size for a tree so the builder rarely
// reallocates: every node contributes at most two fresh states, plus the
// final match state.
func treeStates(re *syntax.Regexp) int {
	n := 2
	for _, sub := range re.Sub {
		n += treeStates(sub)
	}
	return n + 1
}
