package syntax

import "strings"

// Op identifies the kind of a syntax tree node.
type Op uint8

const (
	// OpEmpty matches the zero-length string. It appears as the branch of
	// an alternation with an empty side, e.g. the pattern "a|".
	OpEmpty Op = iota

	// OpLiteral matches exactly one occurrence of Char.
	OpLiteral

	// OpCharClass matches exactly one occurrence of any byte in Class.
	OpCharClass

	// OpConcat matches Sub[0] immediately followed by Sub[1].
	OpConcat

	// OpAlternate matches Sub[0] or Sub[1].
	OpAlternate

	// OpStar matches zero or more consecutive occurrences of Sub[0].
	OpStar
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpLiteral:
		return "Literal"
	case OpCharClass:
		return "CharClass"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpStar:
		return "Star"
	default:
		return "Unknown"
	}
}

// Regexp is a node in a parsed pattern's syntax tree.
//
// The tree is immutable once Parse returns it. Which fields are meaningful
// depends on Op: Char for OpLiteral, Class for OpCharClass, Sub for the
// composite kinds (two children for OpConcat and OpAlternate, one for
// OpStar).
type Regexp struct {
	Op    Op
	Char  byte      // OpLiteral: the byte to match
	Class []byte    // OpCharClass: members, sorted ascending, no duplicates
	Sub   []*Regexp // children of composite nodes
}

// String reconstructs a pattern denoting the same language as the tree.
// Reserved bytes inside a class body are emitted as-is except ']', which
// is re-escaped as "/]".
func (re *Regexp) String() string {
	var b strings.Builder
	re.writeTo(&b, false)
	return b.String()
}

// writeTo appends the pattern text for re to b. parens forces grouping
// around alternations so that operator precedence survives the round trip.
func (re *Regexp) writeTo(b *strings.Builder, parens bool) {
	switch re.Op {
	case OpEmpty:
		// zero-length: nothing to write
	case OpLiteral:
		b.WriteByte(re.Char)
	case OpCharClass:
		b.WriteByte('[')
		for _, c := range re.Class {
			if c == ']' {
				b.WriteString("/]")
			} else {
				b.WriteByte(c)
			}
		}
		b.WriteByte(']')
	case OpConcat:
		re.Sub[0].writeTo(b, true)
		re.Sub[1].writeTo(b, true)
	case OpAlternate:
		if parens {
			b.WriteByte('(')
		}
		re.Sub[0].writeTo(b, true)
		b.WriteByte('|')
		re.Sub[1].writeTo(b, true)
		if parens {
			b.WriteByte(')')
		}
	case OpStar:
		sub := re.Sub[0]
		if sub.Op == OpConcat || sub.Op == OpAlternate {
			b.WriteByte('(')
			sub.writeTo(b, false)
			b.WriteByte(')')
		} else {
			sub.writeTo(b, true)
		}
		b.WriteByte('*')
	}
}
