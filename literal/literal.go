// Package literal extracts literal byte sequences from syntax trees.
//
// A pattern without closures denotes a finite language, so its full set
// of member strings can be enumerated. The search engine uses such a set
// to answer substring queries with plain multi-literal search instead of
// simulating the automaton.
package literal

import (
	"bytes"
	"sort"

	"github.com/thaumasiotes/regexp/syntax"
)

// Literal is one concrete byte string a pattern can match.
type Literal struct {
	Bytes []byte
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

// Seq is a set of alternative literals. A Seq produced by Extract is
// exact: the pattern matches a string iff the string equals one of the
// members.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether the zero-length string is a member.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	for _, l := range s.literals {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Minimize removes duplicates and any literal that has another member as
// a prefix. For substring search this preserves the answer: text
// containing the longer literal necessarily contains the shorter prefix.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.Slice(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cand := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cand.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cand)
		}
	}
	s.literals = kept
}

// Extraction limits. A class of n members multiplies the member count by
// n, so finite patterns can still enumerate to something enormous; past
// these bounds the automaton is the better engine anyway.
const (
	maxLiterals     = 64
	maxLiteralBytes = 1024
)

// Extract enumerates the language of re when it is finite and small.
// Returns nil when the pattern contains a closure, or when the
// enumeration would exceed the extraction limits.
func Extract(re *syntax.Regexp) *Seq {
	strs, ok := enumerate(re)
	if !ok {
		return nil
	}
	lits := make([]Literal, len(strs))
	for i, b := range strs {
		lits[i] = Literal{Bytes: b}
	}
	return NewSeq(lits...)
}

// enumerate returns every member string of re's language, or ok=false
// when the language is infinite or over the limits.
func enumerate(re *syntax.Regexp) ([][]byte, bool) {
	switch re.Op {
	case syntax.OpEmpty:
		return [][]byte{nil}, true
	case syntax.OpLiteral:
		return [][]byte{{re.Char}}, true
	case syntax.OpCharClass:
		if len(re.Class) > maxLiterals {
			return nil, false
		}
		members := make([][]byte, len(re.Class))
		for i, c := range re.Class {
			members[i] = []byte{c}
		}
		return members, true
	case syntax.OpConcat:
		left, ok := enumerate(re.Sub[0])
		if !ok {
			return nil, false
		}
		right, ok := enumerate(re.Sub[1])
		if !ok {
			return nil, false
		}
		if len(left)*len(right) > maxLiterals {
			return nil, false
		}
		product := make([][]byte, 0, len(left)*len(right))
		total := 0
		for _, l := range left {
			for _, r := range right {
				joined := make([]byte, 0, len(l)+len(r))
				joined = append(joined, l...)
				joined = append(joined, r...)
				total += len(joined)
				if total > maxLiteralBytes {
					return nil, false
				}
				product = append(product, joined)
			}
		}
		return product, true
	case syntax.OpAlternate:
		left, ok := enumerate(re.Sub[0])
		if !ok {
			return nil, false
		}
		right, ok := enumerate(re.Sub[1])
		if !ok {
			return nil, false
		}
		if len(left)+len(right) > maxLiterals {
			return nil, false
		}
		return append(left, right...), true
	default:
		// OpStar: infinite language
		return nil, false
	}
}
