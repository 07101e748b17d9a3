// Package prefilter provides fast candidate search over extracted
// literal sequences.
//
// When a pattern's language is a small finite set of strings, substring
// search reduces to multi-literal search: a single byte scan, a substring
// scan, or an Aho-Corasick automaton, selected by the shape of the
// literal set. The prefilters here operate on exact literal sets, so a
// candidate position is a confirmed match and no automaton verification
// is needed.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/thaumasiotes/regexp/literal"
)

// Prefilter finds candidate match positions in a random-access haystack.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if there is none.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate position is a confirmed
	// match, so the caller may skip automaton verification.
	IsComplete() bool
}

// FromSeq selects a prefilter for an exact literal sequence:
//
//	one single-byte literal  -> IndexByte scan
//	one longer literal       -> Index scan
//	several literals         -> Aho-Corasick automaton
//
// Returns nil when seq is empty, contains the zero-length string (the
// caller must answer such searches directly), or the Aho-Corasick build
// fails.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return &byteScan{needle: lit.Bytes[0]}
		}
		needle := make([]byte, lit.Len())
		copy(needle, lit.Bytes)
		return &substringScan{needle: needle}
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &multiScan{auto: auto}
}

// byteScan searches for a single byte.
type byteScan struct {
	needle byte
}

func (p *byteScan) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *byteScan) IsComplete() bool { return true }

// substringScan searches for a single multi-byte literal.
type substringScan struct {
	needle []byte
}

func (p *substringScan) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *substringScan) IsComplete() bool { return true }

// multiScan searches for any of several literals with Aho-Corasick.
type multiScan struct {
	auto *ahocorasick.Automaton
}

func (p *multiScan) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *multiScan) IsComplete() bool { return true }
