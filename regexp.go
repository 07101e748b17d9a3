// Package regexp implements matching for a restricted regular-expression
// language: literals, grouping "(...)", alternation "|", the zero-or-more
// closure "*", and character classes "[...]" listing their members (with
// "/]" for a literal ']' inside a class). There are no anchors, ranges,
// backreferences, or escapes outside classes.
//
// A pattern is parsed into a syntax tree, compiled into a Thompson NFA,
// and simulated against the input one byte at a time without
// backtracking, so matching always runs in O(len(input) * states).
//
// Basic usage:
//
//	m, err := regexp.CompileMatch("(ab|a)*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m.MatchString("abab") // true: the whole text is in the language
//
//	s := regexp.MustCompileSearch("ab")
//	s.SearchString("xxabxx") // true: some substring matches
//
// Compiled patterns are immutable and safe for concurrent use. The
// one-shot Match and Search helpers compile on every call.
package regexp

import (
	"io"
	"sync"

	"github.com/thaumasiotes/regexp/literal"
	"github.com/thaumasiotes/regexp/nfa"
	"github.com/thaumasiotes/regexp/prefilter"
	"github.com/thaumasiotes/regexp/syntax"
)

// Match reports whether text, taken as one whole string, is in the
// language of pattern. It fails only when the pattern is malformed.
func Match(pattern string, text []byte) (bool, error) {
	m, err := CompileMatch(pattern)
	if err != nil {
		return false, err
	}
	return m.Match(text), nil
}

// MatchString is Match for a string input.
func MatchString(pattern, text string) (bool, error) {
	m, err := CompileMatch(pattern)
	if err != nil {
		return false, err
	}
	return m.MatchString(text), nil
}

// MatchReader is Match over a one-shot byte producer. The reader is
// consumed at most once and never rewound.
func MatchReader(pattern string, r io.ByteReader) (bool, error) {
	m, err := CompileMatch(pattern)
	if err != nil {
		return false, err
	}
	return m.MatchReader(r), nil
}

// Search reports whether any contiguous substring of text, the empty
// substring included, is in the language of pattern. It fails only when
// the pattern is malformed.
func Search(pattern string, text []byte) (bool, error) {
	s, err := CompileSearch(pattern)
	if err != nil {
		return false, err
	}
	return s.Search(text), nil
}

// SearchString is Search for a string input.
func SearchString(pattern, text string) (bool, error) {
	s, err := CompileSearch(pattern)
	if err != nil {
		return false, err
	}
	return s.SearchString(text), nil
}

// SearchReader is Search over a one-shot byte producer.
func SearchReader(pattern string, r io.ByteReader) (bool, error) {
	s, err := CompileSearch(pattern)
	if err != nil {
		return false, err
	}
	return s.SearchReader(r), nil
}

// Matcher is a compiled pattern answering whole-text membership. It owns
// its automaton, is immutable after compilation, and pools per-call
// simulation state so concurrent calls never share mutable data.
type Matcher struct {
	pattern string
	sim     *nfa.Simulator
	states  sync.Pool
}

// CompileMatch parses and builds pattern once, for repeated whole-text
// matching. Fails with a *syntax.SyntaxError when the pattern is
// malformed.
func CompileMatch(pattern string) (*Matcher, error) {
	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	m := &Matcher{
		pattern: pattern,
		sim:     nfa.NewSimulator(nfa.Compile(re), nfa.Whole),
	}
	m.states.New = func() any { return m.sim.NewState() }
	return m, nil
}

// MustCompileMatch is CompileMatch for patterns known to be valid; it
// panics on a malformed pattern.
func MustCompileMatch(pattern string) *Matcher {
	m, err := CompileMatch(pattern)
	if err != nil {
		panic("regexp: CompileMatch(`" + pattern + "`): " + err.Error())
	}
	return m
}

// Match reports whether text, as one whole string, is in the pattern's
// language.
func (m *Matcher) Match(text []byte) bool {
	st := m.states.Get().(*nfa.SimState)
	defer m.states.Put(st)
	return m.sim.RunBytesWithState(text, st)
}

// MatchString is Match for a string input.
func (m *Matcher) MatchString(text string) bool {
	return m.Match([]byte(text))
}

// MatchReader is Match over a one-shot byte producer. The reader is
// consumed destructively; supply a fresh reader for every call.
func (m *Matcher) MatchReader(r io.ByteReader) bool {
	st := m.states.Get().(*nfa.SimState)
	defer m.states.Put(st)
	return m.sim.RunWithState(r, st)
}

// Pattern returns the source pattern the matcher was compiled from.
func (m *Matcher) Pattern() string { return m.pattern }

// String returns the source pattern.
func (m *Matcher) String() string { return m.pattern }

// Searcher is a compiled pattern answering substring queries. When the
// pattern's language is a small finite set of strings, byte-slice
// searches bypass the automaton and run a literal prefilter instead
// (single-byte scan, substring scan, or Aho-Corasick, by shape).
// Streaming searches always simulate the automaton.
type Searcher struct {
	pattern string
	sim     *nfa.Simulator
	states  sync.Pool

	pf prefilter.Prefilter

	// matchesEmpty records that the empty substring matches, which makes
	// every search succeed without looking at the text.
	matchesEmpty bool
}

// CompileSearch parses and builds pattern once, for repeated substring
// searching. Fails with a *syntax.SyntaxError when the pattern is
// malformed.
func CompileSearch(pattern string) (*Searcher, error) {
	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		pattern: pattern,
		sim:     nfa.NewSimulator(nfa.Compile(re), nfa.AnySubstring),
	}
	s.states.New = func() any { return s.sim.NewState() }

	if seq := literal.Extract(re); seq != nil {
		if seq.HasEmpty() {
			s.matchesEmpty = true
		} else {
			seq.Minimize()
			s.pf = prefilter.FromSeq(seq)
		}
	}
	return s, nil
}

// MustCompileSearch is CompileSearch for patterns known to be valid; it
// panics on a malformed pattern.
func MustCompileSearch(pattern string) *Searcher {
	s, err := CompileSearch(pattern)
	if err != nil {
		panic("regexp: CompileSearch(`" + pattern + "`): " + err.Error())
	}
	return s
}

// Search reports whether any contiguous substring of text is in the
// pattern's language.
func (s *Searcher) Search(text []byte) bool {
	if s.matchesEmpty {
		return true
	}
	if s.pf != nil && s.pf.IsComplete() {
		return s.pf.Find(text, 0) != -1
	}
	st := s.states.Get().(*nfa.SimState)
	defer s.states.Put(st)
	return s.sim.RunBytesWithState(text, st)
}

// SearchString is Search for a string input.
func (s *Searcher) SearchString(text string) bool {
	return s.Search([]byte(text))
}

// SearchReader is Search over a one-shot byte producer. Prefilters need
// random access, so this path always simulates the automaton. The reader
// is consumed destructively; supply a fresh reader for every call.
func (s *Searcher) SearchReader(r io.ByteReader) bool {
	if s.matchesEmpty {
		return true
	}
	st := s.states.Get().(*nfa.SimState)
	defer s.states.Put(st)
	return s.sim.RunWithState(r, st)
}

// Pattern returns the source pattern the searcher was compiled from.
func (s *Searcher) Pattern() string { return s.pattern }

// String returns the source pattern.
func (s *Searcher) String() string { return s.pattern }
