package nfa

import (
	"io"

	"github.com/thaumasiotes/regexp/internal/conv"
	"github.com/thaumasiotes/regexp/internal/sparse"
)

// Mode selects what a simulation run decides.
type Mode uint8

const (
	// Whole accepts iff the entire input is in the pattern's language.
	Whole Mode = iota

	// AnySubstring accepts iff some contiguous substring of the input,
	// the empty substring included, is in the pattern's language.
	AnySubstring
)

// String returns a human-readable representation of the Mode.
func (m Mode) String() string {
	switch m {
	case Whole:
		return "Whole"
	case AnySubstring:
		return "AnySubstring"
	default:
		return "Unknown"
	}
}

// Simulator executes an NFA against a byte sequence, online and without
// backtracking. It holds only immutable configuration and is safe for
// concurrent use; each concurrent run needs its own SimState.
type Simulator struct {
	nfa  *NFA
	mode Mode
}

// NewSimulator creates a simulator for the given automaton and mode.
func NewSimulator(n *NFA, mode Mode) *Simulator {
	return &Simulator{nfa: n, mode: mode}
}

// NFA returns the automaton this simulator runs.
func (s *Simulator) NFA() *NFA { return s.nfa }

// Mode returns the simulation mode.
func (s *Simulator) Mode() Mode { return s.mode }

// SimState is the mutable state of one simulation run: the current and
// next active-state sets and a scratch stack for epsilon closures. Its
// size is bounded by the automaton's state count regardless of input
// length. A SimState may be reused across runs but never shared between
// concurrent runs.
type SimState struct {
	curr  *sparse.Set
	next  *sparse.Set
	stack []StateID
}

// NewState allocates a SimState sized for this simulator's automaton.
func (s *Simulator) NewState() *SimState {
	capacity := conv.IntToUint32(s.nfa.States())
	return &SimState{
		curr:  sparse.New(capacity),
		next:  sparse.New(capacity),
		stack: make([]StateID, 0, capacity),
	}
}

// Run simulates the automaton over the bytes produced by r, allocating a
// fresh SimState for the call.
func (s *Simulator) Run(r io.ByteReader) bool {
	return s.RunWithState(r, s.NewState())
}

// RunBytes simulates the automaton over text.
func (s *Simulator) RunBytes(text []byte) bool {
	return s.RunBytesWithState(text, s.NewState())
}

// RunBytesWithState is RunBytes with caller-owned state, for callers that
// pool simulation state across runs.
func (s *Simulator) RunBytesWithState(text []byte, st *SimState) bool {
	cur := byteCursor{text: text}
	return s.RunWithState(&cur, st)
}

// RunWithState simulates the automaton over the bytes produced by r using
// caller-owned state.
//
// The input is consumed destructively: at most one pass, no lookahead, no
// rewinding. Any read error ends the input as if it were EOF. In Whole
// mode the run may stop reading early once no state is live, since no
// further byte can be accepted.
func (s *Simulator) RunWithState(r io.ByteReader, st *SimState) bool {
	st.curr.Clear()
	st.next.Clear()

	// Active set starts as the epsilon closure of {start}.
	s.addClosure(st.curr, st, s.nfa.Start())

	// A pattern matching the empty string succeeds before any input is
	// consumed: the empty substring ends at position zero.
	if s.mode == AnySubstring && s.accepting(st.curr) {
		return true
	}

	for {
		c, err := r.ReadByte()
		if err != nil {
			break
		}

		st.next.Clear()
		for _, v := range st.curr.Values() {
			state := s.nfa.State(StateID(v))
			if target, ok := state.matchesByte(c); ok {
				s.addClosure(st.next, st, target)
			}
		}

		if s.mode == AnySubstring {
			// Re-inject a fresh attempt beginning after this byte, then
			// report success the moment a substring ending here matches.
			s.addClosure(st.next, st, s.nfa.Start())
			if s.accepting(st.next) {
				return true
			}
		} else if st.next.IsEmpty() {
			// Whole mode: no live state and no re-injection means no
			// further byte can ever be accepted.
			return false
		}

		st.curr, st.next = st.next, st.curr
	}

	if s.mode == AnySubstring {
		// Success in this mode is only ever observed inside the loop.
		return false
	}
	return s.accepting(st.curr)
}

// addClosure inserts id and everything reachable from it over epsilon
// transitions into set. Iterative with an explicit stack; the visited
// guard is the set itself, so cycles terminate.
func (s *Simulator) addClosure(set *sparse.Set, st *SimState, id StateID) {
	st.stack = append(st.stack[:0], id)
	for len(st.stack) > 0 {
		n := len(st.stack) - 1
		sid := st.stack[n]
		st.stack = st.stack[:n]

		if sid == InvalidState || !set.Insert(uint32(sid)) {
			continue
		}

		switch state := s.nfa.State(sid); state.Kind() {
		case StateEpsilon:
			st.stack = append(st.stack, state.Epsilon())
		case StateSplit:
			left, right := state.Split()
			st.stack = append(st.stack, left, right)
		}
	}
}

// accepting reports whether the active set contains the accepting state.
func (s *Simulator) accepting(set *sparse.Set) bool {
	return set.Contains(uint32(s.nfa.Match()))
}

// byteCursor adapts a byte slice to io.ByteReader without the allocation
// of bytes.NewReader.
type byteCursor struct {
	text []byte
	pos  int
}

func (c *byteCursor) ReadByte() (byte, error) {
	if c.pos >= len(c.text) {
		return 0, io.EOF
	}
	b := c.text[c.pos]
	c.pos++
	return b, nil
}
