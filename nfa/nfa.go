// Package nfa builds and simulates Thompson NFAs for the restricted
// regular-expression language parsed by the syntax package.
//
// States live in a flat arena indexed by StateID, so the cyclic graphs
// that closures produce need no ownership machinery: a back-edge is just
// an index. An NFA is immutable once built and may be shared freely; all
// mutable simulation state lives in a SimState owned by the caller.
package nfa

import "fmt"

// StateID uniquely identifies an NFA state within its arena.
type StateID uint32

// InvalidState is the id of no state. Freshly added states point here
// until the compiler patches in their real target.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of an NFA state and determines which
// transitions it carries.
type StateKind uint8

const (
	// StateMatch is the accepting state. It has no transitions.
	StateMatch StateKind = iota

	// StateByte consumes exactly one input byte equal to its label.
	StateByte

	// StateClass consumes exactly one input byte that is a member of its
	// class. It is the direct form of an alternation over literals: one
	// transition per member, all from the same entry to the same exit.
	StateClass

	// StateSplit has epsilon transitions to two states. Alternations and
	// closures introduce these.
	StateSplit

	// StateEpsilon has a single epsilon transition. Fragment exits are
	// epsilon states until composition patches their target.
	StateEpsilon
)

// String returns a human-readable representation of the StateKind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByte:
		return "Byte"
	case StateClass:
		return "Class"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// State is a single NFA state. Which fields are valid depends on kind.
type State struct {
	id   StateID
	kind StateKind

	b    byte    // StateByte: the byte label
	next StateID // StateByte, StateClass, StateEpsilon: target

	class []byte // StateClass: members, sorted ascending

	left, right StateID // StateSplit: epsilon targets
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's type.
func (s *State) Kind() StateKind { return s.kind }

// IsMatch reports whether this is the accepting state.
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// Byte returns the label and target of a StateByte.
// Returns (0, InvalidState) for other kinds.
func (s *State) Byte() (b byte, next StateID) {
	if s.kind == StateByte {
		return s.b, s.next
	}
	return 0, InvalidState
}

// Class returns the members and target of a StateClass.
// Returns (nil, InvalidState) for other kinds.
func (s *State) Class() (members []byte, next StateID) {
	if s.kind == StateClass {
		return s.class, s.next
	}
	return nil, InvalidState
}

// Split returns the two epsilon targets of a StateSplit.
// Returns (InvalidState, InvalidState) for other kinds.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target of a StateEpsilon.
// Returns InvalidState for other kinds.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// matchesByte reports whether the state consumes input byte c, and if so
// where it goes. Only StateByte and StateClass consume input.
func (s *State) matchesByte(c byte) (StateID, bool) {
	switch s.kind {
	case StateByte:
		if s.b == c {
			return s.next, true
		}
	case StateClass:
		// members are few and sorted; a linear scan beats binary search
		// at these sizes
		for _, m := range s.class {
			if m == c {
				return s.next, true
			}
			if m > c {
				break
			}
		}
	}
	return InvalidState, false
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateByte:
		return fmt.Sprintf("State(%d, Byte %q -> %d)", s.id, s.b, s.next)
	case StateClass:
		return fmt.Sprintf("State(%d, Class %q -> %d)", s.id, s.class, s.next)
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA is a compiled Thompson automaton. It is read-only after Build and
// safe for concurrent simulation.
type NFA struct {
	states []State
	start  StateID
	match  StateID // the single top-level accepting state
}

// Start returns the automaton's start state id.
func (n *NFA) Start() StateID { return n.start }

// Match returns the automaton's accepting state id.
func (n *NFA) Match() StateID { return n.match }

// State returns the state with the given id, or nil if the id is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch reports whether id names the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	return id == n.match
}

// States returns the total number of states in the automaton.
func (n *NFA) States() int {
	return len(n.states)
}

// String returns a human-readable summary of the NFA.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, match: %d}", len(n.states), n.start, n.match)
}
