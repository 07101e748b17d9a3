package nfa

import (
	"errors"
	"fmt"
)

// ErrInvalidAutomaton indicates a hand-built automaton that failed
// validation.
var ErrInvalidAutomaton = errors.New("invalid automaton")

// BuildError reports a malformed automaton from the Builder API.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("nfa: build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa: build error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrInvalidAutomaton.
func (e *BuildError) Unwrap() error { return ErrInvalidAutomaton }

// Builder constructs NFAs incrementally. The compiler drives it with the
// Thompson fragment rules, but it is usable directly, e.g. by tests and
// by the code generator's fixtures.
//
// Forward references are expressed by adding states whose target is
// InvalidState and patching them once the target exists.
type Builder struct {
	states []State
	start  StateID
	match  StateID
}

// NewBuilder creates a builder with default capacity.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a builder with room for the given number
// of states before reallocating.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		match:  InvalidState,
	}
}

// AddMatch adds the accepting state and returns its id. A well-formed
// automaton has exactly one.
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch})
	b.match = id
	return id
}

// AddByte adds a state consuming the single byte c, transitioning to next.
func (b *Builder) AddByte(c byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByte, b: c, next: next})
	return id
}

// AddClass adds a state consuming any one member of class, transitioning
// to next. The slice is copied; members must be sorted ascending.
func (b *Builder) AddClass(class []byte, next StateID) StateID {
	members := make([]byte, len(class))
	copy(members, class)
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateClass, class: members, next: next})
	return id
}

// AddSplit adds a state with epsilon transitions to left and right.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon transition to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// Patch sets the target of a state with a single next pointer (Byte,
// Class, Epsilon). Patching any other kind is a programming error in the
// caller and panics.
func (b *Builder) Patch(id, target StateID) {
	s := &b.states[id]
	switch s.kind {
	case StateByte, StateClass, StateEpsilon:
		s.next = target
	default:
		panic(fmt.Sprintf("nfa: cannot patch state of kind %s", s.kind))
	}
}

// SetStart sets the automaton's start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// Len returns the current number of states.
func (b *Builder) Len() int {
	return len(b.states)
}

// Validate checks that the automaton is well formed: start and match
// states set, every reference in bounds, no dangling InvalidState target,
// and exactly one accepting state.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.match == InvalidState {
		return &BuildError{Message: "no accepting state", StateID: InvalidState}
	}

	matches := 0
	for i := range b.states {
		s := &b.states[i]
		id := StateID(i)
		switch s.kind {
		case StateMatch:
			matches++
		case StateByte, StateEpsilon:
			if err := b.checkTarget(id, s.next); err != nil {
				return err
			}
		case StateClass:
			if len(s.class) == 0 {
				return &BuildError{Message: "class state with no members", StateID: id}
			}
			if err := b.checkTarget(id, s.next); err != nil {
				return err
			}
		case StateSplit:
			if err := b.checkTarget(id, s.left); err != nil {
				return err
			}
			if err := b.checkTarget(id, s.right); err != nil {
				return err
			}
		}
	}
	if matches != 1 {
		return &BuildError{
			Message: fmt.Sprintf("expected exactly one accepting state, found %d", matches),
			StateID: InvalidState,
		}
	}
	return nil
}

func (b *Builder) checkTarget(id, target StateID) error {
	if target == InvalidState {
		return &BuildError{Message: "unpatched transition target", StateID: id}
	}
	if int(target) >= len(b.states) {
		return &BuildError{Message: fmt.Sprintf("transition target %d out of bounds", target), StateID: id}
	}
	return nil
}

// Build validates and finalizes the automaton. The builder must not be
// reused afterwards; the returned NFA owns the state arena.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{states: b.states, start: b.start, match: b.match}, nil
}

// mustBuild is Build for automata produced by the compiler, where a
// validation failure can only mean a bug in the construction itself.
func (b *Builder) mustBuild() *NFA {
	n, err := b.Build()
	if err != nil {
		panic("nfa: compiler produced " + err.Error())
	}
	return n
}
