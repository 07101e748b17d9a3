// Package sparse provides a sparse set over small uint32 universes.
//
// The set supports O(1) insertion, membership testing, and clearing while
// keeping a dense list of members for fast iteration. It is the backing
// store for the simulator's active-state sets: the universe is the NFA's
// state count, so a pair of these sets is all the mutable state a running
// match needs.
package sparse

// Set is a set of uint32 values below a fixed capacity.
//
// It maintains a sparse array (value -> dense index) and a dense array
// (the members in insertion order). Clearing is O(1), which matters
// because the simulator clears the next-generation set once per input
// byte.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// New creates a set that can hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Returns false if the value was already present or is at or above the
// set's capacity.
func (s *Set) Insert(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	if s.Contains(value) {
		return false
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all elements in O(1) time.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Values returns the members in insertion order. The returned slice is
// valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}
