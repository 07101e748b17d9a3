// Package conv provides safe integer conversion helpers.
//
// The helpers perform bounds checking before narrowing conversions and
// panic on overflow, since overflow here indicates a programming error
// (an automaton too large for its 32-bit state identifiers).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so the bound works on 32-bit platforms too.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
