// Package syntax parses the restricted regular-expression mini-language
// into a syntax tree.
//
// The language supports literal bytes, grouping with "(...)", alternation
// with "|", the zero-or-more closure "*", and character classes
// "[...]" listing their members explicitly. Inside a class body the
// sequence "/]" denotes a literal ']'; there is no other escaping, and
// the bytes "( ) | * [ ] /" cannot be matched literally outside a class.
//
// Parsing is byte-oriented: one pattern byte is one character.
package syntax

import (
	"errors"
	"fmt"
)

// Sub-causes of a SyntaxError.
var (
	// ErrUnbalancedParen indicates an unclosed '(' or an unmatched ')'.
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")

	// ErrUnterminatedClass indicates a '[' with no matching ']'.
	ErrUnterminatedClass = errors.New("unterminated character class")

	// ErrEmptyClass indicates a class "[]" with no members.
	ErrEmptyClass = errors.New("empty character class")

	// ErrDanglingStar indicates a '*' with no atom to repeat.
	ErrDanglingStar = errors.New("closure with nothing to repeat")

	// ErrTrailingEscape indicates a pattern exhausted in the middle of a
	// "/]" escape inside a character class.
	ErrTrailingEscape = errors.New("pattern ends in the middle of an escape")

	// ErrReservedChar indicates a reserved byte used where only a literal
	// may appear. '/' is reserved everywhere outside a class body; ']'
	// is reserved outside a class.
	ErrReservedChar = errors.New("reserved character outside character class")
)

// SyntaxError is the failure mode of Parse. It wraps one of the sentinel
// sub-causes above and records where in the pattern scanning stopped.
type SyntaxError struct {
	Pattern string // the full pattern being parsed
	Pos     int    // byte offset of the offending character
	Err     error  // one of the Err* sentinels
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regexp: parse error in %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the sub-cause, so callers can use errors.Is against the
// sentinel values.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
