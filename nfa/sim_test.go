package nfa

import (
	"io"
	"strings"
	"testing"
)

func compile(t *testing.T, pattern string) *NFA {
	t.Helper()
	return Compile(mustParse(t, pattern))
}

func TestSimulator_Whole(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{"a", "", false},
		{"a", "aa", false},
		{"", "", true},
		{"", "a", false},
		{"ab", "ab", true},
		{"ab", "xxabxx", false},
		{"aa*", "a", true},
		{"aa*", "aaa", true},
		{"aa*", "", false},
		{"aa*", "aab", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a*", "aaab", false},
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"a|", "a", true},
		{"a|", "", true},
		{"a|", "b", false},
		{"(ab|a)", "a", true},
		{"(ab|a)", "ab", true},
		{"(ab|a)", "b", false},
		{"[abc]", "a", true},
		{"[abc]", "b", true},
		{"[abc]", "d", false},
		{"[abc]", "ab", false},
		{"[ab/]c]", "]", true},
		{"[ab/]c]", "a", true},
		{"[ab/]c]", "b", true},
		{"[ab/]c]", "c", true},
		{"[ab/]c]", "d", false},
		{"(a|b)*", "", true},
		{"(a|b)*", "abba", true},
		{"(a|b)*", "abca", false},
		{"(ab)*", "abab", true},
		{"(ab)*", "aba", false},
		{"x[01]*y", "xy", true},
		{"x[01]*y", "x0110y", true},
		{"x[01]*y", "x012y", false},
		// '-' is an ordinary class member, never a range
		{"[a-c]", "-", true},
		{"[a-c]", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.input, func(t *testing.T) {
			sim := NewSimulator(compile(t, tt.pattern), Whole)
			if got := sim.RunBytes([]byte(tt.input)); got != tt.want {
				t.Errorf("Whole %q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestSimulator_AnySubstring(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"ab", "xxabxx", true},
		{"ab", "ab", true},
		{"ab", "xaxbx", false},
		{"ab", "", false},
		// empty-matching patterns succeed before any input is consumed
		{"", "", true},
		{"", "xyz", true},
		{"a*", "zzz", true},
		{"aa*", "za", true},
		{"aa*", "zzz", false},
		{"(ab|a)", "xxbax", true},
		{"(ab|a)", "xxbbx", false},
		{"[abc]", "zzczz", true},
		{"[abc]", "zzzzz", false},
		{"x[01]*y", "__x01y__", true},
		{"x[01]*y", "__x01z__", false},
		// overlapping attempts: a fresh attempt starts at every position
		{"aab", "aaab", true},
		{"abab", "abadabab", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.input, func(t *testing.T) {
			sim := NewSimulator(compile(t, tt.pattern), AnySubstring)
			if got := sim.RunBytes([]byte(tt.input)); got != tt.want {
				t.Errorf("AnySubstring %q on %q = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

// TestSimulator_StarMonotonic: p* matches any number of repetitions of a
// match of p, zero included.
func TestSimulator_StarMonotonic(t *testing.T) {
	sim := NewSimulator(compile(t, "(ab|a)*"), Whole)
	for n := 0; n <= 8; n++ {
		input := strings.Repeat("ab", n)
		if !sim.RunBytes([]byte(input)) {
			t.Errorf("(ab|a)* should match %d repetitions of \"ab\"", n)
		}
	}
}

// TestSimulator_Streaming checks the simulator over a one-shot byte
// producer with no random access.
func TestSimulator_Streaming(t *testing.T) {
	sim := NewSimulator(compile(t, "ab"), AnySubstring)
	if !sim.Run(strings.NewReader("xxabxx")) {
		t.Error("streaming AnySubstring should find \"ab\"")
	}

	whole := NewSimulator(compile(t, "a*"), Whole)
	if !whole.Run(strings.NewReader("aaaa")) {
		t.Error("streaming Whole should match \"aaaa\" against a*")
	}
	if whole.Run(strings.NewReader("aab")) {
		t.Error("streaming Whole should reject \"aab\" against a*")
	}
}

// TestSimulator_StateReuse checks that one SimState can serve many
// sequential runs.
func TestSimulator_StateReuse(t *testing.T) {
	sim := NewSimulator(compile(t, "(a|b)*c"), Whole)
	st := sim.NewState()

	inputs := []struct {
		input string
		want  bool
	}{
		{"c", true},
		{"abc", true},
		{"ab", false},
		{"bbac", true},
		{"", false},
	}
	for _, tt := range inputs {
		if got := sim.RunBytesWithState([]byte(tt.input), st); got != tt.want {
			t.Errorf("reused state: %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestSimulator_WholeShortCircuit: once no state is live, Whole mode must
// answer without reading the rest of the input.
func TestSimulator_WholeShortCircuit(t *testing.T) {
	sim := NewSimulator(compile(t, "ab"), Whole)
	r := &countingReader{text: "zzzzzzzzzz"}
	if sim.Run(r) {
		t.Fatal("\"ab\" should not match \"zzzzzzzzzz\"")
	}
	if r.reads > 1 {
		t.Errorf("read %d bytes after the active set emptied, want at most 1", r.reads)
	}
}

type countingReader struct {
	text  string
	pos   int
	reads int
}

func (r *countingReader) ReadByte() (byte, error) {
	if r.pos >= len(r.text) {
		return 0, io.EOF
	}
	r.reads++
	b := r.text[r.pos]
	r.pos++
	return b, nil
}
