package literal

import (
	"sort"
	"strings"
	"testing"

	"github.com/thaumasiotes/regexp/syntax"
)

func extract(t *testing.T, pattern string) *Seq {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	return Extract(re)
}

func members(s *Seq) []string {
	var out []string
	for i := 0; i < s.Len(); i++ {
		out = append(out, string(s.Get(i).Bytes))
	}
	sort.Strings(out)
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string // sorted; nil means extraction must fail
	}{
		{"abc", []string{"abc"}},
		{"a|b", []string{"a", "b"}},
		{"(ab|a)", []string{"a", "ab"}},
		{"[abc]", []string{"a", "b", "c"}},
		{"[ab]c", []string{"ac", "bc"}},
		{"(x|y)(0|1)", []string{"x0", "x1", "y0", "y1"}},
		{"", []string{""}},
		{"a|", []string{"", "a"}},
		{"a*", nil},
		{"ab*c", nil},
		{"(a|b)*", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, tt.pattern)
			if tt.want == nil {
				if seq != nil {
					t.Fatalf("Extract(%q) = %v, want nil (infinite language)", tt.pattern, members(seq))
				}
				return
			}
			if seq == nil {
				t.Fatalf("Extract(%q) = nil, want %v", tt.pattern, tt.want)
			}
			got := members(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Extract(%q)[%d] = %q, want %q", tt.pattern, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtract_Limits(t *testing.T) {
	// Three 5-member classes enumerate to 125 strings, over the literal
	// limit.
	if seq := extract(t, "[abcde][abcde][abcde]"); seq != nil {
		t.Errorf("oversized enumeration should fail, got %d literals", seq.Len())
	}

	// Two of them stay under it.
	seq := extract(t, "[abcde][abcde]")
	if seq == nil || seq.Len() != 25 {
		t.Errorf("Extract = %v, want 25 literals", seq.Len())
	}
}

func TestSeq_HasEmpty(t *testing.T) {
	if extract(t, "a|b").HasEmpty() {
		t.Error("a|b should not contain the empty string")
	}
	if !extract(t, "a|").HasEmpty() {
		t.Error("a| should contain the empty string")
	}
	var nilSeq *Seq
	if nilSeq.HasEmpty() {
		t.Error("nil Seq should not contain the empty string")
	}
}

func TestSeq_Minimize(t *testing.T) {
	seq := NewSeq(
		Literal{Bytes: []byte("foobar")},
		Literal{Bytes: []byte("foo")},
		Literal{Bytes: []byte("foo")},
		Literal{Bytes: []byte("bar")},
	)
	seq.Minimize()

	got := members(seq)
	want := []string{"bar", "foo"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Minimize = %v, want %v", got, want)
	}
}
