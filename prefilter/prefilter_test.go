package prefilter

import (
	"testing"

	"github.com/thaumasiotes/regexp/literal"
	"github.com/thaumasiotes/regexp/syntax"
)

func fromPattern(t *testing.T, pattern string) Prefilter {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	return FromSeq(literal.Extract(re))
}

func TestFromSeq_Selection(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // concrete prefilter type, "" for nil
	}{
		{"a", "*prefilter.byteScan"},
		{"abc", "*prefilter.substringScan"},
		{"ab|cd", "*prefilter.multiScan"},
		{"[abc]", "*prefilter.multiScan"},
		// a* has an infinite language, a| and "" contain the empty
		// string: nothing is extracted for any of them.
		{"a*", ""},
		{"a|", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := fromPattern(t, tt.pattern)
			if tt.want == "" {
				if pf != nil {
					t.Fatalf("FromSeq(%q) = %T, want nil", tt.pattern, pf)
				}
				return
			}
			if pf == nil {
				t.Fatalf("FromSeq(%q) = nil, want %s", tt.pattern, tt.want)
			}
			if got := typeName(pf); got != tt.want {
				t.Errorf("FromSeq(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
			if !pf.IsComplete() {
				t.Errorf("FromSeq(%q).IsComplete() = false, want true for exact literals", tt.pattern)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *byteScan:
		return "*prefilter.byteScan"
	case *substringScan:
		return "*prefilter.substringScan"
	case *multiScan:
		return "*prefilter.multiScan"
	default:
		return "unknown"
	}
}

func TestPrefilter_Find(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		want     int
	}{
		{"a", "xxaxx", 0, 2},
		{"a", "xxaxx", 3, -1},
		{"a", "", 0, -1},
		{"abc", "zzabczz", 0, 2},
		{"abc", "zzabczz", 3, -1},
		{"ab|cd", "zzcdzz", 0, 2},
		{"ab|cd", "zzabzz", 0, 2},
		{"ab|cd", "zzzz", 0, -1},
		{"[xyz]", "aaayaaa", 0, 3},
		{"[xyz]", "aaayaaa", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.haystack, func(t *testing.T) {
			pf := fromPattern(t, tt.pattern)
			if pf == nil {
				t.Fatalf("FromSeq(%q) = nil", tt.pattern)
			}
			if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
				t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.start, got, tt.want)
			}
		})
	}
}

func TestPrefilter_FindOutOfRange(t *testing.T) {
	pf := fromPattern(t, "abc")
	if got := pf.Find([]byte("abc"), -1); got != -1 {
		t.Errorf("Find with negative start = %d, want -1", got)
	}
	if got := pf.Find([]byte("abc"), 10); got != -1 {
		t.Errorf("Find past the end = %d, want -1", got)
	}
}
