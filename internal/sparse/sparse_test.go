package sparse

import "testing"

func TestSet_InsertContains(t *testing.T) {
	s := New(16)

	if !s.Insert(3) {
		t.Error("first Insert(3) should report newly added")
	}
	if s.Insert(3) {
		t.Error("second Insert(3) should report already present")
	}
	if !s.Contains(3) {
		t.Error("set should contain 3")
	}
	if s.Contains(4) {
		t.Error("set should not contain 4")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSet_OutOfRange(t *testing.T) {
	s := New(4)

	if s.Insert(4) {
		t.Error("Insert at capacity should be rejected")
	}
	if s.Insert(100) {
		t.Error("Insert above capacity should be rejected")
	}
	if s.Contains(100) {
		t.Error("Contains above capacity should be false")
	}
	if !s.IsEmpty() {
		t.Error("rejected inserts should leave the set empty")
	}
}

func TestSet_Clear(t *testing.T) {
	s := New(8)
	for _, v := range []uint32{0, 2, 5, 7} {
		s.Insert(v)
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}

	s.Clear()

	if !s.IsEmpty() {
		t.Error("set should be empty after Clear")
	}
	if s.Contains(2) {
		t.Error("cleared set should not contain 2")
	}

	// The set must be reusable after Clear.
	if !s.Insert(2) {
		t.Error("Insert after Clear should report newly added")
	}
	if !s.Contains(2) {
		t.Error("set should contain 2 after reinsertion")
	}
}

func TestSet_Values(t *testing.T) {
	s := New(8)
	want := []uint32{5, 1, 6}
	for _, v := range want {
		s.Insert(v)
	}
	s.Insert(5) // duplicate must not appear twice

	got := s.Values()
	if len(got) != len(want) {
		t.Fatalf("Values() has %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %d, want %d (insertion order)", i, got[i], want[i])
		}
	}
}

func TestSet_StaleSparseEntry(t *testing.T) {
	// A value whose sparse slot holds stale data from a previous
	// generation must not be reported as present.
	s := New(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()
	s.Insert(2)

	if s.Contains(1) {
		t.Error("stale sparse entry reported as present")
	}
}
