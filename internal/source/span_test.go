package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 7}
	if s.Empty() {
		t.Error("non-empty span reported as empty")
	}
	if s.Len() != 4 {
		t.Errorf("expected length 4, got %d", s.Len())
	}
	if !s.Contains(3) || s.Contains(7) {
		t.Error("Contains must treat the span as half-open [Start, End)")
	}
	if s.Synthetic() {
		t.Error("span with a valid file must not be synthetic")
	}

	empty := Span{File: 1, Start: 5, End: 5}
	if !empty.Empty() {
		t.Error("zero-length span reported as non-empty")
	}

	detached := Span{File: NoFileID, Start: 0, End: 4}
	if !detached.Synthetic() {
		t.Error("span with NoFileID must be synthetic")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("expected cover 2-8, got %v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cover across files must keep the receiver, got %v", got)
	}
}
