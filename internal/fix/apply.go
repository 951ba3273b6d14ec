package fix

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlap reports that two edits in one Apply call touch overlapping
// ranges. Overlap is never resolved silently; the caller decides what to do.
var ErrOverlap = errors.New("fix: overlapping edits")

// Apply produces a copy of src with all edits applied in one pass. Bytes
// outside edited ranges are preserved exactly. Edits may arrive in any
// order; they are sorted by start position first. An empty edit set returns
// src unchanged.
func Apply(src []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := append([]TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	for i, e := range sorted {
		if e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("fix: inverted edit span %s", e.Span)
		}
		if int(e.Span.End) > len(src) {
			return nil, fmt.Errorf("fix: edit span %s out of range (source is %d bytes)", e.Span, len(src))
		}
		if i > 0 && spansConflict(sorted[i-1], e) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, sorted[i-1].Span, e.Span)
		}
	}

	out := make([]byte, 0, len(src))
	cursor := uint32(0)
	for _, e := range sorted {
		out = append(out, src[cursor:e.Span.Start]...)
		out = append(out, e.NewText...)
		cursor = e.Span.End
	}
	out = append(out, src[cursor:]...)
	return out, nil
}

// spansConflict reports whether two edits' spans overlap. Spans are
// half-open [Start, End). Two zero-length edits never conflict; a
// zero-length edit conflicts with a non-zero span when its position falls
// inside it; two non-zero spans conflict on any overlap.
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
