package testkit

import (
	"fmt"
	"strings"

	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/syntax"
)

// matcher compares actual diagnostics against expectations and routes every
// mismatch to the sink as its own failure. Count mismatches on a group
// (highlights, notes, fix-its) produce one aggregate failure for the group
// and skip per-item comparison; all other checks run independently.
type matcher struct {
	b    *syntax.Builder
	fs   *source.FileSet
	sink Sink
}

func (m *matcher) matchDiagnostic(index int, actual diag.Diagnostic, want ExpectedDiagnostic) {
	label := fmt.Sprintf("diagnostic %d", index)

	if want.ID != "" && actual.Code.ID() != want.ID {
		m.sink.Fail(fmt.Sprintf("%s: id is %q, expected %q", label, actual.Code.ID(), want.ID))
	}
	if actual.Message != want.Message {
		m.sink.Fail(fmt.Sprintf("%s: message is %q, expected %q", label, actual.Message, want.Message))
	}

	start, _ := m.fs.Resolve(actual.Primary)
	if start.Line != want.Line {
		m.sink.Fail(fmt.Sprintf("%s: anchored at line %d, expected line %d", label, start.Line, want.Line))
	}
	if start.Col != want.Col {
		m.sink.Fail(fmt.Sprintf("%s: anchored at column %d, expected column %d", label, start.Col, want.Col))
	}
	if actual.Severity != want.Severity {
		m.sink.Fail(fmt.Sprintf("%s: severity is %s, expected %s", label, actual.Severity, want.Severity))
	}

	if want.Highlights != nil {
		m.matchHighlights(label, actual, want.Highlights)
	}
	m.matchNotes(label, actual, want.Notes)
	m.matchFixIts(label, actual, want.FixIts)
}

func (m *matcher) matchHighlights(label string, actual diag.Diagnostic, want []string) {
	if len(actual.Highlights) != len(want) {
		got := make([]string, len(actual.Highlights))
		for i, h := range actual.Highlights {
			got[i] = m.b.TrimmedDescription(h)
		}
		m.sink.Fail(fmt.Sprintf("%s: %d highlights, expected %d: %q",
			label, len(actual.Highlights), len(want), got))
		return
	}
	for i, h := range actual.Highlights {
		if got := m.b.TrimmedDescription(h); got != want[i] {
			m.sink.Fail(fmt.Sprintf("%s: highlight %d is %q, expected %q", label, i, got, want[i]))
		}
	}
}

func (m *matcher) matchNotes(label string, actual diag.Diagnostic, want []ExpectedNote) {
	if len(actual.Notes) != len(want) {
		var got []string
		for _, n := range actual.Notes {
			start, _ := m.fs.Resolve(n.Span)
			got = append(got, fmt.Sprintf("%d:%d: %s", start.Line, start.Col, n.Msg))
		}
		m.sink.Fail(fmt.Sprintf("%s: %d notes, expected %d:\n  %s",
			label, len(actual.Notes), len(want), strings.Join(got, "\n  ")))
		return
	}
	for i, n := range actual.Notes {
		nl := fmt.Sprintf("%s, note %d", label, i)
		if n.Msg != want[i].Message {
			m.sink.Fail(fmt.Sprintf("%s: message is %q, expected %q", nl, n.Msg, want[i].Message))
		}
		start, _ := m.fs.Resolve(n.Span)
		if start.Line != want[i].Line {
			m.sink.Fail(fmt.Sprintf("%s: anchored at line %d, expected line %d", nl, start.Line, want[i].Line))
		}
		if start.Col != want[i].Col {
			m.sink.Fail(fmt.Sprintf("%s: anchored at column %d, expected column %d", nl, start.Col, want[i].Col))
		}
	}
}

func (m *matcher) matchFixIts(label string, actual diag.Diagnostic, want []string) {
	if len(actual.Fixes) != len(want) {
		got := make([]string, len(actual.Fixes))
		for i, f := range actual.Fixes {
			got[i] = f.Title
		}
		m.sink.Fail(fmt.Sprintf("%s: %d fix-its, expected %d: %q",
			label, len(actual.Fixes), len(want), got))
		return
	}
	for i, f := range actual.Fixes {
		if f.Title != want[i] {
			m.sink.Fail(fmt.Sprintf("%s: fix-it %d is %q, expected %q", label, i, f.Title, want[i]))
		}
	}
}
