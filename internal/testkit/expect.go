// Package testkit is the assertion harness for macro expansion: it expands
// a source fragment, compares the result against an expected rendering,
// matches every emitted diagnostic (notes and fix-its included) against
// caller expectations, and optionally applies selected fix-its and compares
// the patched source too. All mismatches from one verification accumulate;
// nothing stops at the first failure.
package testkit

import (
	"graft/internal/diag"
)

// ExpectedNote describes one note a diagnostic must carry, matched by
// position against the actual note list.
type ExpectedNote struct {
	Message string
	Line    uint32
	Col     uint32
}

// ExpectedDiagnostic describes one diagnostic a correct expansion must
// produce. Expectations are matched against actual diagnostics strictly by
// index, never by best-match search, so list order is significant.
//
// Zero-value fields act as wildcards where noted: an empty ID matches any
// code, nil Highlights skips highlight comparison entirely. Notes and
// FixIts always compare, including the zero-count case.
type ExpectedDiagnostic struct {
	Message    string
	Line       uint32
	Col        uint32
	Severity   diag.Severity
	ID         string
	Highlights []string
	Notes      []ExpectedNote
	FixIts     []string
}

// Expect builds an error-severity expectation anchored at line:col.
func Expect(message string, line, col uint32) ExpectedDiagnostic {
	return ExpectedDiagnostic{
		Message:  message,
		Line:     line,
		Col:      col,
		Severity: diag.SevError,
	}
}

func (e ExpectedDiagnostic) WithSeverity(sev diag.Severity) ExpectedDiagnostic {
	e.Severity = sev
	return e
}

// WithID pins the diagnostic code, e.g. "MAC4100".
func (e ExpectedDiagnostic) WithID(id string) ExpectedDiagnostic {
	e.ID = id
	return e
}

// WithHighlight expects a single highlighted fragment. Kept as a
// convenience for the common one-highlight case; it is equivalent to
// WithHighlights with one element.
func (e ExpectedDiagnostic) WithHighlight(text string) ExpectedDiagnostic {
	return e.WithHighlights(text)
}

// WithHighlights expects the diagnostic's highlighted fragments to render
// (trivia trimmed) exactly to texts, in order.
func (e ExpectedDiagnostic) WithHighlights(texts ...string) ExpectedDiagnostic {
	if e.Highlights == nil {
		e.Highlights = []string{}
	}
	e.Highlights = append(e.Highlights, texts...)
	return e
}

func (e ExpectedDiagnostic) WithNote(message string, line, col uint32) ExpectedDiagnostic {
	e.Notes = append(e.Notes, ExpectedNote{Message: message, Line: line, Col: col})
	return e
}

// WithFixIt expects a fix-it with the given message. Only the message is
// compared; fix-it edits are verified through the fixed-source comparison.
func (e ExpectedDiagnostic) WithFixIt(message string) ExpectedDiagnostic {
	e.FixIts = append(e.FixIts, message)
	return e
}
