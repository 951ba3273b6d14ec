package diag

import (
	"graft/internal/source"
	"graft/internal/syntax"
)

// Note is a secondary message attached to a diagnostic, anchored at its own
// span.
type Note struct {
	Span source.Span
	Msg  string
}

// Fix is a suggested correction attached to a diagnostic. Title is the
// user-facing message; Changes describe the structural edits to perform.
type Fix struct {
	Title   string
	Changes []Change
}

// Diagnostic is the central record produced by the lexer, the parser, and
// macro implementations. Primary is the anchor span, already expressed in
// original-source coordinates by the reporting context. Highlights optionally
// reference the tree nodes the diagnostic calls out.
type Diagnostic struct {
	Severity   Severity
	Code       Code
	Message    string
	Primary    source.Span
	Highlights []syntax.NodeID
	Notes      []Note
	Fixes      []Fix
}
