package token

import (
	"graft/internal/source"
)

// Token represents a single source token with its location and surrounding
// trivia. Span covers the token text only; FullSpan additionally covers the
// attached leading and trailing trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwLet, KwFn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// LeadingLen returns the byte length of the leading trivia run.
func (t Token) LeadingLen() uint32 {
	var n uint32
	for _, tr := range t.Leading {
		n += uint32(len(tr.Text))
	}
	return n
}

// TrailingLen returns the byte length of the trailing trivia run.
func (t Token) TrailingLen() uint32 {
	var n uint32
	for _, tr := range t.Trailing {
		n += uint32(len(tr.Text))
	}
	return n
}

// FullSpan covers the token together with its leading and trailing trivia.
// Detached tokens (no file) get a self-relative span starting at zero.
func (t Token) FullSpan() source.Span {
	if t.Span.Synthetic() {
		return source.Span{End: uint32(len(t.FullText()))}
	}
	return source.Span{
		File:  t.Span.File,
		Start: t.Span.Start - t.LeadingLen(),
		End:   t.Span.End + t.TrailingLen(),
	}
}

// FullText renders leading trivia, token text, and trailing trivia verbatim.
func (t Token) FullText() string {
	return TriviaText(t.Leading) + t.Text + TriviaText(t.Trailing)
}
