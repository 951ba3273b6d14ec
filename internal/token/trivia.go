package token

import "graft/internal/source"

// TriviaKind classifies whitespace and comments attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is whitespace or comment text that surrounds a token without being
// semantically part of it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Spaces builds space trivia of the given width.
func Spaces(n int) Trivia {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return Trivia{Kind: TriviaSpace, Text: string(b)}
}

// Newline is a single line-feed trivia piece.
func Newline() Trivia {
	return Trivia{Kind: TriviaNewline, Text: "\n"}
}

// TriviaText concatenates the raw text of a trivia run.
func TriviaText(trivia []Trivia) string {
	if len(trivia) == 0 {
		return ""
	}
	var n int
	for _, tr := range trivia {
		n += len(tr.Text)
	}
	buf := make([]byte, 0, n)
	for _, tr := range trivia {
		buf = append(buf, tr.Text...)
	}
	return string(buf)
}
