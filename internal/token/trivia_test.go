package token

import (
	"testing"

	"graft/internal/source"
)

func TestTriviaText(t *testing.T) {
	run := []Trivia{
		{Kind: TriviaLineComment, Text: "// hi"},
		Newline(),
		Spaces(2),
	}
	if got := TriviaText(run); got != "// hi\n  " {
		t.Errorf("TriviaText = %q", got)
	}
	if got := TriviaText(nil); got != "" {
		t.Errorf("TriviaText(nil) = %q, want empty", got)
	}
}

func TestTokenFullSpan(t *testing.T) {
	tok := Token{
		Kind:     Ident,
		Span:     source.Span{File: 1, Start: 4, End: 7},
		Text:     "foo",
		Leading:  []Trivia{Spaces(4)},
		Trailing: []Trivia{Spaces(1), Newline()},
	}
	full := tok.FullSpan()
	if full.Start != 0 || full.End != 9 {
		t.Errorf("FullSpan = %v, want 0-9", full)
	}
	if got := tok.FullText(); got != "    foo \n" {
		t.Errorf("FullText = %q", got)
	}
}
