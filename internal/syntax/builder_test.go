package syntax

import (
	"testing"

	"graft/internal/source"
	"graft/internal/token"
)

func tok(kind token.Kind, text string, leading, trailing []token.Trivia) token.Token {
	return token.Token{Kind: kind, Text: text, Leading: leading, Trailing: trailing}
}

func layout(file source.FileID, toks ...token.Token) []token.Token {
	off := uint32(0)
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		off += t.LeadingLen()
		start := off
		off += uint32(len(t.Text))
		t.Span = source.Span{File: file, Start: start, End: off}
		off += t.TrailingLen()
		out[i] = t
	}
	return out
}

func TestDescriptionRoundTrip(t *testing.T) {
	// "let x = 1;" with a comment and uneven spacing.
	src := "// head\nlet  x = 1; // tail\n"
	b := NewBuilder(16)
	toks := layout(1,
		tok(token.KwLet, "let", []token.Trivia{{Kind: token.TriviaLineComment, Text: "// head"}, token.Newline()}, []token.Trivia{token.Spaces(2)}),
		tok(token.Ident, "x", nil, []token.Trivia{token.Spaces(1)}),
		tok(token.Assign, "=", nil, []token.Trivia{token.Spaces(1)}),
		tok(token.IntLit, "1", nil, nil),
		tok(token.Semicolon, ";", nil, []token.Trivia{token.Spaces(1), {Kind: token.TriviaLineComment, Text: "// tail"}, token.Newline()}),
	)

	ids := make([]NodeID, len(toks))
	for i, tk := range toks {
		ids[i] = b.Leaf(tk)
	}
	letItem := b.New(KindLetItem, ids...)

	if got := b.Description(letItem); got != src {
		t.Errorf("Description = %q, want %q", got, src)
	}
	want := "let  x = 1;"
	if got := b.TrimmedDescription(letItem); got != want {
		t.Errorf("TrimmedDescription = %q, want %q", got, want)
	}

	n := b.Get(letItem)
	if n.Span.Start != 0 || n.Span.End != uint32(len(src)) {
		t.Errorf("full span = %v, want 0-%d", n.Span, len(src))
	}
	if got := b.ContentStart(letItem); got != 8 {
		t.Errorf("ContentStart = %d, want 8", got)
	}
	if got := b.ContentEnd(letItem); got != uint32(len(src)-9) {
		t.Errorf("ContentEnd = %d, want %d", got, len(src)-9)
	}
}

func TestSyntheticSpan(t *testing.T) {
	b := NewBuilder(8)
	// Detached nodes (no file) get self-relative spans.
	lp := b.Leaf(tok(token.LParen, "(", nil, nil))
	lit := b.Leaf(tok(token.IntLit, "42", nil, nil))
	rp := b.Leaf(tok(token.RParen, ")", nil, nil))
	paren := b.New(KindParenExpr, lp, lit, rp)

	n := b.Get(paren)
	if !n.Span.Synthetic() {
		t.Fatalf("expected synthetic span, got %v", n.Span)
	}
	if n.Span.Start != 0 || n.Span.End != 4 {
		t.Errorf("synthetic span = %v, want 0-4", n.Span)
	}
	if got := b.Description(paren); got != "(42)" {
		t.Errorf("Description = %q", got)
	}
}

func TestCloneVisitsEveryNode(t *testing.T) {
	b := NewBuilder(8)
	toks := layout(1,
		tok(token.Ident, "x", nil, []token.Trivia{token.Spaces(1)}),
		tok(token.Plus, "+", nil, []token.Trivia{token.Spaces(1)}),
		tok(token.Ident, "y", nil, nil),
	)
	x := b.Leaf(toks[0])
	plus := b.Leaf(toks[1])
	y := b.Leaf(toks[2])
	expr := b.New(KindBinaryExpr, x, plus, y)

	seen := map[NodeID]NodeID{}
	clone := b.Clone(expr, func(old, cl NodeID) { seen[old] = cl })

	if len(seen) != 4 {
		t.Fatalf("expected 4 visited pairs, got %d", len(seen))
	}
	if seen[expr] != clone {
		t.Errorf("root mapping = %d, want %d", seen[expr], clone)
	}
	if b.Description(clone) != b.Description(expr) {
		t.Error("clone must render identically to the original")
	}
	// Clones keep the original spans.
	if b.Get(clone).Span != b.Get(expr).Span {
		t.Error("clone span must match original span")
	}
}

func TestFirstLastToken(t *testing.T) {
	b := NewBuilder(8)
	toks := layout(1,
		tok(token.Ident, "f", nil, nil),
		tok(token.LParen, "(", nil, nil),
		tok(token.RParen, ")", nil, nil),
	)
	f := b.Leaf(toks[0])
	lp := b.Leaf(toks[1])
	rp := b.Leaf(toks[2])
	args := b.New(KindArgList, lp, rp)
	call := b.New(KindCallExpr, f, args)

	if got := b.FirstToken(call); got != f {
		t.Errorf("FirstToken = %d, want %d", got, f)
	}
	if got := b.LastToken(call); got != rp {
		t.Errorf("LastToken = %d, want %d", got, rp)
	}
}
