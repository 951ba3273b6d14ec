package lexer

import (
	"graft/internal/diag"
	"graft/internal/token"
)

// collectLeadingTrivia gathers trivia into lx.hold until a significant token
// or EOF:
//   - runs of ' '/'\t' coalesce into one TriviaSpace
//   - runs of '\n' coalesce into one TriviaNewline
//   - //... up to the newline -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (nested; unterminated is reported and
//     clipped at EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushHold(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushHold(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

// collectTrailingTrivia gathers the trivia that stays on the token's line:
// spaces, block comments, and at most one line comment. It stops before a
// newline; the newline opens the next token's leading trivia.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaSpace, start))
			continue
		}

		if b == '/' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				out = append(out, lx.makeTrivia(token.TriviaLineComment, start))
				// A line comment runs to the end of the line; nothing else
				// can follow it in trailing position.
				break
			}
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
				lx.scanBlockComment()
				out = append(out, lx.makeTrivia(token.TriviaBlockComment, start))
				continue
			}
		}

		break
	}
	return out
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}

	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushHold(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Reset(start)
		lx.scanBlockComment()
		lx.pushHold(token.TriviaBlockComment, start)
		return true

	default:
		// Not a comment; rewind so '/' scans as an operator.
		lx.cursor.Reset(start)
		return false
	}
}

// scanBlockComment consumes a (possibly nested) block comment starting at the
// cursor, reporting when it never closes.
func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
}

func (lx *Lexer) pushHold(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, lx.makeTrivia(kind, start))
}

func (lx *Lexer) makeTrivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
