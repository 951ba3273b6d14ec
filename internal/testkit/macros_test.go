package testkit_test

import (
	"fmt"
	"strconv"

	"graft/internal/diag"
	"graft/internal/macro"
	"graft/internal/syntax"
	"graft/internal/token"
)

// stringifyMacro expands #stringify(e) into (e, "e").
type stringifyMacro struct{}

func (stringifyMacro) Description() string { return "pairs an expression with its source text" }

func (stringifyMacro) ExpandExpression(ctx *macro.ExpansionContext, inv macro.Invocation) (syntax.NodeID, error) {
	if len(inv.Args) != 1 {
		return syntax.NoNodeID, fmt.Errorf("expected 1 argument, got %d", len(inv.Args))
	}
	b := ctx.Builder
	text := b.TrimmedDescription(inv.Args[0])
	return b.New(syntax.KindParenExpr,
		b.LeafOf(token.LParen, "("),
		ctx.Adopt(inv.Args[0]),
		b.LeafWith(token.Comma, ",", nil, []token.Trivia{token.Spaces(1)}),
		b.New(syntax.KindLiteralExpr, b.LeafOf(token.StringLit, strconv.Quote(text))),
		b.LeafOf(token.RParen, ")"),
	), nil
}

// oldSumMacro expands #oldSum(a, b) into a + b and warns that the macro is
// deprecated, attaching a fix-it that rewrites the call site.
type oldSumMacro struct{}

func (oldSumMacro) Description() string { return "deprecated addition" }

func (oldSumMacro) ExpandExpression(ctx *macro.ExpansionContext, inv macro.Invocation) (syntax.NodeID, error) {
	if len(inv.Args) != 2 {
		return syntax.NoNodeID, fmt.Errorf("expected 2 arguments, got %d", len(inv.Args))
	}
	b := ctx.Builder
	space := []token.Trivia{token.Spaces(1)}
	repl := b.New(syntax.KindBinaryExpr,
		ctx.Adopt(inv.Args[0]),
		b.LeafWith(token.Plus, "+", space, space),
		ctx.Adopt(inv.Args[1]),
	)
	ctx.Report(diag.NewWarning(diag.MacCustom, ctx.SpanOf(inv.Node), "'#oldSum' is deprecated").
		WithHighlight(inv.Node).
		WithFix("use '+' instead", diag.ReplaceNode(inv.Node, repl)))
	return repl, nil
}

// defineConstantsMacro expands the freestanding #defineConstants into two
// let items.
type defineConstantsMacro struct{}

func (defineConstantsMacro) Description() string { return "declares two constants" }

func (defineConstantsMacro) ExpandDeclarations(ctx *macro.ExpansionContext, inv macro.Invocation) ([]syntax.NodeID, error) {
	b := ctx.Builder
	space := []token.Trivia{token.Spaces(1)}
	item := func(name, value string) syntax.NodeID {
		return b.New(syntax.KindLetItem,
			b.LeafWith(token.KwLet, "let", nil, space),
			b.LeafWith(token.Ident, name, nil, space),
			b.LeafWith(token.Assign, "=", nil, space),
			b.New(syntax.KindLiteralExpr, b.LeafOf(token.IntLit, value)),
			b.LeafWith(token.Semicolon, ";", nil, []token.Trivia{token.Newline()}),
		)
	}
	return []syntax.NodeID{item("a", "1"), item("b", "2")}, nil
}

// hintMacro expands #hint(e) into e and emits a warning with one note
// anchored at the argument.
type hintMacro struct{}

func (hintMacro) Description() string { return "passes an expression through with a hint" }

func (hintMacro) ExpandExpression(ctx *macro.ExpansionContext, inv macro.Invocation) (syntax.NodeID, error) {
	if len(inv.Args) != 1 {
		return syntax.NoNodeID, fmt.Errorf("expected 1 argument, got %d", len(inv.Args))
	}
	ctx.Report(diag.NewWarning(diag.MacCustom, ctx.SpanOf(inv.Node), "hint applied").
		WithNote(ctx.SpanOf(inv.Args[0]), "argument here"))
	return ctx.Adopt(inv.Args[0]), nil
}

// brokenMacro expands into text that cannot reparse.
type brokenMacro struct{}

func (brokenMacro) Description() string { return "produces invalid syntax" }

func (brokenMacro) ExpandExpression(ctx *macro.ExpansionContext, inv macro.Invocation) (syntax.NodeID, error) {
	return ctx.Builder.New(syntax.KindError, ctx.Builder.LeafOf(token.Invalid, "???")), nil
}

var testMacros = macro.Table{
	"stringify":       stringifyMacro{},
	"oldSum":          oldSumMacro{},
	"hint":            hintMacro{},
	"defineConstants": defineConstantsMacro{},
	"broken":          brokenMacro{},
}
