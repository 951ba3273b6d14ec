// Package macro defines the macro interfaces, the macro table, and the
// expander that rewrites syntax trees by replacing invocation nodes with
// macro output. Provenance for every node introduced or adopted during
// expansion is recorded in the ExpansionContext so later consumers can map
// expanded positions back to the original source.
package macro

import (
	"graft/internal/source"
	"graft/internal/syntax"
)

// Macro is the common marker for macro implementations. Concrete macros
// additionally implement ExpressionMacro, DeclarationMacro, or both; the
// expander dispatches on the invocation position.
type Macro interface {
	// Description is a short human-readable summary used in diagnostics.
	Description() string
}

// ExpressionMacro expands an invocation appearing in expression position
// into a single replacement expression node.
type ExpressionMacro interface {
	Macro
	ExpandExpression(ctx *ExpansionContext, inv Invocation) (syntax.NodeID, error)
}

// DeclarationMacro expands a freestanding invocation in item position into
// zero or more replacement items.
type DeclarationMacro interface {
	Macro
	ExpandDeclarations(ctx *ExpansionContext, inv Invocation) ([]syntax.NodeID, error)
}

// Table maps macro name (without the leading '#') to its implementation.
type Table map[string]Macro

// Invocation describes one macro call site handed to an implementation.
// Node is the invocation node itself; Args are the argument expressions in
// order. NameSpan anchors diagnostics about the macro name.
type Invocation struct {
	Node     syntax.NodeID
	Name     string
	NameSpan source.Span
	Args     []syntax.NodeID
}
