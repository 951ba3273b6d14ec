package macro

import (
	"fmt"

	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/syntax"
)

// Expand rewrites the tree rooted at file, replacing every macro invocation
// with its expansion. Unknown macros, role mismatches, and implementation
// errors become diagnostics in the context's bag and leave the invocation
// node in place. The returned root is the input when nothing expanded.
func Expand(ctx *ExpansionContext, file syntax.NodeID, table Table) syntax.NodeID {
	e := &expander{ctx: ctx, table: table}
	b := ctx.Builder

	n := b.Get(file)
	items := make([]syntax.NodeID, 0, len(n.Children))
	changed := false
	for _, c := range n.Children {
		if b.Get(c).Kind == syntax.KindMacroItem {
			out := e.expandItem(c)
			items = append(items, out...)
			if len(out) != 1 || out[0] != c {
				changed = true
			}
			continue
		}
		nc := e.rewrite(c)
		items = append(items, nc)
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return file
	}
	return b.WithChildren(file, items)
}

type expander struct {
	ctx   *ExpansionContext
	table Table
}

// rewrite expands invocations bottom-up inside an arbitrary subtree,
// reallocating interior nodes only along changed paths.
func (e *expander) rewrite(id syntax.NodeID) syntax.NodeID {
	b := e.ctx.Builder
	n := b.Get(id)
	if n.IsLeaf() {
		return id
	}
	if n.Kind == syntax.KindMacroExpr {
		return e.expandExpr(id)
	}
	if n.Kind == syntax.KindBlock {
		return e.rewriteBlock(id)
	}
	changed := false
	children := make([]syntax.NodeID, len(n.Children))
	for i, c := range n.Children {
		children[i] = e.rewrite(c)
		if children[i] != c {
			changed = true
		}
	}
	if !changed {
		return id
	}
	return b.WithChildren(id, children)
}

// rewriteBlock handles item-position invocations inside a block, where one
// statement may expand to several.
func (e *expander) rewriteBlock(id syntax.NodeID) syntax.NodeID {
	b := e.ctx.Builder
	n := b.Get(id)
	stmts := make([]syntax.NodeID, 0, len(n.Children))
	changed := false
	for _, c := range n.Children {
		if b.Get(c).Kind == syntax.KindMacroItem {
			out := e.expandItem(c)
			stmts = append(stmts, out...)
			if len(out) != 1 || out[0] != c {
				changed = true
			}
			continue
		}
		nc := e.rewrite(c)
		stmts = append(stmts, nc)
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return id
	}
	return b.WithChildren(id, stmts)
}

func (e *expander) invocation(id syntax.NodeID) Invocation {
	b := e.ctx.Builder
	inv := Invocation{
		Node: id,
		Name: b.MacroName(id),
		Args: b.MacroArgs(id),
	}
	inv.NameSpan, _ = b.MacroNameSpan(id)
	return inv
}

func (e *expander) expandExpr(id syntax.NodeID) syntax.NodeID {
	b := e.ctx.Builder
	origin := e.ctx.SpanOf(id)

	// Nested invocations in arguments expand first.
	node := id
	n := b.Get(id)
	children := make([]syntax.NodeID, len(n.Children))
	changed := false
	for i, c := range n.Children {
		children[i] = e.rewrite(c)
		if children[i] != c {
			changed = true
		}
	}
	if changed {
		node = b.WithChildren(id, children)
		e.ctx.RecordOrigin(node, origin)
	}

	inv := e.invocation(node)
	impl, ok := e.table[inv.Name]
	if !ok {
		e.ctx.Report(diag.NewError(diag.MacUnknownMacro, e.nameSpanOr(inv, origin),
			fmt.Sprintf("unknown macro %q", inv.Name)).WithHighlight(id))
		return node
	}
	em, ok := impl.(ExpressionMacro)
	if !ok {
		e.ctx.Report(diag.NewError(diag.MacWrongRole, e.nameSpanOr(inv, origin),
			fmt.Sprintf("macro %q cannot expand in expression position", inv.Name)).WithHighlight(id))
		return node
	}
	out, err := em.ExpandExpression(e.ctx, inv)
	if err != nil {
		e.ctx.Report(diag.NewError(diag.MacExpansionFailed, origin,
			fmt.Sprintf("macro %q: %v", inv.Name, err)).WithHighlight(id))
		return node
	}
	e.anchor(out, origin)
	return out
}

func (e *expander) expandItem(id syntax.NodeID) []syntax.NodeID {
	origin := e.ctx.SpanOf(id)
	inv := e.invocation(id)
	keep := []syntax.NodeID{id}

	impl, ok := e.table[inv.Name]
	if !ok {
		e.ctx.Report(diag.NewError(diag.MacUnknownMacro, e.nameSpanOr(inv, origin),
			fmt.Sprintf("unknown macro %q", inv.Name)).WithHighlight(id))
		return keep
	}
	dm, ok := impl.(DeclarationMacro)
	if !ok {
		e.ctx.Report(diag.NewError(diag.MacWrongRole, e.nameSpanOr(inv, origin),
			fmt.Sprintf("macro %q cannot expand in item position", inv.Name)).WithHighlight(id))
		return keep
	}
	out, err := dm.ExpandDeclarations(e.ctx.Child(), inv)
	if err != nil {
		e.ctx.Report(diag.NewError(diag.MacExpansionFailed, origin,
			fmt.Sprintf("macro %q: %v", inv.Name, err)).WithHighlight(id))
		return keep
	}
	for _, o := range out {
		e.anchor(o, origin)
	}
	return out
}

// anchor records the invocation span as the origin of every expansion-output
// node that lacks provenance, so later position queries on synthetic nodes
// resolve to the macro call site.
func (e *expander) anchor(root syntax.NodeID, origin source.Span) {
	if origin.Synthetic() {
		return
	}
	e.ctx.Builder.Walk(root, func(id syntax.NodeID) bool {
		if _, ok := e.ctx.OriginalSpan(id); !ok {
			if e.ctx.Builder.Get(id).Span.Synthetic() {
				e.ctx.provenance[id] = origin
			}
		}
		return true
	})
}

func (e *expander) nameSpanOr(inv Invocation, fallback source.Span) source.Span {
	if !inv.NameSpan.Synthetic() {
		return inv.NameSpan
	}
	return fallback
}
