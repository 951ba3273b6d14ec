package syntax

import (
	"graft/internal/source"
	"graft/internal/token"
)

// MacroName returns the invoked macro's name for a KindMacroExpr or
// KindMacroItem node, or "".
func (b *Builder) MacroName(id NodeID) string {
	leaf := b.macroNameToken(id)
	if !leaf.IsValid() {
		return ""
	}
	return b.Get(leaf).Tok.Text
}

// MacroNameSpan returns the span of the macro name token.
func (b *Builder) MacroNameSpan(id NodeID) (source.Span, bool) {
	leaf := b.macroNameToken(id)
	if !leaf.IsValid() {
		return source.Span{}, false
	}
	return b.Get(leaf).Tok.Span, true
}

func (b *Builder) macroNameToken(id NodeID) NodeID {
	n := b.Get(id)
	if n == nil {
		return NoNodeID
	}
	if n.Kind == KindMacroItem {
		for _, c := range n.Children {
			if b.Get(c).Kind == KindMacroExpr {
				return b.macroNameToken(c)
			}
		}
		return NoNodeID
	}
	if n.Kind != KindMacroExpr {
		return NoNodeID
	}
	for _, c := range n.Children {
		cn := b.Get(c)
		if cn.IsLeaf() && cn.Tok.Kind == token.Ident {
			return c
		}
	}
	return NoNodeID
}

// MacroArgs returns the argument expression nodes of a macro invocation, in
// order.
func (b *Builder) MacroArgs(id NodeID) []NodeID {
	n := b.Get(id)
	if n == nil {
		return nil
	}
	if n.Kind == KindMacroItem {
		for _, c := range n.Children {
			if b.Get(c).Kind == KindMacroExpr {
				return b.MacroArgs(c)
			}
		}
		return nil
	}
	if n.Kind != KindMacroExpr {
		return nil
	}
	for _, c := range n.Children {
		if b.Get(c).Kind == KindArgList {
			return b.exprChildren(c)
		}
	}
	return nil
}

// exprChildren filters out punctuation leaves, leaving expression nodes.
func (b *Builder) exprChildren(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range b.Get(id).Children {
		if !b.Get(c).IsLeaf() {
			out = append(out, c)
		}
	}
	return out
}

// Items returns a file node's item children (everything but the EOF leaf).
func (b *Builder) Items(file NodeID) []NodeID {
	return b.exprChildren(file)
}
