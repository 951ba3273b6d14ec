package syntax

import (
	"graft/internal/source"
	"graft/internal/token"
)

// Builder owns the node arena for one tree (plus any detached subtrees built
// against it, e.g. during macro expansion).
type Builder struct {
	Nodes *Arena[Node]
}

// NewBuilder creates a Builder with an arena sized by capHint.
func NewBuilder(capHint uint) *Builder {
	return &Builder{
		Nodes: NewArena[Node](capHint),
	}
}

// Get returns the node for id, or nil for NoNodeID.
func (b *Builder) Get(id NodeID) *Node {
	return b.Nodes.Get(uint32(id))
}

// Leaf allocates a token leaf. The node span is the token's full span.
func (b *Builder) Leaf(tok token.Token) NodeID {
	return NodeID(b.Nodes.Allocate(Node{
		Kind: KindToken,
		Span: tok.FullSpan(),
		Tok:  tok,
	}))
}

// LeafOf allocates a detached token leaf with no trivia. Macro
// implementations use it to build fresh expansion output.
func (b *Builder) LeafOf(kind token.Kind, text string) NodeID {
	return b.Leaf(token.Token{Kind: kind, Text: text})
}

// LeafWith is LeafOf with explicit leading and trailing trivia.
func (b *Builder) LeafWith(kind token.Kind, text string, leading, trailing []token.Trivia) NodeID {
	return b.Leaf(token.Token{Kind: kind, Text: text, Leading: leading, Trailing: trailing})
}

// New allocates an interior node over children. When every child span lives
// in the same real file the node span covers them; otherwise the node is
// detached and gets a self-relative synthetic span.
func (b *Builder) New(kind Kind, children ...NodeID) NodeID {
	n := Node{Kind: kind, Children: children}
	n.Span = b.coverSpan(children)
	if n.Span.Synthetic() {
		n.Span.End = uint32(len(b.render(&n, true, true)))
	}
	return NodeID(b.Nodes.Allocate(n))
}

// WithChildren allocates a copy of id with a new child list. Used when
// rewriting a tree bottom-up without mutating the original nodes.
func (b *Builder) WithChildren(id NodeID, children []NodeID) NodeID {
	old := b.Get(id)
	return b.New(old.Kind, children...)
}

func (b *Builder) coverSpan(children []NodeID) source.Span {
	var sp source.Span
	have := false
	for _, c := range children {
		cs := b.Get(c).Span
		if cs.Synthetic() {
			return source.Span{}
		}
		if !have {
			sp = cs
			have = true
			continue
		}
		if cs.File != sp.File {
			return source.Span{}
		}
		sp = sp.Cover(cs)
	}
	return sp
}

// Clone deep-copies the subtree rooted at id and returns the new root.
// visit, when non-nil, is called for every (old, new) node pair; macro
// expansion uses it to record provenance for adopted nodes.
func (b *Builder) Clone(id NodeID, visit func(old, clone NodeID)) NodeID {
	old := b.Get(id)
	n := Node{Kind: old.Kind, Span: old.Span, Tok: old.Tok}
	if len(old.Children) > 0 {
		n.Children = make([]NodeID, len(old.Children))
		for i, c := range old.Children {
			n.Children[i] = b.Clone(c, visit)
		}
	}
	clone := NodeID(b.Nodes.Allocate(n))
	if visit != nil {
		visit(id, clone)
	}
	return clone
}

// Walk visits the subtree rooted at id in preorder. Returning false from f
// skips the node's children.
func (b *Builder) Walk(id NodeID, f func(NodeID) bool) {
	if !id.IsValid() {
		return
	}
	if !f(id) {
		return
	}
	for _, c := range b.Get(id).Children {
		b.Walk(c, f)
	}
}

// FirstToken returns the leftmost leaf of the subtree, or NoNodeID.
func (b *Builder) FirstToken(id NodeID) NodeID {
	n := b.Get(id)
	if n == nil {
		return NoNodeID
	}
	if n.IsLeaf() {
		return id
	}
	for _, c := range n.Children {
		if leaf := b.FirstToken(c); leaf.IsValid() {
			return leaf
		}
	}
	return NoNodeID
}

// LastToken returns the rightmost leaf of the subtree, or NoNodeID.
func (b *Builder) LastToken(id NodeID) NodeID {
	n := b.Get(id)
	if n == nil {
		return NoNodeID
	}
	if n.IsLeaf() {
		return id
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if leaf := b.LastToken(n.Children[i]); leaf.IsValid() {
			return leaf
		}
	}
	return NoNodeID
}

// ContentStart is the offset, in the node's own coordinate space, where the
// node's text begins after the leading trivia of its first token.
func (b *Builder) ContentStart(id NodeID) uint32 {
	n := b.Get(id)
	if leaf := b.FirstToken(id); leaf.IsValid() {
		return n.Span.Start + b.Get(leaf).Tok.LeadingLen()
	}
	return n.Span.Start
}

// ContentEnd is the offset where the node's text ends, before the trailing
// trivia of its last token.
func (b *Builder) ContentEnd(id NodeID) uint32 {
	n := b.Get(id)
	if leaf := b.LastToken(id); leaf.IsValid() {
		return n.Span.End - b.Get(leaf).Tok.TrailingLen()
	}
	return n.Span.End
}
