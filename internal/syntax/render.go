package syntax

import (
	"strings"

	"graft/internal/token"
)

// Description renders the subtree to its exact textual form, trivia included.
func (b *Builder) Description(id NodeID) string {
	n := b.Get(id)
	if n == nil {
		return ""
	}
	return b.render(n, true, true)
}

// TrimmedDescription renders the subtree with the surrounding trivia removed:
// the leading trivia of the first token and the trailing trivia of the last
// token are dropped, everything in between stays verbatim.
func (b *Builder) TrimmedDescription(id NodeID) string {
	n := b.Get(id)
	if n == nil {
		return ""
	}
	return b.render(n, false, false)
}

func (b *Builder) render(n *Node, withLeading, withTrailing bool) string {
	var leaves []*Node
	b.collectLeaves(n, &leaves)
	if len(leaves) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, leaf := range leaves {
		t := leaf.Tok
		if i > 0 || withLeading {
			sb.WriteString(token.TriviaText(t.Leading))
		}
		sb.WriteString(t.Text)
		if i < len(leaves)-1 || withTrailing {
			sb.WriteString(token.TriviaText(t.Trailing))
		}
	}
	return sb.String()
}

func (b *Builder) collectLeaves(n *Node, out *[]*Node) {
	if n.IsLeaf() {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children {
		b.collectLeaves(b.Get(c), out)
	}
}
