package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"graft/internal/syntax"
)

// DumpTree writes an indented one-node-per-line dump of the subtree rooted
// at id. Leaves show their token text; interior nodes show kind and span.
func DumpTree(w io.Writer, b *syntax.Builder, id syntax.NodeID) {
	dumpNode(w, b, id, 0)
}

func dumpNode(w io.Writer, b *syntax.Builder, id syntax.NodeID, depth int) {
	if !id.IsValid() {
		return
	}
	n := b.Get(id)
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(w, "%s%s %q @%s\n", indent, n.Tok.Kind, n.Tok.Text, n.Span)
		return
	}
	fmt.Fprintf(w, "%s%s @%s\n", indent, n.Kind, n.Span)
	for _, c := range n.Children {
		dumpNode(w, b, c, depth+1)
	}
}
