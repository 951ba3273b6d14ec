package diag

import (
	"graft/internal/syntax"
	"graft/internal/token"
)

// ChangeKind enumerates the closed set of structural fix-it edits.
type ChangeKind uint8

const (
	// ChangeReplaceNode swaps a whole node, trivia included, for a new one.
	ChangeReplaceNode ChangeKind = iota
	// ChangeReplaceLeadingTrivia swaps only the leading trivia of a node's
	// first token.
	ChangeReplaceLeadingTrivia
	// ChangeReplaceTrailingTrivia swaps only the trailing trivia of a node's
	// last token.
	ChangeReplaceTrailingTrivia
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeReplaceNode:
		return "replace"
	case ChangeReplaceLeadingTrivia:
		return "replace-leading-trivia"
	case ChangeReplaceTrailingTrivia:
		return "replace-trailing-trivia"
	}
	return "unknown"
}

// Change is one structural fix-it edit. Node always references the node being
// changed; exactly one of NewNode (ChangeReplaceNode) or NewTrivia (the two
// trivia kinds) carries the replacement payload.
type Change struct {
	Kind      ChangeKind
	Node      syntax.NodeID
	NewNode   syntax.NodeID
	NewTrivia []token.Trivia
}

// ReplaceNode builds a whole-node replacement change.
func ReplaceNode(old, new syntax.NodeID) Change {
	return Change{Kind: ChangeReplaceNode, Node: old, NewNode: new}
}

// ReplaceLeadingTrivia builds a leading-trivia replacement change.
func ReplaceLeadingTrivia(node syntax.NodeID, trivia []token.Trivia) Change {
	return Change{Kind: ChangeReplaceLeadingTrivia, Node: node, NewTrivia: trivia}
}

// ReplaceTrailingTrivia builds a trailing-trivia replacement change.
func ReplaceTrailingTrivia(node syntax.NodeID, trivia []token.Trivia) Change {
	return Change{Kind: ChangeReplaceTrailingTrivia, Node: node, NewTrivia: trivia}
}
