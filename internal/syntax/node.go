package syntax

import (
	"graft/internal/source"
	"graft/internal/token"
)

// NodeID identifies a node inside a Builder's arena.
type NodeID uint32

// NoNodeID is the invalid node id.
const NoNodeID NodeID = 0

// IsValid reports whether the id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// Kind classifies syntax nodes.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindToken is a leaf wrapping a single token with its trivia.
	KindToken
	KindFile
	KindLetItem
	KindFnItem
	KindParamList
	KindBlock
	KindExprStmt
	// KindMacroItem is a freestanding macro invocation in item position.
	KindMacroItem
	KindNameExpr
	KindLiteralExpr
	KindUnaryExpr
	KindBinaryExpr
	KindCallExpr
	// KindParenExpr covers grouping parens and tuple expressions.
	KindParenExpr
	// KindMacroExpr is a macro invocation in expression position.
	KindMacroExpr
	KindArgList
	// KindError wraps tokens skipped during parser recovery.
	KindError
)

var kindNames = map[Kind]string{
	KindInvalid:     "Invalid",
	KindToken:       "Token",
	KindFile:        "File",
	KindLetItem:     "LetItem",
	KindFnItem:      "FnItem",
	KindParamList:   "ParamList",
	KindBlock:       "Block",
	KindExprStmt:    "ExprStmt",
	KindMacroItem:   "MacroItem",
	KindNameExpr:    "NameExpr",
	KindLiteralExpr: "LiteralExpr",
	KindUnaryExpr:   "UnaryExpr",
	KindBinaryExpr:  "BinaryExpr",
	KindCallExpr:    "CallExpr",
	KindParenExpr:   "ParenExpr",
	KindMacroExpr:   "MacroExpr",
	KindArgList:     "ArgList",
	KindError:       "Error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Node is a single tree node. Span is the full span including the trivia of
// the node's first and last tokens. Nodes built from real source carry spans
// in that file's coordinate space; nodes built during macro expansion carry
// synthetic spans relative to the node itself (File == source.NoFileID).
type Node struct {
	Kind     Kind
	Span     source.Span
	Tok      token.Token // set when Kind == KindToken
	Children []NodeID
}

// IsLeaf reports whether the node wraps a single token.
func (n *Node) IsLeaf() bool { return n.Kind == KindToken }
