// Package fix turns structural fix-it changes into concrete text edits in
// original-source coordinates and applies sets of edits to source text.
package fix

import (
	"fmt"

	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/syntax"
	"graft/internal/token"
)

// TextEdit replaces the bytes in Span with NewText. Span is always expressed
// in original-source coordinates.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// Translator resolves a node to its span in original-source coordinates.
// Nodes produced during macro expansion resolve through recorded provenance;
// everything else resolves to its own span. *macro.ExpansionContext
// implements this.
type Translator interface {
	SpanOf(id syntax.NodeID) source.Span
}

// Extract converts one structural change into exactly one text edit.
//
// Whole-node replacement edits the node's full range, trivia included, and
// substitutes the new node's complete rendering. The trivia kinds edit only
// the slice of the range the corresponding trivia occupies; offsets inside
// the node are carried over to the original coordinates by plain arithmetic
// on the translated span.
func Extract(b *syntax.Builder, tr Translator, ch diag.Change) (TextEdit, error) {
	orig := tr.SpanOf(ch.Node)
	n := b.Get(ch.Node)
	if n == nil {
		return TextEdit{}, fmt.Errorf("fix: change references no node")
	}
	switch ch.Kind {
	case diag.ChangeReplaceNode:
		if !ch.NewNode.IsValid() {
			return TextEdit{}, fmt.Errorf("fix: replacement node missing")
		}
		return TextEdit{Span: orig, NewText: b.Description(ch.NewNode)}, nil

	case diag.ChangeReplaceLeadingTrivia:
		lead := b.ContentStart(ch.Node) - n.Span.Start
		return TextEdit{
			Span:    source.Span{File: orig.File, Start: orig.Start, End: orig.Start + lead},
			NewText: token.TriviaText(ch.NewTrivia),
		}, nil

	case diag.ChangeReplaceTrailingTrivia:
		trail := n.Span.End - b.ContentEnd(ch.Node)
		return TextEdit{
			Span:    source.Span{File: orig.File, Start: orig.End - trail, End: orig.End},
			NewText: token.TriviaText(ch.NewTrivia),
		}, nil
	}
	return TextEdit{}, fmt.Errorf("fix: unknown change kind %d", ch.Kind)
}

// ExtractAll extracts one edit per change, in order.
func ExtractAll(b *syntax.Builder, tr Translator, changes []diag.Change) ([]TextEdit, error) {
	edits := make([]TextEdit, 0, len(changes))
	for _, ch := range changes {
		e, err := Extract(b, tr, ch)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}
