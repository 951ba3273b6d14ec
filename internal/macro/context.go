package macro

import (
	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/syntax"
)

// Options configures an ExpansionContext. Zero values fall back to sensible
// defaults: module "main", file name taken from the file set, indent 4, and
// a fresh bag.
type Options struct {
	Module   string
	FileName string
	Indent   int
	Bag      *diag.Bag
}

// ExpansionContext carries the shared state of one expansion run: the node
// arena, the file set, the diagnostic bag, and the provenance table mapping
// nodes produced during expansion back to original-source spans. A context
// is owned by exactly one verification call and discarded with it.
type ExpansionContext struct {
	Builder  *syntax.Builder
	Files    *source.FileSet
	File     source.FileID
	Module   string
	FileName string
	Indent   int

	bag        *diag.Bag
	provenance map[syntax.NodeID]source.Span
	parent     *ExpansionContext
}

func NewContext(b *syntax.Builder, fs *source.FileSet, file source.FileID, opts Options) *ExpansionContext {
	if opts.Module == "" {
		opts.Module = "main"
	}
	if opts.FileName == "" {
		if f := fs.Get(file); f != nil {
			opts.FileName = f.Path
		}
	}
	if opts.Indent <= 0 {
		opts.Indent = 4
	}
	if opts.Bag == nil {
		opts.Bag = diag.NewBag(64)
	}
	return &ExpansionContext{
		Builder:    b,
		Files:      fs,
		File:       file,
		Module:     opts.Module,
		FileName:   opts.FileName,
		Indent:     opts.Indent,
		bag:        opts.Bag,
		provenance: make(map[syntax.NodeID]source.Span),
	}
}

// Child derives a lexically scoped context for nested expansion (e.g. a
// declaration macro expanding members). The child shares the top-level bag
// and provenance table so nested diagnostics still resolve against the one
// original source.
func (c *ExpansionContext) Child() *ExpansionContext {
	child := *c
	child.parent = c
	return &child
}

// Bag exposes the shared diagnostic bag.
func (c *ExpansionContext) Bag() *diag.Bag {
	return c.bag
}

// Report adds a diagnostic to the shared bag. Callers anchor Primary in
// original-source coordinates, typically via SpanOf.
func (c *ExpansionContext) Report(d diag.Diagnostic) {
	c.bag.Add(d)
}

// RecordOrigin links a node produced during expansion to the original-source
// span it stands for. Later records do not overwrite earlier ones.
func (c *ExpansionContext) RecordOrigin(id syntax.NodeID, origin source.Span) {
	if !id.IsValid() || origin.Synthetic() {
		return
	}
	if _, ok := c.provenance[id]; ok {
		return
	}
	c.provenance[id] = origin
}

// OriginalSpan returns the recorded provenance span for id, if any.
func (c *ExpansionContext) OriginalSpan(id syntax.NodeID) (source.Span, bool) {
	sp, ok := c.provenance[id]
	return sp, ok
}

// SpanOf resolves a node to original-source coordinates: the recorded
// provenance span when one exists, the node's own span otherwise.
func (c *ExpansionContext) SpanOf(id syntax.NodeID) source.Span {
	if sp, ok := c.provenance[id]; ok {
		return sp
	}
	return c.Builder.Get(id).Span
}

// OriginalOffset maps off, expressed in the node's own coordinate space, to
// a file and offset in the original source.
func (c *ExpansionContext) OriginalOffset(id syntax.NodeID, off uint32) (source.FileID, uint32) {
	n := c.Builder.Get(id)
	if orig, ok := c.provenance[id]; ok {
		return orig.File, orig.Start + (off - n.Span.Start)
	}
	return n.Span.File, off
}

// Location resolves a node's original-source start position to line/column.
// Nodes with neither provenance nor a real span yield the zero Location.
func (c *ExpansionContext) Location(id syntax.NodeID) source.Location {
	sp := c.SpanOf(id)
	return c.Files.Locate(sp.File, sp.Start)
}

// Adopt clones an original-source subtree for reuse inside expansion output,
// recording provenance for every cloned node. Adopting an already-adopted
// node carries the existing provenance forward.
func (c *ExpansionContext) Adopt(id syntax.NodeID) syntax.NodeID {
	return c.Builder.Clone(id, func(old, clone syntax.NodeID) {
		if sp, ok := c.provenance[old]; ok {
			c.provenance[clone] = sp
			return
		}
		if sp := c.Builder.Get(old).Span; !sp.Synthetic() {
			c.provenance[clone] = sp
		}
	})
}
