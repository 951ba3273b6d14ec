package testkit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"graft/internal/diag"
	"graft/internal/diagfmt"
	"graft/internal/fix"
	"graft/internal/macro"
	"graft/internal/parser"
	"graft/internal/source"
	"graft/internal/syntax"
)

// Spec is one complete verification: expand Source with Macros, expect the
// rendering Expanded, the given Diagnostics (matched by index), and, when
// FixedSource is non-empty, the result of applying selected fix-its to the
// original source.
//
// ApplyFixIts is an allow-list of fix-it messages to apply; when nil, the
// first fix-it of every diagnostic is applied instead. It only matters when
// FixedSource is set.
type Spec struct {
	Source      string
	Expanded    string
	Diagnostics []ExpectedDiagnostic
	Macros      macro.Table
	ApplyFixIts []string
	FixedSource string
	Module      string
	FileName    string
	IndentWidth int
}

// Sink receives one message per detected mismatch. How failures surface
// (test errors, collected reports) is the sink's concern.
type Sink interface {
	Fail(msg string)
}

// Recorder is a Sink that collects failure messages for inspection.
type Recorder struct {
	Failures []string
}

func (r *Recorder) Fail(msg string) {
	r.Failures = append(r.Failures, msg)
}

// Verify runs the spec and reports every mismatch as a test error anchored
// at the caller. An original source that does not parse is fatal.
func Verify(t testing.TB, spec Spec) {
	t.Helper()
	var rec Recorder
	if err := Run(&rec, spec); err != nil {
		t.Fatalf("%v", err)
	}
	for _, msg := range rec.Failures {
		t.Error(msg)
	}
}

// Run executes the verification pipeline: parse, expand, check the
// expansion parses cleanly, compare the expanded text, match diagnostics,
// and apply fix-its when requested. Every mismatch goes to the sink; the
// returned error is non-nil only when the original source itself fails to
// parse.
func Run(sink Sink, spec Spec) error {
	if spec.FileName == "" {
		spec.FileName = "test.gr"
	}
	if spec.Module == "" {
		spec.Module = "main"
	}
	if spec.IndentWidth <= 0 {
		spec.IndentWidth = 4
	}

	fs := source.NewFileSet()
	b := syntax.NewBuilder(256)
	res := parser.Parse(fs, b, spec.FileName, []byte(spec.Source))
	if res.Bag.HasErrors() {
		return fmt.Errorf("testkit: original source does not parse:\n%s",
			diag.FormatGolden(res.Bag.Items(), fs, false))
	}
	fileID, _ := fs.GetLatest(spec.FileName)

	ctx := macro.NewContext(b, fs, fileID, macro.Options{
		Module:   spec.Module,
		FileName: spec.FileName,
		Indent:   spec.IndentWidth,
	})
	expanded := macro.Expand(ctx, res.File, spec.Macros)
	expandedText := b.Description(expanded)

	checkWellFormed(sink, b, expanded, expandedText)
	compareText(sink, "expanded source",
		trimBlankLines(spec.Expanded), trimBlankLines(expandedText))

	actual := ctx.Bag().Items()
	if dropped := ctx.Bag().Dropped(); dropped > 0 {
		// Past the bag limit the actual list is incomplete, so a count
		// comparison would under-report; say so instead of matching.
		sink.Fail(fmt.Sprintf("%d diagnostics (%d more dropped past the limit of %d), expected %d:\n%s",
			len(actual), dropped, ctx.Bag().Cap(), len(spec.Diagnostics),
			diag.FormatGolden(actual, fs, true)))
	} else if len(actual) != len(spec.Diagnostics) {
		sink.Fail(fmt.Sprintf("%d diagnostics, expected %d:\n%s",
			len(actual), len(spec.Diagnostics), diag.FormatGolden(actual, fs, true)))
	} else {
		m := &matcher{b: b, fs: fs, sink: sink}
		for i, a := range actual {
			m.matchDiagnostic(i, a, spec.Diagnostics[i])
		}
	}

	if spec.FixedSource != "" {
		applyFixIts(sink, spec, b, ctx, fs.Get(fileID).Content, actual)
	}
	return nil
}

// checkWellFormed reparses the expanded rendering; macro output that does
// not parse cleanly is reported with the annotated diagnostics and the raw
// expanded tree, independent of whether the text matched expectations.
func checkWellFormed(sink Sink, b *syntax.Builder, expanded syntax.NodeID, text string) {
	refs := source.NewFileSet()
	reb := syntax.NewBuilder(256)
	res := parser.Parse(refs, reb, "expanded.gr", []byte(text))
	if !res.Bag.HasErrors() {
		return
	}
	var sb strings.Builder
	sb.WriteString("macro expansion produced invalid syntax:\n")
	diagfmt.Pretty(&sb, res.Bag, refs, diagfmt.PrettyOpts{ShowNotes: true})
	sb.WriteString("expanded tree:\n")
	diagfmt.DumpTree(&sb, b, expanded)
	sink.Fail(sb.String())
}

func compareText(sink Sink, what, want, got string) {
	if want == got {
		return
	}
	diffText, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		diffText = ""
	}
	sink.Fail(fmt.Sprintf("%s mismatch:\n%sactual:\n%s", what, diffText, got))
}

// applyFixIts selects fix-its, extracts their edits against the original
// source, applies them, and compares the patched text. Extraction and
// application errors (overlapping edits included) are failures, not panics.
// src must be the file set's normalized content, not the raw input: spans
// are assigned after BOM stripping and CRLF rewriting, so applying against
// the raw bytes would shift every edit and corrupt unedited ranges.
func applyFixIts(sink Sink, spec Spec, b *syntax.Builder, ctx *macro.ExpansionContext, src []byte, diags []diag.Diagnostic) {
	allowed := make(map[string]bool, len(spec.ApplyFixIts))
	for _, msg := range spec.ApplyFixIts {
		allowed[msg] = true
	}

	var changes []diag.Change
	for _, d := range diags {
		if spec.ApplyFixIts == nil {
			if len(d.Fixes) > 0 {
				changes = append(changes, d.Fixes[0].Changes...)
			}
			continue
		}
		for _, f := range d.Fixes {
			if allowed[f.Title] {
				changes = append(changes, f.Changes...)
			}
		}
	}

	edits, err := fix.ExtractAll(b, ctx, changes)
	if err != nil {
		sink.Fail(fmt.Sprintf("fix-it extraction failed: %v", err))
		return
	}
	out, err := fix.Apply(src, edits)
	if err != nil {
		sink.Fail(fmt.Sprintf("fix-it application failed: %v", err))
		return
	}
	compareText(sink, "fixed source",
		trimTrailing(spec.FixedSource), trimTrailing(string(out)))
}

// trimBlankLines strips the leading and trailing runs of blank lines, so
// expectations written as raw string literals need not reproduce the exact
// surrounding newlines.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// trimTrailing removes per-line trailing whitespace and final newlines;
// leading whitespace stays significant.
func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
