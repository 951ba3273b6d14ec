package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"graft/internal/diag"
	"graft/internal/source"
)

// Pretty formats every diagnostic in the bag in annotated-source form.
// ColorAuto resolves against w: severity labels are colored when w is a
// terminal. Callers wanting stable output sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if opts.Color == ColorAuto {
		opts.Color = ColorNever
		if AutoColor(w) {
			opts.Color = ColorAlways
		}
	}
	for _, d := range bag.Items() {
		fmt.Fprint(w, Annotate(fs, d, opts))
	}
}

// Annotate renders one diagnostic:
//
//	<path>:<line>:<col>: <severity>[<CODE>]: <message>
//	  <source line>
//	  <caret underline over the primary span>
//
// followed by its notes (and fix titles when enabled). Diagnostics with a
// detached primary span get the header only. Annotate has no writer to
// probe, so ColorAuto renders plain; use Pretty for terminal detection.
func Annotate(fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) string {
	var sb strings.Builder

	sb.WriteString(header(fs, d.Primary, opts))
	sb.WriteString(": ")
	sb.WriteString(paintSeverity(d.Severity, opts.Color == ColorAlways))
	sb.WriteString(fmt.Sprintf("[%s]: %s\n", d.Code.ID(), d.Message))
	writeSnippet(&sb, fs, d.Primary)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString(header(fs, n.Span, opts))
			sb.WriteString(": note: ")
			sb.WriteString(n.Msg)
			sb.WriteByte('\n')
			writeSnippet(&sb, fs, n.Span)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(&sb, "  fix: %s\n", f.Title)
		}
	}
	return sb.String()
}

func header(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<detached>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(opts.PathMode.String(), opts.BaseDir), start.Line, start.Col)
}

// writeSnippet prints the first line the span touches plus a caret
// underline. Spans reaching past the line end are underlined to the line
// end only.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}

	sb.WriteString("  ")
	sb.WriteString(line)
	sb.WriteByte('\n')

	prefix := int(start.Col) - 1
	if prefix > len(line) {
		prefix = len(line)
	}
	span := len(line) - prefix
	if end.Line == start.Line && int(end.Col)-1-prefix < span {
		span = int(end.Col) - 1 - prefix
	}
	if span < 1 {
		span = 1
	}

	pad := runewidth.StringWidth(line[:prefix])
	width := runewidth.StringWidth(line[prefix:min(prefix+span, len(line))])
	if width < 1 {
		width = 1
	}
	sb.WriteString("  ")
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString("^")
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	sb.WriteByte('\n')
}

func paintSeverity(sev diag.Severity, colored bool) string {
	label := strings.ToLower(sev.String())
	if !colored {
		return label
	}
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c.Sprint(label)
}
