// Package diagfmt renders diagnostics and syntax trees for humans: the
// annotated-source form with caret underlines, and an indented tree dump.
package diagfmt

import (
	"io"
	"os"

	"golang.org/x/term"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ColorMode controls colorizing of severity labels.
type ColorMode uint8

const (
	// ColorAuto colors when the output writer is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     ColorMode
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
	BaseDir   string
}

// AutoColor reports whether w is a terminal, for the common
// "color on when interactive" default.
func AutoColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}
