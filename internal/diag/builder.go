package diag

import (
	"graft/internal/source"
	"graft/internal/syntax"
)

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, changes ...Change) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Changes: changes})
	return d
}

func (d Diagnostic) WithHighlight(nodes ...syntax.NodeID) Diagnostic {
	d.Highlights = append(d.Highlights, nodes...)
	return d
}
