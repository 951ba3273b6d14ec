package testkit

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"graft/internal/diag"
	"graft/internal/macro"
)

// Case is one verification loaded from a TOML fixture. Severity and id use
// their string forms ("warning", "MAC4100"); everything else mirrors Spec.
type Case struct {
	Name        string           `toml:"name"`
	Source      string           `toml:"source"`
	Expanded    string           `toml:"expanded"`
	FixedSource string           `toml:"fixed_source"`
	ApplyFixIts []string         `toml:"apply_fixits"`
	Module      string           `toml:"module"`
	FileName    string           `toml:"file_name"`
	IndentWidth int              `toml:"indent_width"`
	Diagnostics []caseDiagnostic `toml:"diagnostic"`
}

type caseDiagnostic struct {
	Message    string     `toml:"message"`
	Line       uint32     `toml:"line"`
	Col        uint32     `toml:"col"`
	Severity   string     `toml:"severity"`
	ID         string     `toml:"id"`
	Highlights []string   `toml:"highlights"`
	FixIts     []string   `toml:"fixits"`
	Notes      []caseNote `toml:"note"`
}

type caseNote struct {
	Message string `toml:"message"`
	Line    uint32 `toml:"line"`
	Col     uint32 `toml:"col"`
}

type caseFile struct {
	Cases []Case `toml:"case"`
}

// LoadCases reads verification cases from a TOML file. Every case needs a
// name and a source.
func LoadCases(path string) ([]Case, error) {
	var cf caseFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("testkit: decode %s: %w", path, err)
	}
	for i, c := range cf.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("testkit: %s: case %d has no name", path, i)
		}
		if c.Source == "" {
			return nil, fmt.Errorf("testkit: %s: case %q has no source", path, c.Name)
		}
	}
	return cf.Cases, nil
}

// Spec converts the fixture form into a runnable Spec bound to a macro
// table.
func (c Case) Spec(macros macro.Table) Spec {
	spec := Spec{
		Source:      c.Source,
		Expanded:    c.Expanded,
		Macros:      macros,
		ApplyFixIts: c.ApplyFixIts,
		FixedSource: c.FixedSource,
		Module:      c.Module,
		FileName:    c.FileName,
		IndentWidth: c.IndentWidth,
	}
	for _, d := range c.Diagnostics {
		e := Expect(d.Message, d.Line, d.Col)
		if d.Severity != "" {
			e = e.WithSeverity(diag.ParseSeverity(d.Severity))
		}
		if d.ID != "" {
			e = e.WithID(d.ID)
		}
		if d.Highlights != nil {
			e = e.WithHighlights(d.Highlights...)
		}
		for _, n := range d.Notes {
			e = e.WithNote(n.Message, n.Line, n.Col)
		}
		for _, f := range d.FixIts {
			e = e.WithFixIt(f)
		}
		spec.Diagnostics = append(spec.Diagnostics, e)
	}
	return spec
}
