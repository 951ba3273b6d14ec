package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity maps a lowercase label to a Severity. Unknown labels map to
// SevError.
func ParseSeverity(label string) Severity {
	switch label {
	case "info", "note":
		return SevInfo
	case "warning":
		return SevWarning
	default:
		return SevError
	}
}
