package domain

import "fmt"

// Severity grades a finding.
type Severity int

const (
	// SeverityWarning marks a finding that does not fail a check run.
	SeverityWarning Severity = iota
	// SeverityError marks a finding that fails a check run.
	SeverityError
)

// String returns the lowercase severity label.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is a single structural problem located in a pin file or lockfile.
type Finding struct {
	Severity Severity
	Line     int // 1-based; 0 when the finding has no single source line
	Message  string
}

// String renders the finding as "line:severity: message" for CLI output.
func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%d: %s: %s", f.Line, f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

// HasErrors reports whether any finding in the slice is error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
