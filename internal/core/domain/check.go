package domain

import "fmt"

// CheckDocument runs the structural checks over a parsed document:
//
//   - a package name pinned under two different constraints is an error
//   - an identical duplicate pin is a warning
//   - arbitrary equality ("===") is a warning; it defeats version semantics
//     and is only ever needed for versions the grammar cannot express
//
// Malformed lines are reported by the parser scan, not here.
func CheckDocument(doc *Document) []Finding {
	var findings []Finding
	seen := make(map[string]Pin)

	for _, pin := range doc.Pins() {
		if first, ok := seen[pin.Name]; ok {
			if first.SameConstraint(pin) {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Line:     pin.Line,
					Message:  fmt.Sprintf("duplicate pin for %s (first pinned on line %d)", pin.Name, first.Line),
				})
			} else {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Line:     pin.Line,
					Message: fmt.Sprintf("%s pinned as %s but already pinned as %s on line %d",
						pin.Name, pin.Constraint(), first.Constraint(), first.Line),
				})
			}
			continue
		}
		seen[pin.Name] = pin

		if pin.Comparator == CompArbitraryEqual {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Line:     pin.Line,
				Message:  fmt.Sprintf("%s uses arbitrary equality (===); prefer == with a canonical version", pin.Name),
			})
		}
	}

	return findings
}
