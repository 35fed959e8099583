// Package pinfile implements the line-oriented pin file codec: one pin per
// line as <name><comparator><version>, '#' comments, blank lines.
package pinfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/zerr"
)

// Scan reads a pin file leniently. Every line is kept in the returned
// document, malformed ones as LineInvalid, and each problem becomes an
// error-severity finding. The error return covers I/O only.
func Scan(r io.Reader) (*domain.Document, []domain.Finding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrPinFileReadFailed.Error())
	}

	doc := domain.NewDocument()
	var findings []domain.Finding

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line, err := parseLine(raw, lineNo)
		if err != nil {
			doc.Append(domain.Line{Kind: domain.LineInvalid, Raw: raw})
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Line:     lineNo,
				Message:  fmt.Sprintf("malformed line: %s", err.Error()),
			})
			continue
		}
		doc.Append(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrPinFileReadFailed.Error())
	}
	doc.SetMissingFinalNewline(missingFinalNewline(data))

	return doc, findings, nil
}

// Parse reads a pin file strictly: the first malformed line aborts with
// ErrMalformedLine, and a package pinned under two different constraints
// aborts with ErrConflictingPins. Identical duplicates parse; they are a
// lint concern, not a structural one.
func Parse(r io.Reader) (*domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPinFileReadFailed.Error())
	}

	doc := domain.NewDocument()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line, err := parseLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}

		if line.Kind == domain.LinePin {
			if existing, ok := doc.Find(line.Pin.Name); ok && !existing.SameConstraint(*line.Pin) {
				err := domain.WithMeta(domain.ErrConflictingPins, "name", line.Pin.Name)
				err = zerr.With(err, "existing", existing.Constraint())
				err = zerr.With(err, "conflicting", line.Pin.Constraint())
				return nil, zerr.With(err, "line", lineNo)
			}
		}
		doc.Append(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPinFileReadFailed.Error())
	}
	doc.SetMissingFinalNewline(missingFinalNewline(data))

	return doc, nil
}

func missingFinalNewline(data []byte) bool {
	return len(data) > 0 && data[len(data)-1] != '\n'
}

// ParsePin parses a single pin spec like "pytest==6.0.1". Used for CLI
// arguments; lineNo is recorded as the pin's source line, 0 for none.
func ParsePin(spec string, lineNo int) (domain.Pin, error) {
	line, err := parseLine(spec, lineNo)
	if err != nil {
		return domain.Pin{}, err
	}
	if line.Kind != domain.LinePin {
		return domain.Pin{}, domain.WithMeta(domain.ErrMalformedLine, "spec", spec)
	}
	return *line.Pin, nil
}

func parseLine(raw string, lineNo int) (domain.Line, error) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return domain.Line{Kind: domain.LineBlank, Raw: raw}, nil
	case strings.HasPrefix(trimmed, "#"):
		return domain.Line{Kind: domain.LineComment, Raw: raw}, nil
	}

	name, comp, version, err := splitPin(trimmed)
	if err != nil {
		return domain.Line{}, err
	}

	pin := domain.Pin{Name: name, Comparator: comp, Version: version, Line: lineNo}
	return domain.Line{Kind: domain.LinePin, Raw: raw, Pin: &pin}, nil
}

// splitPin cuts a trimmed pin expression into its three parts. The comparator
// search scans for the first operator character so that separators legal in
// names ("-", "_", ".") never end the name early.
func splitPin(s string) (string, domain.Comparator, string, error) {
	opStart := strings.IndexAny(s, "=!<>~")
	if opStart < 0 {
		return "", "", "", domain.WithMeta(domain.ErrMalformedLine, "reason", "no comparator")
	}

	name := strings.TrimSpace(s[:opStart])
	if err := domain.ValidateName(name); err != nil {
		return "", "", "", err
	}

	rest := s[opStart:]
	opEnd := 0
	for opEnd < len(rest) && strings.ContainsRune("=!<>~", rune(rest[opEnd])) {
		opEnd++
	}
	comp, err := domain.ParseComparator(rest[:opEnd])
	if err != nil {
		return "", "", "", err
	}

	version := strings.TrimSpace(rest[opEnd:])
	if comp == domain.CompArbitraryEqual {
		// Arbitrary equality accepts any non-empty token.
		if version == "" || strings.ContainsAny(version, " \t") {
			return "", "", "", domain.WithMeta(domain.ErrInvalidVersion, "version", version)
		}
	} else if _, err := domain.ParseVersion(version); err != nil {
		return "", "", "", err
	}

	return name, comp, version, nil
}
