package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// LineKind classifies a pin file line.
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota
	// LineComment is a line whose first non-blank character is '#'.
	LineComment
	// LinePin is a line declaring a pin.
	LinePin
	// LineInvalid is a line that failed to parse. It is preserved verbatim so
	// that lint runs can report every problem in one pass and still
	// round-trip the file.
	LineInvalid
)

// Line is a single pin file line. Raw holds the authored text; for LinePin it
// is the canonical rendering once the line has been formatted or edited.
type Line struct {
	Kind LineKind
	Raw  string
	Pin  *Pin
}

// Document is the ordered, layout-preserving model of a pin file. Comments
// and blank lines are first-class lines; edits touch pin lines only, so a
// comment documenting an adjacent pin stays where the maintainer put it.
type Document struct {
	lines []Line
	index map[string]int // package name -> line position of its first pin

	// missingFinalNewline records that the source file did not end with a
	// newline, so an unmodified document renders back byte for byte.
	missingFinalNewline bool
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Append adds a line to the end of the document. Pin lines are indexed by
// package name; a duplicate name keeps the first occurrence in the index.
// Appending heals a missing final newline: the previously last line is no
// longer last, so it renders with its terminator again.
func (d *Document) Append(line Line) {
	if line.Kind == LinePin && line.Pin != nil {
		if _, exists := d.index[line.Pin.Name]; !exists {
			d.index[line.Pin.Name] = len(d.lines)
		}
	}
	d.lines = append(d.lines, line)
	d.missingFinalNewline = false
}

// MissingFinalNewline reports whether the source file lacked a trailing
// newline.
func (d *Document) MissingFinalNewline() bool {
	return d.missingFinalNewline
}

// SetMissingFinalNewline marks the document as coming from a file without a
// trailing newline. Set by the codec after parsing.
func (d *Document) SetMissingFinalNewline(missing bool) {
	d.missingFinalNewline = missing
}

// Lines iterates over all lines in file order.
func (d *Document) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, line := range d.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Pins returns the pins in file order, duplicates included.
func (d *Document) Pins() []Pin {
	var pins []Pin
	for _, line := range d.lines {
		if line.Kind == LinePin && line.Pin != nil {
			pins = append(pins, *line.Pin)
		}
	}
	return pins
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Find returns the first pin for the given package name.
func (d *Document) Find(name string) (Pin, bool) {
	pos, ok := d.index[name]
	if !ok {
		return Pin{}, false
	}
	return *d.lines[pos].Pin, true
}

// Add appends a new pin line. It returns ErrDuplicatePin if the package is
// already pinned with the same constraint and ErrConflictingPins if it is
// pinned with a different one.
func (d *Document) Add(pin Pin) error {
	if existing, ok := d.Find(pin.Name); ok {
		if existing.SameConstraint(pin) {
			err := WithMeta(ErrDuplicatePin, "name", pin.Name)
			return zerr.With(err, "constraint", pin.Constraint())
		}
		err := WithMeta(ErrConflictingPins, "name", pin.Name)
		err = zerr.With(err, "existing", existing.Constraint())
		return zerr.With(err, "requested", pin.Constraint())
	}
	d.Append(Line{Kind: LinePin, Raw: pin.String(), Pin: &pin})
	return nil
}

// Replace swaps the constraint of an existing pin in place, keeping its line
// position. A name may be pinned on several lines when identical duplicates
// parsed; replacing leaves a single authoritative line, so later occurrences
// are dropped. It returns ErrPinNotFound if the package is not pinned.
func (d *Document) Replace(pin Pin) error {
	pos, ok := d.index[pin.Name]
	if !ok {
		return WithMeta(ErrPinNotFound, "name", pin.Name)
	}
	d.lines[pos] = Line{Kind: LinePin, Raw: pin.String(), Pin: &pin}

	kept := d.lines[:pos+1]
	for _, line := range d.lines[pos+1:] {
		if line.Kind == LinePin && line.Pin != nil && line.Pin.Name == pin.Name {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) != len(d.lines) {
		d.lines = kept
		d.reindex()
	}
	return nil
}

// Remove deletes every pin line for the given package. Surrounding comments
// and blank lines are untouched. It returns ErrPinNotFound if the package is
// not pinned.
func (d *Document) Remove(name string) error {
	if _, ok := d.index[name]; !ok {
		return WithMeta(ErrPinNotFound, "name", name)
	}
	kept := d.lines[:0]
	for _, line := range d.lines {
		if line.Kind == LinePin && line.Pin != nil && line.Pin.Name == name {
			continue
		}
		kept = append(kept, line)
	}
	d.lines = kept
	d.reindex()
	return nil
}

// Format rewrites every pin line into canonical form and returns the number
// of lines that changed. Line order is never altered.
func (d *Document) Format() int {
	changed := 0
	for i, line := range d.lines {
		if line.Kind != LinePin || line.Pin == nil {
			continue
		}
		canonical := line.Pin.String()
		if line.Raw != canonical {
			d.lines[i].Raw = canonical
			changed++
		}
	}
	return changed
}

func (d *Document) reindex() {
	d.index = make(map[string]int, len(d.lines))
	for i, line := range d.lines {
		if line.Kind != LinePin || line.Pin == nil {
			continue
		}
		if _, exists := d.index[line.Pin.Name]; !exists {
			d.index[line.Pin.Name] = i
		}
	}
}
