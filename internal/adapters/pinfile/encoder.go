package pinfile

import (
	"io"
	"strings"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/zerr"
)

// Encode writes the document back out, one line per document line, each
// terminated by a newline. Raw text round-trips verbatim; edited or
// formatted pin lines carry their canonical rendering in Raw already. A
// source file that lacked a final newline is written back without one.
func Encode(w io.Writer, doc *domain.Document) error {
	if _, err := w.Write(Render(doc)); err != nil {
		return zerr.Wrap(err, domain.ErrPinFileWriteFailed.Error())
	}
	return nil
}

// Render returns the encoded document as a byte slice.
func Render(doc *domain.Document) []byte {
	var b strings.Builder
	for line := range doc.Lines() {
		b.WriteString(line.Raw)
		b.WriteByte('\n')
	}
	out := b.String()
	if doc.MissingFinalNewline() && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return []byte(out)
}
