package field

import (
	"fmt"
	"io"
	"strings"
)

// LF is the only line break written by this package. On read, CRLF line
// breaks in the header are turned into LF.
const LF = "\n"

// Field is a single header field as it appears in the file. The Name is the
// wire form with surrounding whitespace intact and the Body is the unfolded
// value with surrounding whitespace removed.
type Field struct {
	Name string
	Body string
}

// New returns a new field with the given name and body.
func New(name, body string) *Field {
	return &Field{Name: name, Body: body}
}

// String returns the complete header field, folded, without the final line
// break.
func (f *Field) String() string {
	return fmt.Sprintf("%s: %s", f.Name, Fold(f.Body))
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// WriteTo writes the folded field followed by a line break.
func (f *Field) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String()+LF)
	return int64(n), err
}

// Fold prepares a multi-line value for output. Every line after the first is
// indented by a single space to mark it as a continuation. A trailing line
// break is dropped. CR and CRLF are accepted as line breaks too.
func Fold(value string) string {
	value = strings.ReplaceAll(value, "\r\n", LF)
	value = strings.ReplaceAll(value, "\r", LF)
	value = strings.TrimSuffix(value, LF)
	return strings.ReplaceAll(value, LF, LF+" ")
}
