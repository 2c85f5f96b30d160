// Package field reads and writes individual header fields, including the
// continuation lines a field may span.
package field

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-limbs/name"
)

// Errors returned while reading the header.
var (
	// ErrEncoding is matched by every EncodingError.
	ErrEncoding = errors.New("header is not valid UTF-8")

	// ErrLargeHeader is returned when the header is longer than the maximum
	// set with SetMaxHeaderLength.
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")
)

// EncodingError is returned when a header line is not valid UTF-8.
type EncodingError struct {
	Line int // 1-based line number
}

// Error returns the error message.
func (err *EncodingError) Error() string {
	return fmt.Sprintf("header line %d is not valid UTF-8", err.Line)
}

// Is returns true for ErrEncoding.
func (err *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// Reader reads header lines one at a time. It is able to look one byte ahead
// to detect continuation lines without consuming them.
type Reader struct {
	br     *bufio.Reader
	line   int
	read   int
	maxLen int
}

// NewReader returns a Reader for the given input. If r is already a
// *bufio.Reader, it is used directly.
func NewReader(r io.Reader) *Reader {
	br, isBuffered := r.(*bufio.Reader)
	if !isBuffered {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br}
}

// SetMaxHeaderLength limits the number of bytes that may be read as header.
// A value less than or equal to 0 removes the limit, which is the default.
func (r *Reader) SetMaxHeaderLength(n int) {
	r.maxLen = n
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int {
	return r.line
}

// ReadLine returns the next line with CRLF turned into LF. The final line of
// the input may lack a line break. It returns io.EOF once the input is
// exhausted.
//
// The line is read one buffer at a time, so no more than one buffer beyond
// the maximum header length is ever read from the input.
func (r *Reader) ReadLine() (string, error) {
	var line []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		line = append(line, frag...)
		if r.maxLen > 0 && r.read+len(line) > r.maxLen {
			return "", ErrLargeHeader
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		} else if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		break
	}

	if len(line) == 0 {
		return "", io.EOF
	}

	r.line++
	r.read += len(line)

	if !utf8.Valid(line) {
		return "", &EncodingError{r.line}
	}

	s := string(line)
	if strings.HasSuffix(s, "\r\n") {
		s = s[:len(s)-2] + LF
	}

	return s, nil
}

// isNextLineIndented peeks at the next byte to see if it is a space or tab.
func (r *Reader) isNextLineIndented() bool {
	next, err := r.br.Peek(1)
	if err != nil || len(next) == 0 {
		return false
	}
	return next[0] == ' ' || next[0] == '\t'
}

// indentation returns the number of spaces and tabs that start the line.
func indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// stripIndent removes up to n leading spaces and tabs from the line. Anything
// else is never removed.
func stripIndent(line string, n int) string {
	if ind := indentation(line); ind < n {
		n = ind
	}
	return line[n:]
}

// ReadField parses the field that starts with the given line, which must
// have been returned by ReadLine, and consumes all of its continuation lines.
//
// The name is everything before the first colon. The body is everything after
// it plus every following line that starts with a space or tab. The
// indentation of the first continuation line is removed from it and from every
// continuation line after it; any deeper indentation is kept. Lines are joined
// with LF and the complete body is trimmed of surrounding whitespace.
//
// A line without a colon results in a *name.InvalidFieldNameError.
func (r *Reader) ReadField(first string) (*Field, error) {
	ix := strings.IndexByte(first, ':')
	if ix < 0 {
		return nil, &name.InvalidFieldNameError{Name: strings.TrimSpace(first)}
	}

	var body strings.Builder
	body.WriteString(first[ix+1:])

	indent := -1
	for r.isNextLineIndented() {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		if indent < 0 {
			indent = indentation(line)
		}

		body.WriteString(stripIndent(line, indent))
	}

	return &Field{
		Name: first[:ix],
		Body: strings.TrimSpace(body.String()),
	}, nil
}

// Remainder returns a reader for everything that has not been consumed yet,
// including anything already buffered.
func (r *Reader) Remainder() io.Reader {
	return r.br
}
