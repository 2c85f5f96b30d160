package limbs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/header"
	"github.com/zostay/go-limbs/name"
)

// Errors returned by the load and dump functions.
var (
	// ErrUnsupportedTarget is returned when the value given to load into or
	// dump from is not a supported record type.
	ErrUnsupportedTarget = errors.New("unsupported record type")

	// ErrUnsupportedBody is returned by Dump when the body is not a []byte,
	// string, or io.Reader.
	ErrUnsupportedBody = errors.New("unsupported body type")
)

// These aliases make the error types of the sub-packages available here.
type (
	InvalidFieldNameError = name.InvalidFieldNameError
	FieldConversionError  = header.FieldConversionError
)

// Option modifies how records are loaded and dumped.
type Option = header.Option

// WithNameTransform is an Option that applies fn to every internal name
// before the field is set on the record. Conversions are looked up by the
// transformed name.
func WithNameTransform(fn func(string) string) Option {
	return header.WithNameTransform(fn)
}

// WithReserved is an Option that selects the reserved words to suffix with an
// underscore while mangling names. The default is name.GoKeywords.
func WithReserved(r name.Reserved) Option {
	return header.WithReserved(r)
}

// WithConversions is an Option that sets conversions to apply while loading.
// They are merged with, and override, any conversions the record declares
// through Converter or struct tags.
func WithConversions(conv map[string]convert.Spec) Option {
	return header.WithConversions(conv)
}

// WithMaxHeaderLength is an Option that limits how many bytes of header will
// be read before the load fails with field.ErrLargeHeader.
func WithMaxHeaderLength(n int) Option {
	return header.WithMaxHeaderLength(n)
}

// Load reads a limbs file from r into a new *Record.
func Load(r io.Reader, opts ...Option) (*Record, error) {
	rec := NewRecord()
	if err := LoadInto(r, rec, opts...); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadInto reads a limbs file from r into target. The target may be a
// FieldSetter, a map[string]any, or a pointer to a struct. The body is given
// to the target if it is a BodyProcessor, or it is a struct with a Body
// field. Otherwise the body is left unread.
//
// On error, the target may have been partly modified and should not be
// trusted.
func LoadInto(r io.Reader, target any, opts ...Option) error {
	rec, err := adaptSetter(target)
	if err != nil {
		return err
	}

	if cv, isConverter := rec.(Converter); isConverter {
		if conv := cv.Conversions(); len(conv) > 0 {
			opts = append([]Option{WithConversions(conv)}, opts...)
		}
	}

	d := header.NewDecoder(r, opts...)
	if err := d.Decode(rec); err != nil {
		return err
	}

	return loadBody(target, rec, d.Body())
}

// Loads reads a limbs file from the given bytes into a new *Record.
func Loads(b []byte, opts ...Option) (*Record, error) {
	return Load(bytes.NewReader(b), opts...)
}

// LoadsInto reads a limbs file from the given bytes into target. See
// LoadInto.
func LoadsInto(b []byte, target any, opts ...Option) error {
	return LoadInto(bytes.NewReader(b), target, opts...)
}

// Dump writes v to w as a limbs file. The value may be a FieldLister, a
// map[string]any, or a struct or pointer to a struct. Only the WithReserved
// option has any effect.
//
// The header fields are written sorted by wire name. If v is an Ignorer, the
// named fields are left out. If v is a BodyGetter or has a field named
// "body", and that body is not empty, a blank line and the body follow.
func Dump(w io.Writer, v any, opts ...Option) error {
	_, err := dump(w, v, opts)
	return err
}

// Dumps returns v as a limbs file. See Dump.
func Dumps(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dump writes the header and body of v and returns the number of bytes
// written.
func dump(w io.Writer, v any, opts []Option) (int64, error) {
	rec, err := adaptLister(v)
	if err != nil {
		return 0, err
	}

	var ignore []string
	if ig, isIgnorer := rec.(Ignorer); isIgnorer {
		ignore = ig.IgnoredFields()
	}

	fields := rec.ListFields()

	e := header.NewEncoder(w, opts...)
	total, err := e.Encode(fields, ignore)
	if err != nil {
		return total, err
	}

	var body any
	if bg, isGetter := capability[BodyGetter](v, rec); isGetter {
		body = bg.GetBody()
	} else {
		body = fields[header.BodyName]
	}

	n, err := writeBody(w, body)
	total += n
	return total, err
}

// capability returns the first of the given values that implements T.
func capability[T any](vs ...any) (T, bool) {
	for _, v := range vs {
		if t, ok := v.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// loadBody hands the body to the target if it wants it.
func loadBody(target any, rec FieldSetter, body io.Reader) error {
	bp, isProcessor := capability[BodyProcessor](target, rec)
	if !isProcessor {
		Logger().Debug("record does not process a body, body discarded",
			zap.String("record", fmt.Sprintf("%T", target)))
		return nil
	}
	return bp.ProcessBody(body)
}

// writeBody writes the blank line and the body if the body is not empty.
func writeBody(w io.Writer, body any) (int64, error) {
	var r io.Reader
	switch b := body.(type) {
	case nil:
		return 0, nil
	case []byte:
		if len(b) == 0 {
			return 0, nil
		}
		r = bytes.NewReader(b)
	case string:
		if len(b) == 0 {
			return 0, nil
		}
		r = bytes.NewReader([]byte(b))
	case io.Reader:
		return copyBody(w, b)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}

	n, err := io.WriteString(w, "\n")
	if err != nil {
		return int64(n), err
	}

	bn, err := io.Copy(w, r)
	return int64(n) + bn, err
}

// copyBody writes a body streamed from an io.Reader. The blank line is
// withheld until the first byte of body has been read, so that an empty
// reader writes nothing at all.
func copyBody(w io.Writer, r io.Reader) (int64, error) {
	var first [1]byte
	n, err := io.ReadFull(r, first[:])
	if n == 0 {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	wn, err := w.Write([]byte{'\n', first[0]})
	total := int64(wn)
	if err != nil {
		return total, err
	}

	bn, err := io.Copy(w, r)
	return total + bn, err
}
