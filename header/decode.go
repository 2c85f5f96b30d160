// Package header decodes and encodes the header of a limbs file. The header
// is a sequence of "Name: value" fields, terminated by a blank line or by the
// end of the input.
//
// Field names are stored by their internal form (see package name). The
// Decoder hands each field to a Setter, and the Encoder writes fields out of
// a map, sorted by their wire form.
package header

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/zostay/go-limbs/header/field"
)

// ErrNotHeader is returned by Decode when it is called after the header has
// already been decoded.
var ErrNotHeader = errors.New("header has already been decoded")

// State tracks how far the Decoder has progressed through its input.
type State int

// States of the Decoder. A Decoder starts in StateHeader. It moves to
// StateBodyPending when the blank line that ends the header is read, or
// directly to StateDone when the input ends inside the header. Calling Body()
// always moves it to StateDone.
const (
	StateHeader State = iota
	StateBodyPending
	StateDone
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateHeader:
		return "header"
	case StateBodyPending:
		return "body pending"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Setter receives the fields as they are decoded.
type Setter interface {
	// SetField stores the value for the internal name. When a name is
	// repeated in the header, the later value must replace the earlier one.
	SetField(name string, value any) error
}

// Decoder reads a header from an input stream.
type Decoder struct {
	r     *field.Reader
	cfg   *config
	state State
	seen  map[string]struct{}
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	cfg := newConfig(opts)

	fr := field.NewReader(r)
	fr.SetMaxHeaderLength(cfg.maxHeader)

	return &Decoder{
		r:    fr,
		cfg:  cfg,
		seen: make(map[string]struct{}, 10),
	}
}

// State returns the current state of the Decoder.
func (d *Decoder) State() State {
	return d.state
}

// Decode reads the header, passing each field to dst. The name of each field
// is mangled into its internal form, then the name transform is applied, and
// then the value is converted if a conversion is configured for that name.
//
// Any error is fatal. The header is not consumed any further and dst may hold
// some of the fields already read.
func (d *Decoder) Decode(dst Setter) error {
	if d.state != StateHeader {
		return ErrNotHeader
	}

	for {
		line, err := d.r.ReadLine()
		if errors.Is(err, io.EOF) {
			d.state = StateDone
			return nil
		} else if err != nil {
			return err
		}

		if line == field.LF {
			d.state = StateBodyPending
			return nil
		}

		f, err := d.r.ReadField(line)
		if err != nil {
			return err
		}

		key, value, err := d.decodeField(f)
		if err != nil {
			return err
		}

		if _, dup := d.seen[key]; dup {
			Logger().Debug("field repeated, later value wins",
				zap.String("field", key),
				zap.Int("line", d.r.Line()))
		}
		d.seen[key] = struct{}{}

		if err := dst.SetField(key, value); err != nil {
			return err
		}
	}
}

// decodeField turns the raw field into an internal name and a value.
func (d *Decoder) decodeField(f *field.Field) (string, any, error) {
	key, err := d.cfg.mangler.ToInternal(f.Name)
	if err != nil {
		return "", nil, err
	}
	key = d.cfg.transform(key)

	conv, found := d.cfg.conversions[key]
	if !found || conv.IsZero() {
		return key, f.Body, nil
	}

	value, err := conv.Apply(f.Body)
	if err != nil {
		return "", nil, &FieldConversionError{
			Field: key,
			Value: f.Body,
			Err:   err,
		}
	}

	Logger().Debug("converted field value",
		zap.String("field", key),
		zap.Stringer("conversion", conv))

	return key, value, nil
}

// Body returns the bytes following the header. When the input ended inside
// the header, the returned reader is empty. Nothing is read until the caller
// reads from the returned io.Reader.
func (d *Decoder) Body() io.Reader {
	d.state = StateDone
	return d.r.Remainder()
}
