package header

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/zostay/go-limbs/header/field"
)

// BodyName is the internal name reserved for the body. A field with this name
// is never written to the header.
const BodyName = "body"

// Encoder writes a header to an output stream.
type Encoder struct {
	w   io.Writer
	cfg *config
}

// NewEncoder returns an Encoder writing to w. Only the WithReserved option
// has any effect on encoding.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w, newConfig(opts)}
}

// Fields returns the fields that Encode would write, in the order it would
// write them. Names starting with an underscore, the BodyName, and every name
// in ignore are left out. The rest are sorted by their wire form, with the
// internal name breaking ties.
func (e *Encoder) Fields(fields map[string]any, ignore []string) []*field.Field {
	skip := make(map[string]struct{}, len(ignore)+1)
	skip[BodyName] = struct{}{}
	for _, n := range ignore {
		skip[n] = struct{}{}
	}

	type entry struct {
		wire, internal string
		value          any
	}

	es := make([]entry, 0, len(fields))
	for k, v := range fields {
		if strings.HasPrefix(k, "_") {
			continue
		}
		if _, skipped := skip[k]; skipped {
			continue
		}
		es = append(es, entry{e.cfg.mangler.ToWire(k), k, v})
	}

	sort.Slice(es, func(i, j int) bool {
		if es[i].wire != es[j].wire {
			return es[i].wire < es[j].wire
		}
		return es[i].internal < es[j].internal
	})

	fs := make([]*field.Field, len(es))
	for i, en := range es {
		fs[i] = field.New(en.wire, Render(en.value))
	}
	return fs
}

// Encode writes the header fields. No blank line is written after the last
// field; that is only needed when a body follows. It returns the number of
// bytes written and any error returned by the underlying io.Writer.
func (e *Encoder) Encode(fields map[string]any, ignore []string) (int64, error) {
	total := int64(0)
	for _, f := range e.Fields(fields, ignore) {
		n, err := f.WriteTo(e.w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Render returns the text written to the header for a value. No conversion
// registered for decoding is reversed here:
//
// * string is used as-is
// * []byte is used as a string
// * encoding.TextMarshaler is used via MarshalText (time.Time renders as RFC 3339)
// * fmt.Stringer is used via String
// * nil, including a nil pointer or interface, renders as an empty string
// * everything else uses the fmt default format (true, 42, 1.5)
func Render(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case []byte:
		return string(tv)
	}

	if isNil(v) {
		return ""
	}

	switch tv := v.(type) {
	case encoding.TextMarshaler:
		if b, err := tv.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return tv.String()
	}
	return fmt.Sprint(v)
}

// isNil reports whether v is a typed nil of any nillable kind.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
