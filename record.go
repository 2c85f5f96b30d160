package limbs

import (
	"bytes"
	"io"

	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/header"
)

// FieldSetter is implemented by anything that can be loaded into. SetField is
// called once per header field with the internal name of the field. Repeated
// fields are set repeatedly and the last value must win.
type FieldSetter interface {
	header.Setter
}

// FieldLister is implemented by anything that can be dumped. ListFields
// returns the fields keyed by internal name. Names starting with an
// underscore and the name "body" are never written to the header.
type FieldLister interface {
	ListFields() map[string]any
}

// BodyProcessor is implemented by load targets that want the body. If a
// target does not implement it, the body is left unread.
type BodyProcessor interface {
	// ProcessBody is given the bytes following the header. It may read as
	// much or as little as it likes.
	ProcessBody(r io.Reader) error
}

// BodyGetter is implemented by dump sources that compute their body. It takes
// precedence over a field named "body".
type BodyGetter interface {
	GetBody() []byte
}

// Converter is implemented by load targets that declare conversions for some
// of their fields. The map is keyed by internal name.
type Converter interface {
	Conversions() map[string]convert.Spec
}

// Ignorer is implemented by dump sources that want some fields left out of
// the header. The names are internal names.
type Ignorer interface {
	IgnoredFields() []string
}

// Record is the general purpose record type. It holds any fields found in the
// header and the complete body.
type Record struct {
	// Fields holds the field values keyed by internal name. Values are
	// strings unless converted while loading.
	Fields map[string]any

	// Body holds the body. It is nil when there is no body.
	Body []byte

	// Ignore lists internal names that are not written on dump.
	Ignore []string

	// Convert maps internal names to the conversion to apply on load.
	Convert map[string]convert.Spec
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{Fields: make(map[string]any, 10)}
}

// Get returns the value of the named field and whether it was set.
func (r *Record) Get(name string) (any, bool) {
	v, found := r.Fields[name]
	return v, found
}

// GetString returns the value of the named field rendered as it would be in
// the header. It returns an empty string if the field is not set.
func (r *Record) GetString(name string) string {
	v, found := r.Fields[name]
	if !found {
		return ""
	}
	return header.Render(v)
}

// SetField sets the named field, replacing any previous value.
func (r *Record) SetField(name string, value any) error {
	if r.Fields == nil {
		r.Fields = make(map[string]any, 10)
	}
	r.Fields[name] = value
	return nil
}

// Delete removes the named field.
func (r *Record) Delete(name string) {
	delete(r.Fields, name)
}

// ListFields returns the fields and, if it is set, the body under the name
// "body".
func (r *Record) ListFields() map[string]any {
	fs := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		fs[k] = v
	}
	if r.Body != nil {
		fs[header.BodyName] = r.Body
	}
	return fs
}

// ProcessBody reads the entire body into Body.
func (r *Record) ProcessBody(rd io.Reader) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return err
	}
	r.Body = buf.Bytes()
	return nil
}

// Conversions returns Convert.
func (r *Record) Conversions() map[string]convert.Spec {
	return r.Convert
}

// IgnoredFields returns Ignore.
func (r *Record) IgnoredFields() []string {
	return r.Ignore
}

// WriteTo writes the record to w in limbs format.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	return dump(w, r, nil)
}

// Fields is a plain map used as a record. It cannot hold a body of its own
// except under the name "body", and that is only used on dump.
type Fields map[string]any

// SetField sets the named field.
func (fs Fields) SetField(name string, value any) error {
	fs[name] = value
	return nil
}

// ListFields returns the map itself.
func (fs Fields) ListFields() map[string]any {
	return fs
}
