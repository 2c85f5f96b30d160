package limbs

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/header"
)

// ErrFieldType is returned while loading into a struct when a value cannot be
// stored in the struct field of the same name.
var ErrFieldType = errors.New("value does not fit struct field")

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	timeType            = reflect.TypeOf(time.Time{})
)

// adaptSetter returns the FieldSetter to load into for the given target.
func adaptSetter(target any) (FieldSetter, error) {
	switch t := target.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedTarget)
	case FieldSetter:
		return t, nil
	case map[string]any:
		if t == nil {
			return nil, fmt.Errorf("%w: nil map", ErrUnsupportedTarget)
		}
		return Fields(t), nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}

	return newStructRecord(target, rv.Elem()), nil
}

// adaptLister returns the FieldLister to dump from for the given value.
func adaptLister(v any) (FieldLister, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedTarget)
	case FieldLister:
		return t, nil
	case map[string]any:
		return Fields(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, v)
	}

	return newStructRecord(v, rv), nil
}

// structField describes a single exported field of a struct record.
type structField struct {
	index []int
	name  string
	conv  convert.Spec
}

// structRecord adapts a Go struct into a record using reflection. The
// internal name of each exported field comes from its "limbs" tag or is made
// from the Go field name in snake case.
//
// The tag has the form `limbs:"name,conversion"`. Either part may be empty. A
// tag of "-" skips the field.
type structRecord struct {
	orig   any
	v      reflect.Value
	fields []structField
	byName map[string]int
}

func newStructRecord(orig any, v reflect.Value) *structRecord {
	r := &structRecord{
		orig:   orig,
		v:      v,
		byName: make(map[string]int, v.NumField()),
	}
	r.collect(v.Type(), nil)
	return r
}

// collect gathers the fields of t, flattening untagged embedded structs.
func (r *structRecord) collect(t reflect.Type, parent []int) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup("limbs")
		if tag == "-" {
			continue
		}

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			r.collect(sf.Type, index)
			continue
		}

		if !sf.IsExported() {
			continue
		}

		n, conv, _ := strings.Cut(tag, ",")
		if n == "" {
			n = snakeCase(sf.Name)
		}

		f := structField{index: index, name: n}
		if conv != "" {
			f.conv = convert.Named(conv)
		}

		if _, dup := r.byName[n]; dup {
			continue
		}
		r.byName[n] = len(r.fields)
		r.fields = append(r.fields, f)
	}
}

// snakeCase turns a Go field name into an internal name: FieldOne becomes
// field_one and HTTPServer becomes http_server.
func snakeCase(s string) string {
	rs := []rune(s)

	var b strings.Builder
	for i, c := range rs {
		if !unicode.IsUpper(c) {
			b.WriteRune(c)
			continue
		}

		if i > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(c))
	}

	return b.String()
}

// lookup finds the field for an internal name. A name suffixed with an
// underscore because it is a reserved word also matches the field without
// the suffix.
func (r *structRecord) lookup(name string) (structField, bool) {
	if i, found := r.byName[name]; found {
		return r.fields[i], true
	}
	if trimmed := strings.TrimSuffix(name, "_"); trimmed != name {
		if i, found := r.byName[trimmed]; found {
			return r.fields[i], true
		}
	}
	return structField{}, false
}

// SetField stores the value in the matching struct field. Names without a
// matching field are dropped.
func (r *structRecord) SetField(name string, value any) error {
	f, found := r.lookup(name)
	if !found {
		Logger().Debug("no struct field for header field, value dropped",
			zap.String("field", name),
			zap.String("struct", r.v.Type().String()))
		return nil
	}

	fv := r.v.FieldByIndex(f.index)
	if err := assign(fv, value); err != nil {
		return &header.FieldConversionError{
			Field: name,
			Value: header.Render(value),
			Err:   err,
		}
	}
	return nil
}

// assign stores value into fv, converting strings by the kind of fv.
func assign(fv reflect.Value, value any) error {
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	if s, isString := value.(string); isString && fv.Kind() != reflect.Interface {
		return coerce(fv, s)
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(fv.Type()):
		fv.Set(rv)
		return nil
	case isNumber(rv.Kind()) && isNumber(fv.Kind()):
		fv.Set(rv.Convert(fv.Type()))
		return nil
	case rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(fv.Type()):
		fv.Set(rv.Elem())
		return nil
	}

	return fmt.Errorf("%w: cannot store %T in %s", ErrFieldType, value, fv.Type())
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// coerce parses a string into fv according to the type of fv.
func coerce(fv reflect.Value, s string) error {
	if fv.Type() == timeType {
		t, err := convert.Time(s)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	if fv.CanAddr() && fv.Addr().Type().Implements(textUnmarshalerType) {
		tu := fv.Addr().Interface().(encoding.TextUnmarshaler)
		return tu.UnmarshalText([]byte(s))
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := convert.Bool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b.(bool))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("%w: cannot parse %s", ErrFieldType, fv.Type())
		}
		fv.SetBytes([]byte(s))
	default:
		return fmt.Errorf("%w: cannot parse %s", ErrFieldType, fv.Type())
	}

	return nil
}

// ListFields returns the value of every exported field by internal name.
func (r *structRecord) ListFields() map[string]any {
	fs := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		fs[f.name] = r.v.FieldByIndex(f.index).Interface()
	}
	return fs
}

// ProcessBody reads the body into the struct field named body, if there is
// one and it is a string or []byte. Otherwise, the body is not read.
func (r *structRecord) ProcessBody(rd io.Reader) error {
	f, found := r.byName[header.BodyName]
	if !found {
		Logger().Debug("struct has no body field, body discarded",
			zap.String("struct", r.v.Type().String()))
		return nil
	}

	fv := r.v.FieldByIndex(r.fields[f].index)
	switch {
	case fv.Kind() == reflect.String:
	case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Uint8:
	default:
		return fmt.Errorf("%w: cannot store body in %s", ErrFieldType, fv.Type())
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return err
	}

	if fv.Kind() == reflect.String {
		fv.SetString(buf.String())
	} else {
		fv.SetBytes(buf.Bytes())
	}
	return nil
}

// Conversions returns the conversions named in struct tags, overridden by
// any the struct declares by implementing Converter.
func (r *structRecord) Conversions() map[string]convert.Spec {
	conv := make(map[string]convert.Spec, len(r.fields))
	for _, f := range r.fields {
		if !f.conv.IsZero() {
			// also match the name as suffixed when it is a reserved word
			conv[f.name] = f.conv
			conv[f.name+"_"] = f.conv
		}
	}

	if cv, isConverter := r.orig.(Converter); isConverter {
		for k, spec := range cv.Conversions() {
			conv[k] = spec
		}
	}

	return conv
}

// IgnoredFields returns the ignored fields of the struct if it implements
// Ignorer.
func (r *structRecord) IgnoredFields() []string {
	if ig, isIgnorer := r.orig.(Ignorer); isIgnorer {
		return ig.IgnoredFields()
	}
	return nil
}
