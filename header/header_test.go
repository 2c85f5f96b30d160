package header_test

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-limbs/convert"
	"github.com/zostay/go-limbs/header"
	"github.com/zostay/go-limbs/header/field"
	"github.com/zostay/go-limbs/name"
)

// fields is the simplest possible Setter.
type fields map[string]any

func (fs fields) SetField(name string, value any) error {
	fs[name] = value
	return nil
}

func TestDecode(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("Field-One: Has A Value\nField-Two: is field two\n"))
	assert.Equal(t, header.StateHeader, d.State())

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, fields{
		"field_one": "Has A Value",
		"field_two": "is field two",
	}, fs)
	assert.Equal(t, header.StateDone, d.State())

	body, err := io.ReadAll(d.Body())
	require.NoError(t, err)
	assert.Empty(t, body)

	assert.ErrorIs(t, d.Decode(fs), header.ErrNotHeader)
}

func TestDecode_BodyPending(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("A: 1\r\n\r\nbody\r\nbytes"))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, fields{"a": "1"}, fs)
	assert.Equal(t, header.StateBodyPending, d.State())

	body, err := io.ReadAll(d.Body())
	require.NoError(t, err)
	assert.Equal(t, "body\r\nbytes", string(body))
	assert.Equal(t, header.StateDone, d.State())
}

func TestDecode_EmptyHeader(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("\nX: not a field"))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Empty(t, fs)

	body, err := io.ReadAll(d.Body())
	require.NoError(t, err)
	assert.Equal(t, "X: not a field", string(body))
}

func TestDecode_LastWriteWins(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("Double: first\ndouble: overwritten\n"))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, fields{"double": "overwritten"}, fs)
}

func TestDecode_InvalidName(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("121-Invalid-Name: abc\nOk: yes\n"))

	fs := fields{}
	err := d.Decode(fs)
	assert.ErrorIs(t, err, name.ErrInvalidFieldName)
	assert.Empty(t, fs)
}

func TestDecode_Encoding(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("A: \xc3\x28\n"))
	assert.ErrorIs(t, d.Decode(fields{}), field.ErrEncoding)
}

func TestDecode_Conversions(t *testing.T) {
	t.Parallel()

	const input = "Verbose: yes\nCount: 12\nName: Bob\nWhen: 2021-02-03T04:05:06Z\n"

	d := header.NewDecoder(strings.NewReader(input),
		header.WithConversions(map[string]convert.Spec{
			"verbose": convert.Named(convert.TagBool),
			"count":   convert.Named(convert.TagInt),
			"name":    convert.Using(func(v string) (any, error) { return strings.ToUpper(v), nil }),
			"when":    convert.Named(convert.TagTime),
		}))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, true, fs["verbose"])
	assert.Equal(t, 12, fs["count"])
	assert.Equal(t, "BOB", fs["name"])
	assert.IsType(t, time.Time{}, fs["when"])
}

func TestDecode_ConversionError(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("Count: twelve\n"),
		header.WithConversions(map[string]convert.Spec{
			"count": convert.Named(convert.TagInt),
		}))

	err := d.Decode(fields{})
	assert.ErrorIs(t, err, header.ErrFieldConversion)

	var convErr *header.FieldConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "count", convErr.Field)
	assert.Equal(t, "twelve", convErr.Value)
	assert.Contains(t, err.Error(), "'count'")

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestDecode_NameTransform(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("Level: 3\n"),
		header.WithNameTransform(func(s string) string { return "x_" + s }),
		header.WithConversions(map[string]convert.Spec{
			"x_level": convert.Named(convert.TagInt),
		}))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, fields{"x_level": 3}, fs)
}

func TestDecode_Reserved(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("From: me\nType: text\n"),
		header.WithReserved(name.PythonKeywords))

	fs := fields{}
	require.NoError(t, d.Decode(fs))
	assert.Equal(t, fields{"from_": "me", "type": "text"}, fs)
}

func TestDecode_MaxHeaderLength(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("A: 1\nB: 2\nC: 3\n"),
		header.WithMaxHeaderLength(8))
	assert.ErrorIs(t, d.Decode(fields{}), field.ErrLargeHeader)
}

var errSetter = errors.New("setter failed")

type failSetter struct{}

func (failSetter) SetField(string, any) error { return errSetter }

func TestDecode_SetterError(t *testing.T) {
	t.Parallel()

	d := header.NewDecoder(strings.NewReader("A: 1\n"))
	assert.ErrorIs(t, d.Decode(failSetter{}), errSetter)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "header", header.StateHeader.String())
	assert.Equal(t, "body pending", header.StateBodyPending.String())
	assert.Equal(t, "done", header.StateDone.String())
	assert.Equal(t, "unknown", header.State(42).String())
}
