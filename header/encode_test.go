package header_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-limbs/header"
	"github.com/zostay/go-limbs/name"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	e := header.NewEncoder(&buf)

	n, err := e.Encode(map[string]any{
		"field_two": "is field two",
		"field_one": "Has A Value",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Field-One: Has A Value\nField-Two: is field two\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestEncode_Skips(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	e := header.NewEncoder(&buf)

	_, err := e.Encode(map[string]any{
		"body":     []byte("never in the header"),
		"_private": "hidden",
		"secret":   "ignored",
		"shown":    "yes",
	}, []string{"secret"})
	require.NoError(t, err)
	assert.Equal(t, "Shown: yes\n", buf.String())
}

func TestEncode_Folding(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	e := header.NewEncoder(&buf)

	_, err := e.Encode(map[string]any{
		"fields_can": "span multiple lines\nby indenting\n  extra space",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Fields-Can: span multiple lines\n by indenting\n   extra space\n", buf.String())
}

func TestEncode_SortedByWireName(t *testing.T) {
	t.Parallel()

	e := header.NewEncoder(nil, header.WithReserved(name.PythonKeywords))
	fs := e.Fields(map[string]any{
		"zeta":   1,
		"from_":  "me",
		"alpha":  2,
		"utf_8":  "x",
		"a_b":    3,
		"ab":     4,
		"double": "x",
	}, nil)

	wires := make([]string, len(fs))
	for i, f := range fs {
		wires[i] = f.Name
	}
	assert.Equal(t, []string{"A-B", "Ab", "Alpha", "Double", "From", "Utf-8", "Zeta"}, wires)
}

func TestEncode_TiesBrokenByInternalName(t *testing.T) {
	t.Parallel()

	e := header.NewEncoder(nil)
	fs := e.Fields(map[string]any{
		"field_":  "second",
		"_field":  "private",
		"field":   "first",
		"field__": "third",
	}, nil)

	require.Len(t, fs, 3)
	assert.Equal(t, "Field", fs[0].Name)
	assert.Equal(t, "first", fs[0].Body)
	assert.Equal(t, "second", fs[1].Body)
	assert.Equal(t, "third", fs[2].Body)
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEncode_WriteError(t *testing.T) {
	t.Parallel()

	e := header.NewEncoder(failWriter{})
	_, err := e.Encode(map[string]any{"a": "b"}, nil)
	assert.ErrorIs(t, err, errWrite)
}

func TestRender(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", header.Render(nil))
	assert.Equal(t, "text", header.Render("text"))
	assert.Equal(t, "bytes", header.Render([]byte("bytes")))
	assert.Equal(t, "true", header.Render(true))
	assert.Equal(t, "42", header.Render(42))
	assert.Equal(t, "1.5", header.Render(1.5))
	assert.Equal(t, "1.2.3", header.Render(semver.New("1.2.3")))
	assert.Equal(t, "2021-02-03T04:05:06Z",
		header.Render(time.Date(2021, 2, 3, 4, 5, 6, 0, time.UTC)))
}

func TestRender_NilPointer(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		assert.Equal(t, "", header.Render((*semver.Version)(nil)))
		assert.Equal(t, "", header.Render((*time.Time)(nil)))
		assert.Equal(t, "", header.Render((*string)(nil)))
	})
}
