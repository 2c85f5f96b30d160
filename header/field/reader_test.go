package field_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-limbs/header/field"
	"github.com/zostay/go-limbs/name"
)

func readAll(t *testing.T, input string) []*field.Field {
	t.Helper()

	r := field.NewReader(strings.NewReader(input))
	fs := make([]*field.Field, 0, 4)
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) || line == field.LF {
			break
		}
		require.NoError(t, err)

		f, err := r.ReadField(line)
		require.NoError(t, err)
		fs = append(fs, f)
	}
	return fs
}

func TestReadLine(t *testing.T) {
	t.Parallel()

	r := field.NewReader(strings.NewReader("one\r\ntwo\nthree"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one\n", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "two\n", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "three", line)
	assert.Equal(t, 3, r.Line())

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_Encoding(t *testing.T) {
	t.Parallel()

	r := field.NewReader(bytes.NewReader([]byte("Good: yes\nBad: \xff\xfe\n")))

	_, err := r.ReadLine()
	require.NoError(t, err)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, field.ErrEncoding)

	var encErr *field.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 2, encErr.Line)
}

func TestReadLine_MaxHeaderLength(t *testing.T) {
	t.Parallel()

	r := field.NewReader(strings.NewReader("Short: a\nLonger: abcdefghijkl\n"))
	r.SetMaxHeaderLength(16)

	_, err := r.ReadLine()
	require.NoError(t, err)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, field.ErrLargeHeader)
}

// countingReader counts the bytes read from it.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestReadLine_MaxHeaderLengthBoundsInput(t *testing.T) {
	t.Parallel()

	src := &countingReader{r: io.MultiReader(
		strings.NewReader("A: "),
		bytes.NewReader(bytes.Repeat([]byte{'a'}, 8<<20)),
	)}

	r := field.NewReader(src)
	r.SetMaxHeaderLength(64)

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, field.ErrLargeHeader)
	assert.Less(t, src.n, 64*1024)
}

func TestReadLine_LongLine(t *testing.T) {
	t.Parallel()

	long := "Long: " + strings.Repeat("x", 10000) + "\n"
	r := field.NewReader(strings.NewReader(long + "Next: y\n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, long, line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "Next: y\n", line)
}

func TestReadField(t *testing.T) {
	t.Parallel()

	fs := readAll(t, "Field-One: Has A Value\nField-Two:is field two\nEmpty:\nColons: a:b:c\n")
	require.Len(t, fs, 4)

	assert.Equal(t, &field.Field{Name: "Field-One", Body: "Has A Value"}, fs[0])
	assert.Equal(t, &field.Field{Name: "Field-Two", Body: "is field two"}, fs[1])
	assert.Equal(t, &field.Field{Name: "Empty", Body: ""}, fs[2])
	assert.Equal(t, &field.Field{Name: "Colons", Body: "a:b:c"}, fs[3])
}

func TestReadField_Continuation(t *testing.T) {
	t.Parallel()

	const input = "Fields-Can: span multiple lines\n" +
		"   by indenting them with one or more\n" +
		"   spaces, however, all lines except the first\n" +
		"     keep any extra leading space.\n" +
		"Next: field\n"

	fs := readAll(t, input)
	require.Len(t, fs, 2)

	assert.Equal(t, "span multiple lines\n"+
		"by indenting them with one or more\n"+
		"spaces, however, all lines except the first\n"+
		"  keep any extra leading space.", fs[0].Body)
	assert.Equal(t, "field", fs[1].Body)
}

func TestReadField_ContinuationCRLF(t *testing.T) {
	t.Parallel()

	fs := readAll(t, "A: one\r\n\ttwo\r\n\tthree\r\nB: x\r\n\r\nbody")
	require.Len(t, fs, 2)
	assert.Equal(t, "one\ntwo\nthree", fs[0].Body)
	assert.Equal(t, "x", fs[1].Body)
}

func TestReadField_ShallowerContinuation(t *testing.T) {
	t.Parallel()

	fs := readAll(t, "A: one\n    two\n  three\n")
	require.Len(t, fs, 1)
	assert.Equal(t, "one\ntwo\nthree", fs[0].Body)
}

func TestReadField_ContinuationAtEOF(t *testing.T) {
	t.Parallel()

	fs := readAll(t, "A: one\n two")
	require.Len(t, fs, 1)
	assert.Equal(t, "one\ntwo", fs[0].Body)
}

func TestReadField_MissingColon(t *testing.T) {
	t.Parallel()

	r := field.NewReader(strings.NewReader("no colon here\n"))
	line, err := r.ReadLine()
	require.NoError(t, err)

	_, err = r.ReadField(line)
	assert.ErrorIs(t, err, name.ErrInvalidFieldName)
}

func TestRemainder(t *testing.T) {
	t.Parallel()

	r := field.NewReader(strings.NewReader("A: b\n\nthe\r\nbody\n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	_, err = r.ReadField(line)
	require.NoError(t, err)

	line, err = r.ReadLine()
	require.NoError(t, err)
	require.Equal(t, field.LF, line)

	rest, err := io.ReadAll(r.Remainder())
	require.NoError(t, err)
	assert.Equal(t, "the\r\nbody\n", string(rest))
}
