package parser_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/gordy/v2/parser"
)

// countingReader counts the reads that returned data.
type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.reads++
	}
	return n, err
}

// failingReader returns its data and then a non-EOF error.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestFile_TakeRefills(t *testing.T) {
	t.Parallel()

	r := &countingReader{r: strings.NewReader("0123456789")}
	in := parser.NewFileSize(r, 4)

	all := in.Take(func(byte) bool { return true })
	assert.Equal(t, []byte("0123456789"), all)
	assert.GreaterOrEqual(t, r.reads, 3, "initial fill plus at least two refills")
	assert.True(t, in.IsEOF())
	assert.Equal(t, 10, in.Offset())
	assert.NoError(t, in.Err())
}

func TestFile_SkipAndEat(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("aaaaaaab"), 3)

	assert.Equal(t, 7, in.Skip(func(c byte) bool { return c == 'a' }))

	_, ok := in.Eat(func(c byte) bool { return c == 'a' })
	assert.False(t, ok)

	c, ok := in.Eat(func(c byte) bool { return c == 'b' })
	require.True(t, ok)
	assert.Equal(t, byte('b'), c)
	assert.True(t, in.IsEOF())
	assert.Equal(t, parser.Offset(8), in.Context(parser.NoMarker))
}

func TestFile_SlicesAreOwned(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdef"), 4)

	s, ok := in.Slice(3)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), s)

	eaten, ok := in.EatSlice(3, func(s []byte) bool { return bytes.Equal(s, []byte("abc")) })
	require.True(t, ok)

	rest := in.Take(func(byte) bool { return true })
	assert.Equal(t, []byte("def"), rest)
	assert.Equal(t, []byte("abc"), eaten, "later reads must not overwrite returned slices")

	_, ok = in.Slice(5)
	assert.False(t, ok, "cannot look past the window")
}

func TestFile_RewindWithinWindow(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdefgh"), 4)

	m := in.Mark(nil)
	_, ok := in.EatSlice(2, func([]byte) bool { return true })
	require.True(t, ok)
	require.True(t, in.Rewind(m))

	c, ok := in.Token()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)
}

func TestFile_RewindRefusedAfterCompaction(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdefgh"), 4)

	m := in.Mark(nil)
	assert.Equal(t, 6, in.Skip(func(c byte) bool { return c != 'g' }))
	assert.False(t, in.Rewind(m), "the marked bytes have been dropped")

	c, ok := in.Token()
	require.True(t, ok)
	assert.Equal(t, byte('g'), c, "a refused rewind leaves the input alone")
}

func TestFile_CompactionKeepsMarkedBytes(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdefgh"), 4)

	assert.Equal(t, 2, in.Skip(func(c byte) bool { return c < 'c' }))
	m := in.Mark(nil)

	for _, want := range []byte("cde") {
		_, ok := in.Eat(func(c byte) bool { return c == want })
		require.True(t, ok)
	}

	require.True(t, in.Rewind(m), "the window kept the bytes after the mark")
	c, ok := in.Token()
	require.True(t, ok)
	assert.Equal(t, byte('c'), c)

	in.Unmark(nil, false, m)
	assert.Equal(t, 6, in.Skip(func(byte) bool { return true }))
	assert.False(t, in.Rewind(m), "released bytes are dropped")
}

func TestFile_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	in := parser.NewFileSize(&failingReader{data: []byte("ab"), err: boom}, 4)

	assert.Equal(t, []byte("ab"), in.Take(func(byte) bool { return true }))
	assert.True(t, in.IsEOF())
	require.Error(t, in.Err())
	assert.ErrorIs(t, in.Err(), boom)
	assert.Contains(t, in.Err().Error(), "read at offset 2")
}

func TestFile_NoProgress(t *testing.T) {
	t.Parallel()

	in := parser.NewFile(emptyReader{})
	assert.True(t, in.IsEOF())
	assert.ErrorIs(t, in.Err(), io.ErrNoProgress)
}

func TestFile_Window(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abc"), 8)
	assert.Equal(t, 8, in.Window())

	w, ok := parser.Window[byte, []byte](parser.Observe[byte, []byte](in, &recorder{}))
	require.True(t, ok, "observed inputs are looked through")
	assert.Equal(t, 8, w)

	_, ok = parser.Window[rune, string](parser.NewText("abc"))
	assert.False(t, ok)
}

func TestFile_ContextSpansMark(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdefgh"), 4)
	in.Skip(func(c byte) bool { return c < 'c' })

	m := in.Mark(nil)
	in.Skip(func(byte) bool { return true })
	assert.Equal(t, parser.Range{Start: 2, End: 8}, in.Context(m),
		"the range holds even after the marked bytes left the window")
}
