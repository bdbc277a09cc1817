package match_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/gordy/v2/match"
	"github.com/zostay/gordy/v2/parser"
)

func TestSequence_Success(t *testing.T) {
	t.Parallel()

	in := parser.NewText("ab")

	a, err := match.Eat(in, 'a')
	require.NoError(t, err)
	assert.Equal(t, 'a', a)

	b, err := match.Eat(in, 'b')
	require.NoError(t, err)
	assert.Equal(t, 'b', b)

	require.NoError(t, match.EOF(in))
	assert.Equal(t, "", in.Remaining())
}

func TestSequence_Mismatch(t *testing.T) {
	t.Parallel()

	in := parser.NewText("ac")

	_, err := match.Eat(in, 'a')
	require.NoError(t, err)

	_, err = match.Eat(in, 'b')
	require.Error(t, err)

	perr, ok := parser.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, parser.KindToken, perr.Expected.Kind)
	assert.Equal(t, 'b', perr.Expected.Want)
	assert.Equal(t, 'c', perr.Expected.Found)
	assert.Equal(t, "expected token 'b' but found 'c'\n + eat at offset 1", err.Error())
	assert.Equal(t, "c", in.Remaining())
}

func TestTakeWhile_Totality(t *testing.T) {
	t.Parallel()

	in := parser.NewText("")

	s, err := match.TakeWhile(in, match.Anything[rune])
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = match.TakeSomeWhile(in, match.Anything[rune])
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "expected any token but none was found"))

	in = parser.NewText("abc123")
	s, err = match.TakeWhile(in, unicode.IsDigit)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = match.TakeSomeWhile(in, unicode.IsLetter)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	_, err = match.TakeSomeWhile(in, unicode.IsLetter)
	assert.ErrorContains(t, err, "unexpected token '1'")
}

func TestEOF_Idempotent(t *testing.T) {
	t.Parallel()

	in := parser.NewText("x")
	for i := 0; i < 3; i++ {
		err := match.EOF(in)
		require.Error(t, err)
		assert.Equal(t, "expected EOF but found 'x'\n + eof at offset 0", err.Error())
	}

	_, err := match.EatAny(in)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.NoError(t, match.EOF(in))
	}
}

// TestNoPartialConsumption runs every primitive that can fail against input
// it does not match, and checks the input is untouched.
func TestNoPartialConsumption(t *testing.T) {
	t.Parallel()

	const src = "abc def"

	tests := []struct {
		name string
		run  func(in parser.TextInput) error
	}{
		{"eat", func(in parser.TextInput) error { _, err := match.Eat(in, 'x'); return err }},
		{"eat_if", func(in parser.TextInput) error { _, err := match.EatIf(in, unicode.IsDigit); return err }},
		{"eat_slice", func(in parser.TextInput) error { _, err := match.EatSlice(in, "abd"); return err }},
		{"peek", func(in parser.TextInput) error { _, err := match.Peek(in, 'b'); return err }},
		{"peek_if", func(in parser.TextInput) error { _, err := match.PeekIf(in, unicode.IsUpper); return err }},
		{"peek_slice", func(in parser.TextInput) error { _, err := match.PeekSlice(in, "abcx"); return err }},
		{"take_some_while", func(in parser.TextInput) error {
			_, err := match.TakeSomeWhile(in, unicode.IsDigit)
			return err
		}},
		{"take_some_while_until", func(in parser.TextInput) error {
			_, err := match.TakeSomeWhileUntil(in, unicode.IsLetter, 'a')
			return err
		}},
		{"take_n", func(in parser.TextInput) error { _, err := match.TakeN(in, 8); return err }},
		{"take_n_if", func(in parser.TextInput) error {
			_, err := match.TakeNIf(in, 4, unicode.IsLetter)
			return err
		}},
		{"delimited", func(in parser.TextInput) error {
			_, err := match.Delimited(in, 'a', unicode.IsLetter, 'z')
			return err
		}},
		{"delimited_some", func(in parser.TextInput) error {
			_, err := match.DelimitedSome(in, 'a', unicode.IsDigit, 'b')
			return err
		}},
		{"eof", func(in parser.TextInput) error { return match.EOF(in) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := parser.NewText(src)
			err := tt.run(in)
			require.Error(t, err)
			_, isParseErr := parser.AsParseError(err)
			assert.True(t, isParseErr)
			assert.Equal(t, src, in.Remaining())
		})
	}
}

func TestPeekPrimitives(t *testing.T) {
	t.Parallel()

	in := parser.NewText("abc")

	r, err := match.Peek(in, 'a')
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	r, err = match.PeekIf(in, unicode.IsLower)
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	r, err = match.PeekAny(in)
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	s, err := match.PeekSlice(in, "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", s)

	assert.Equal(t, "abc", in.Remaining())

	_, err = match.PeekAny(parser.NewText(""))
	assert.ErrorContains(t, err, "expected any token but none was found")
}

func TestEatPrimitives(t *testing.T) {
	t.Parallel()

	in := parser.NewText("let x")

	s, err := match.EatSlice(in, "let")
	require.NoError(t, err)
	assert.Equal(t, "let", s)

	r, err := match.EatIf(in, unicode.IsSpace)
	require.NoError(t, err)
	assert.Equal(t, ' ', r)

	r, err = match.EatAny(in)
	require.NoError(t, err)
	assert.Equal(t, 'x', r)

	_, err = match.EatAny(in)
	assert.ErrorContains(t, err, "expected any token but none was found")

	_, err = match.Eat(in, 'y')
	assert.ErrorContains(t, err, "expected token 'y' but none was found")

	_, err = match.EatSlice(parser.NewText("le"), "let")
	assert.ErrorContains(t, err, `expected slice "let" but none was found`)
}

func TestSkipAndTakeUntil(t *testing.T) {
	t.Parallel()

	in := parser.NewText("  name: value")

	n, err := match.SkipWhile(in, unicode.IsSpace)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	key, err := match.TakeWhileUntil(in, match.Anything[rune], ':')
	require.NoError(t, err)
	assert.Equal(t, "name", key)

	_, err = match.Eat(in, ':')
	require.NoError(t, err)

	rest, err := match.TakeSomeWhileUntil(in, match.Anything[rune], '\n')
	require.NoError(t, err)
	assert.Equal(t, " value", rest)
}

func TestTakeN(t *testing.T) {
	t.Parallel()

	in := parser.NewText("héllo")

	s, err := match.TakeN(in, 2)
	require.NoError(t, err)
	assert.Equal(t, "hé", s, "counts runes, not bytes")

	_, err = match.TakeN(in, 4)
	assert.ErrorContains(t, err, "expected more input but found EOF")
	assert.Equal(t, "llo", in.Remaining())

	s, err = match.TakeN(in, 0)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	assert.Panics(t, func() { _, _ = match.TakeN(in, -1) })
}

func TestTakeNIfAndWhile(t *testing.T) {
	t.Parallel()

	in := parser.NewText("12a45")

	_, err := match.TakeNIf(in, 3, unicode.IsDigit)
	assert.ErrorContains(t, err, "unexpected token 'a'")
	assert.Equal(t, "12a45", in.Remaining())

	s, err := match.TakeNIf(in, 2, unicode.IsDigit)
	require.NoError(t, err)
	assert.Equal(t, "12", s)

	s, err = match.TakeNWhile(in, 5, unicode.IsLetter)
	require.NoError(t, err)
	assert.Equal(t, "a", s)

	s, err = match.TakeNWhile(in, 1, unicode.IsDigit)
	require.NoError(t, err)
	assert.Equal(t, "4", s)
}

func TestDelimited(t *testing.T) {
	t.Parallel()

	in := parser.NewText("[abc]()")

	s, err := match.Delimited(in, '[', match.Anything[rune], ']')
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	s, err = match.Delimited(in, '(', match.Anything[rune], ')')
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.True(t, in.IsEOF())

	in = parser.NewText("()")
	_, err = match.DelimitedSome(in, '(', match.Anything[rune], ')')
	require.Error(t, err)
	assert.Equal(t,
		"unexpected token ')'\n + delimited_some at offset 0",
		err.Error(),
	)
	assert.Equal(t, "()", in.Remaining())

	in = parser.NewText("(abc")
	_, err = match.Delimited(in, '(', match.Anything[rune], ')')
	require.Error(t, err)
	assert.Equal(t,
		"expected token ')' but none was found\n + eat at offset 4\n + delimited at offset 0",
		err.Error(),
	)
	assert.Equal(t, "(abc", in.Remaining())
}

func TestPrimitivesOverFile(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("GET /index.html"), 4)

	method, err := match.TakeSomeWhile(in, match.Between[byte]('A', 'Z'))
	require.NoError(t, err)
	assert.Equal(t, []byte("GET"), method)

	_, err = match.Eat(in, ' ')
	require.NoError(t, err)

	_, err = match.EatSlice(in, []byte("/x"))
	assert.ErrorContains(t, err, `expected slice "/x" but found "/i"`)

	path, err := match.TakeWhile(in, match.Anything[byte])
	require.NoError(t, err)
	assert.Equal(t, []byte("/index.html"), path)
	assert.NoError(t, match.EOF(in))
}

func TestPrimitivesOverFile_RefusedRewind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		run  func(in parser.BytesInput) error
		want string
	}{
		{
			name: "take_n",
			src:  "abcdefgh",
			run:  func(in parser.BytesInput) error { _, err := match.TakeN(in, 10); return err },
			want: "input can no longer rewind to the marked position\n + take_n at offset 0..8",
		},
		{
			name: "take_n_if",
			src:  "abcdefgh",
			run: func(in parser.BytesInput) error {
				_, err := match.TakeNIf(in, 10, match.Between[byte]('a', 'z'))
				return err
			},
			want: "input can no longer rewind to the marked position\n + take_n_if at offset 0..8",
		},
		{
			name: "delimited",
			src:  "(abcdefgh",
			run: func(in parser.BytesInput) error {
				_, err := match.Delimited(in, '(', match.Anything[byte], ')')
				return err
			},
			want: "input can no longer rewind to the marked position\n + delimited at offset 0..9",
		},
		{
			name: "delimited_some",
			src:  "(abcdefgh",
			run: func(in parser.BytesInput) error {
				_, err := match.DelimitedSome(in, '(', match.Anything[byte], ')')
				return err
			},
			want: "input can no longer rewind to the marked position\n + delimited_some at offset 0..9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := parser.NewFileSize(strings.NewReader(tt.src), 4)
			err := tt.run(in)
			require.Error(t, err)

			perr, ok := parser.AsParseError(err)
			require.True(t, ok)
			assert.Equal(t, parser.KindOther, perr.Expected.Kind)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestPrimitivesOverFile_SliceLongerThanWindow(t *testing.T) {
	t.Parallel()

	in := parser.NewFileSize(strings.NewReader("abcdefgh"), 4)

	_, err := match.EatSlice(in, []byte("abcdef"))
	require.Error(t, err)
	assert.Equal(t,
		"slice \"abcdef\" is longer than the 4 byte read-ahead window\n + eat_slice at offset 0",
		err.Error(),
	)

	_, err = match.PeekSlice(in, []byte("abcdef"))
	assert.ErrorContains(t, err, "longer than the 4 byte read-ahead window")

	s, err := match.EatSlice(in, []byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), s)

	_, err = match.EatSlice(in, []byte("efghi"))
	assert.ErrorContains(t, err, "longer than the 4 byte read-ahead window")

	_, err = match.EatSlice(in, []byte("efgx"))
	assert.ErrorContains(t, err, `expected slice "efgx" but found "efgh"`)
}
