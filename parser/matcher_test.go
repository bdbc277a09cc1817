package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/gordy/v2/parser"
)

// recorder is an Observer that remembers every event.
type recorder struct {
	events []string
}

func (r *recorder) Enter(info *parser.Info, ctx parser.Context) {
	r.events = append(r.events, "enter "+info.Name+" "+ctx.String())
}

func (r *recorder) Exit(info *parser.Info, ok bool, ctx parser.Context) {
	state := "fail"
	if ok {
		state = "ok"
	}
	r.events = append(r.events, "exit "+info.Name+" "+state+" "+ctx.String())
}

var (
	wordInfo = &parser.Info{Name: "word"}
	pairInfo = &parser.Info{Name: "pair"}
)

func word(in parser.TextInput) (string, error) {
	return parser.Run(in, wordInfo, func() (string, error) {
		w := in.Take(func(r rune) bool { return r >= 'a' && r <= 'z' })
		if w == "" {
			found, _ := in.Token()
			return parser.Fail[string](parser.ExpectToken(nil, found))
		}
		return w, nil
	})
}

func pair(in parser.TextInput) ([2]string, error) {
	return parser.Run(in, pairInfo, func() ([2]string, error) {
		k, err := word(in)
		if err != nil {
			return [2]string{}, err
		}
		if _, ok := in.Eat(func(r rune) bool { return r == '=' }); !ok {
			found, _ := in.Token()
			return parser.Fail[[2]string](parser.ExpectToken('=', found))
		}
		v, err := word(in)
		if err != nil {
			return [2]string{}, err
		}
		return [2]string{k, v}, nil
	})
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	got, err := pair(parser.NewText("a=b"))
	require.NoError(t, err)
	assert.Equal(t, [2]string{"a", "b"}, got)
}

func TestRun_PushesFramesInnermostFirst(t *testing.T) {
	t.Parallel()

	in := parser.NewPositioned("", "ab=1")
	_, err := pair(in)
	require.Error(t, err)

	perr, ok := parser.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, parser.KindToken, perr.Expected.Kind)
	assert.Equal(t, '1', perr.Expected.Found)

	require.Len(t, perr.Frames, 2)
	assert.Equal(t, "word", perr.Frames[0].Parser)
	assert.Equal(t, `1:4 near "1"`, perr.Frames[0].Context.String())
	assert.Equal(t, "pair", perr.Frames[1].Parser)
	assert.Equal(t, `1:1 to 1:4 near "ab=1"`, perr.Frames[1].Context.String())

	assert.Equal(t,
		"unexpected token '1'\n + word at 1:4 near \"1\"\n + pair at 1:1 to 1:4 near \"ab=1\"",
		err.Error(),
	)
}

func TestObserve(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	in := parser.Observe[rune, string](parser.NewText("a=b"), rec)

	_, err := pair(in)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter pair offset 0",
		"enter word offset 0",
		"exit word ok offset 0..1",
		"enter word offset 2",
		"exit word ok offset 2..3",
		"exit pair ok offset 0..3",
	}, rec.events)

	m := in.Mark(nil)
	in.Unmark(nil, true, m)
	assert.Len(t, rec.events, 6, "anonymous marks are not reported")
	assert.NotNil(t, in.Unwrap())
}
