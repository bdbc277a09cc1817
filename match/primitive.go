// Package match provides the primitive parsers that read tokens and slices
// from a parser.Input, and the combinators used to compose them.
//
// Every primitive takes the input as its first argument and either succeeds,
// consuming what it matched, or fails with a *parser.ParseError and leaves
// the input where it was. The one exception is a streaming input that has
// already dropped the bytes a primitive needs to go back to; the failure then
// reports that the input could not be rewound.
package match

import (
	"fmt"

	"github.com/zostay/gordy/v2/parser"
	"github.com/zostay/gordy/v2/token"
)

var (
	eatInfo                = &parser.Info{Name: "eat"}
	eatIfInfo              = &parser.Info{Name: "eat_if"}
	eatAnyInfo             = &parser.Info{Name: "eat_any"}
	eatSliceInfo           = &parser.Info{Name: "eat_slice"}
	peekInfo               = &parser.Info{Name: "peek"}
	peekIfInfo             = &parser.Info{Name: "peek_if"}
	peekSliceInfo          = &parser.Info{Name: "peek_slice"}
	peekAnyInfo            = &parser.Info{Name: "peek_any"}
	skipWhileInfo          = &parser.Info{Name: "skip_while"}
	takeWhileInfo          = &parser.Info{Name: "take_while"}
	takeSomeWhileInfo      = &parser.Info{Name: "take_some_while"}
	takeWhileUntilInfo     = &parser.Info{Name: "take_while_until"}
	takeSomeWhileUntilInfo = &parser.Info{Name: "take_some_while_until"}
	takeNInfo              = &parser.Info{Name: "take_n"}
	takeNWhileInfo         = &parser.Info{Name: "take_n_while"}
	takeNIfInfo            = &parser.Info{Name: "take_n_if"}
	delimitedInfo          = &parser.Info{Name: "delimited"}
	delimitedSomeInfo      = &parser.Info{Name: "delimited_some"}
	eofInfo                = &parser.Info{Name: "eof"}
)

// next returns the next token as an any, or nil at the end of input. It is
// used to fill in the found half of an expectation.
func next[T comparable, S any](in parser.Input[T, S]) any {
	if t, ok := in.Token(); ok {
		return t
	}
	return nil
}

// nextSlice is like next, for slices of length n.
func nextSlice[T comparable, S any](in parser.Input[T, S], n int) any {
	if s, ok := in.Slice(n); ok {
		return s
	}
	return nil
}

// missingSlice describes a failure to find want, which is n units long. On an
// input with a read-ahead window, a slice longer than the window can never be
// seen and is reported as such.
func missingSlice[T comparable, S any](in parser.Input[T, S], want S, n int) parser.Expected {
	found := nextSlice(in, n)
	if found == nil {
		if w, ok := parser.Window(in); ok && n > w {
			return parser.Errorf("slice %q is longer than the %d byte read-ahead window", any(want), w)
		}
	}
	return parser.ExpectSlice(want, found)
}

// Eat consumes the next token if it is equal to want.
func Eat[T comparable, S any](in parser.Input[T, S], want T) (T, error) {
	return parser.Run(in, eatInfo, func() (T, error) {
		if t, ok := in.Eat(func(t T) bool { return t == want }); ok {
			return t, nil
		}
		return parser.Fail[T](parser.ExpectToken(want, next(in)))
	})
}

// EatIf consumes the next token if it satisfies pred.
func EatIf[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (T, error) {
	return parser.Run(in, eatIfInfo, func() (T, error) {
		if t, ok := in.Eat(pred); ok {
			return t, nil
		}
		return parser.Fail[T](parser.ExpectToken(nil, next(in)))
	})
}

// EatAny consumes the next token, whatever it is. It fails only at the end of
// input.
func EatAny[T comparable, S any](in parser.Input[T, S]) (T, error) {
	return parser.Run(in, eatAnyInfo, func() (T, error) {
		if t, ok := in.Eat(Anything[T]); ok {
			return t, nil
		}
		return parser.Fail[T](parser.ExpectToken(nil, nil))
	})
}

// EatSlice consumes the next token.Len(want) units of input if they are equal
// to want. On a streaming input, want may be no longer than the read-ahead
// window.
func EatSlice[T comparable, S any](in parser.Input[T, S], want S) (S, error) {
	return parser.Run(in, eatSliceInfo, func() (S, error) {
		n := token.Len(want)
		if s, ok := in.EatSlice(n, func(s S) bool { return token.Equal(s, want) }); ok {
			return s, nil
		}
		return parser.Fail[S](missingSlice(in, want, n))
	})
}

// Peek succeeds if the next token is equal to want, without consuming it.
func Peek[T comparable, S any](in parser.Input[T, S], want T) (T, error) {
	return parser.Run(in, peekInfo, func() (T, error) {
		if in.Peek(func(t T) bool { return t == want }) {
			return want, nil
		}
		return parser.Fail[T](parser.ExpectToken(want, next(in)))
	})
}

// PeekIf returns the next token without consuming it if it satisfies pred.
func PeekIf[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (T, error) {
	return parser.Run(in, peekIfInfo, func() (T, error) {
		if t, ok := in.Token(); ok && pred(t) {
			return t, nil
		}
		return parser.Fail[T](parser.ExpectToken(nil, next(in)))
	})
}

// PeekSlice returns the next token.Len(want) units of input without consuming
// them if they are equal to want. Like EatSlice, it cannot see past the
// read-ahead window of a streaming input.
func PeekSlice[T comparable, S any](in parser.Input[T, S], want S) (S, error) {
	return parser.Run(in, peekSliceInfo, func() (S, error) {
		n := token.Len(want)
		if s, ok := in.Slice(n); ok && token.Equal(s, want) {
			return s, nil
		}
		return parser.Fail[S](missingSlice(in, want, n))
	})
}

// PeekAny returns the next token without consuming it. It fails only at the
// end of input.
func PeekAny[T comparable, S any](in parser.Input[T, S]) (T, error) {
	return parser.Run(in, peekAnyInfo, func() (T, error) {
		if t, ok := in.Token(); ok {
			return t, nil
		}
		return parser.Fail[T](parser.ExpectToken(nil, nil))
	})
}

// SkipWhile consumes tokens while they satisfy pred and returns how many were
// skipped. It never fails.
func SkipWhile[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (int, error) {
	return parser.Run(in, skipWhileInfo, func() (int, error) {
		return in.Skip(pred), nil
	})
}

// TakeWhile consumes and returns the longest run of tokens satisfying pred.
// The run may be empty, so TakeWhile never fails.
func TakeWhile[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (S, error) {
	return parser.Run(in, takeWhileInfo, func() (S, error) {
		return in.Take(pred), nil
	})
}

// takeSome is TakeWhile that fails on an empty run.
func takeSome[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (S, error) {
	s := in.Take(pred)
	if token.Len(s) == 0 {
		return parser.Fail[S](parser.ExpectToken(nil, next(in)))
	}
	return s, nil
}

// TakeSomeWhile is TakeWhile, but fails unless at least one token is taken.
func TakeSomeWhile[T comparable, S any](in parser.Input[T, S], pred func(T) bool) (S, error) {
	return parser.Run(in, takeSomeWhileInfo, func() (S, error) {
		return takeSome(in, pred)
	})
}

// TakeWhileUntil consumes tokens while they satisfy pred and are not until.
// The until token itself is left alone. It never fails.
func TakeWhileUntil[T comparable, S any](in parser.Input[T, S], pred func(T) bool, until T) (S, error) {
	return parser.Run(in, takeWhileUntilInfo, func() (S, error) {
		return in.Take(func(t T) bool { return t != until && pred(t) }), nil
	})
}

// TakeSomeWhileUntil is TakeWhileUntil, but fails unless at least one token is
// taken.
func TakeSomeWhileUntil[T comparable, S any](in parser.Input[T, S], pred func(T) bool, until T) (S, error) {
	return parser.Run(in, takeSomeWhileUntilInfo, func() (S, error) {
		return takeSome(in, func(t T) bool { return t != until && pred(t) })
	})
}

// takeExactly consumes exactly n tokens satisfying pred, or rewinds and fails.
func takeExactly[T comparable, S any](
	in parser.Input[T, S],
	info *parser.Info,
	n int,
	pred func(T) bool,
) (S, error) {
	if n < 0 {
		panic(fmt.Sprintf("match: %s with negative count %d", info.Name, n))
	}

	return parser.Run(in, info, func() (S, error) {
		m := in.Mark(nil)

		i := 0
		s := in.Take(func(t T) bool {
			if i < n && pred(t) {
				i++
				return true
			}
			return false
		})

		if i == n {
			in.Unmark(nil, true, m)
			return s, nil
		}

		found := next(in)
		rewound := in.Rewind(m)
		in.Unmark(nil, false, m)

		if !rewound {
			return parser.Fail[S](errNoRewind())
		}
		if found == nil {
			return parser.Fail[S](parser.ExpectMore(nil))
		}
		return parser.Fail[S](parser.ExpectToken(nil, found))
	})
}

// TakeN consumes exactly n tokens. It fails without consuming anything if
// fewer than n remain. It panics if n is negative.
func TakeN[T comparable, S any](in parser.Input[T, S], n int) (S, error) {
	return takeExactly(in, takeNInfo, n, Anything[T])
}

// TakeNIf consumes exactly n tokens, all of which must satisfy pred. It fails
// without consuming anything otherwise. It panics if n is negative.
func TakeNIf[T comparable, S any](in parser.Input[T, S], n int, pred func(T) bool) (S, error) {
	return takeExactly(in, takeNIfInfo, n, pred)
}

// TakeNWhile consumes at most n tokens, stopping early at the first token
// that does not satisfy pred. It never fails.
func TakeNWhile[T comparable, S any](in parser.Input[T, S], n int, pred func(T) bool) (S, error) {
	return parser.Run(in, takeNWhileInfo, func() (S, error) {
		i := 0
		return in.Take(func(t T) bool {
			if i < n && pred(t) {
				i++
				return true
			}
			return false
		}), nil
	})
}

// delimit eats start, takes tokens satisfying pred up to end, then eats end.
// The input is rewound to before start if anything fails.
func delimit[T comparable, S any](
	in parser.Input[T, S],
	start T,
	pred func(T) bool,
	end T,
	some bool,
) (S, error) {
	var zero S

	m := in.Mark(nil)
	s, err := func() (S, error) {
		if _, err := Eat(in, start); err != nil {
			return zero, err
		}

		inner := func(t T) bool { return t != end && pred(t) }
		if some {
			s, err := takeSome(in, inner)
			if err != nil {
				return zero, err
			}
			if _, err := Eat(in, end); err != nil {
				return zero, err
			}
			return s, nil
		}

		s := in.Take(inner)
		if _, err := Eat(in, end); err != nil {
			return zero, err
		}
		return s, nil
	}()

	rewound := true
	if err != nil {
		rewound = in.Rewind(m)
	}
	in.Unmark(nil, err == nil, m)

	if !rewound {
		return zero, parser.NewError(errNoRewind())
	}
	return s, err
}

// Delimited eats start, then takes the tokens satisfying pred up to end, then
// eats end, returning the tokens in between. The run in between may be empty.
func Delimited[T comparable, S any](in parser.Input[T, S], start T, pred func(T) bool, end T) (S, error) {
	return parser.Run(in, delimitedInfo, func() (S, error) {
		return delimit(in, start, pred, end, false)
	})
}

// DelimitedSome is Delimited, but fails if nothing lies between start and end.
func DelimitedSome[T comparable, S any](in parser.Input[T, S], start T, pred func(T) bool, end T) (S, error) {
	return parser.Run(in, delimitedSomeInfo, func() (S, error) {
		return delimit(in, start, pred, end, true)
	})
}

// EOF succeeds only at the end of input.
func EOF[T comparable, S any](in parser.Input[T, S]) error {
	_, err := parser.Run(in, eofInfo, func() (struct{}, error) {
		if in.IsEOF() {
			return struct{}{}, nil
		}
		return parser.Fail[struct{}](parser.ExpectEOF(next(in)))
	})
	return err
}
