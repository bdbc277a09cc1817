package match

import (
	"github.com/zostay/gordy/v2/parser"
)

var (
	switchInfo      = &parser.Info{Name: "switch"}
	firstInfo       = &parser.Info{Name: "first"}
	longestInfo     = &parser.Info{Name: "longest"}
	manyInfo        = &parser.Info{Name: "many"}
	manyWithSepInfo = &parser.Info{Name: "many_with_sep"}
)

// errNoRewind describes the failure reported when the input refuses to go
// back to a marker, which happens when a streaming input has already dropped
// the marked bytes.
func errNoRewind() parser.Expected {
	return parser.Errorf("input can no longer rewind to the marked position")
}

// attempt runs p and rewinds the input if it fails. The returned bool is false
// only when p failed and the rewind was refused, leaving the input partially
// consumed.
func attempt[T comparable, S any, V any](in parser.Input[T, S], p parser.Func[T, S, V]) (V, bool, error) {
	m := in.Mark(nil)
	v, err := p(in)

	clean := true
	if err != nil {
		clean = in.Rewind(m)
	}

	in.Unmark(nil, err == nil, m)
	return v, clean, err
}

// recoverable returns true if a failure is one that an alternative may be
// tried after: a parse error, with the input safely rewound.
func recoverable(clean bool, err error) bool {
	_, isParseErr := parser.AsParseError(err)
	return clean && isParseErr
}

// offset returns the current offset of the input as reported by a marker.
func offset[T comparable, S any](in parser.Input[T, S]) (int, bool) {
	m := in.Mark(nil)
	in.Unmark(nil, true, m)
	return m.Offset(), m.Valid()
}

// Named returns a parser that runs p under the given name, so failures of p
// carry a frame naming it.
func Named[T comparable, S any, V any](name string, p parser.Func[T, S, V]) parser.Func[T, S, V] {
	info := &parser.Info{Name: name}
	return func(in parser.Input[T, S]) (V, error) {
		return parser.Run(in, info, func() (V, error) {
			return p(in)
		})
	}
}

// Try returns a parser that runs p and, if it fails, rewinds the input to
// where it was before p started.
func Try[T comparable, S any, V any](p parser.Func[T, S, V]) parser.Func[T, S, V] {
	return func(in parser.Input[T, S]) (V, error) {
		v, _, err := attempt(in, p)
		return v, err
	}
}

// Lookahead returns a parser that runs p and then rewinds the input whether p
// succeeded or not. It tests whether p would match without consuming
// anything.
func Lookahead[T comparable, S any, V any](p parser.Func[T, S, V]) parser.Func[T, S, V] {
	return func(in parser.Input[T, S]) (V, error) {
		m := in.Mark(nil)
		v, err := p(in)
		rewound := in.Rewind(m)
		in.Unmark(nil, err == nil, m)

		if err == nil && !rewound {
			return v, parser.NewError(errNoRewind())
		}
		return v, err
	}
}

// Optional returns a parser that runs p and returns a pointer to its value.
// If p fails with a parse error, the input is rewound and nil is returned
// without error.
func Optional[T comparable, S any, V any](p parser.Func[T, S, V]) parser.Func[T, S, *V] {
	return func(in parser.Input[T, S]) (*V, error) {
		v, clean, err := attempt(in, p)
		if err != nil {
			if recoverable(clean, err) {
				return nil, nil
			}
			return nil, err
		}
		return &v, nil
	}
}

// First returns a parser that tries each parser in turn, rewinding after each
// failure, and returns the result of the first to succeed. If all fail, the
// error of the last is returned. It panics if no parsers are given.
func First[T comparable, S any, V any](ps ...parser.Func[T, S, V]) parser.Func[T, S, V] {
	if len(ps) == 0 {
		panic("match: First requires at least one parser")
	}

	return func(in parser.Input[T, S]) (V, error) {
		return parser.Run(in, firstInfo, func() (V, error) {
			var (
				v   V
				err error
			)
			for _, p := range ps {
				var clean bool
				v, clean, err = attempt(in, p)
				if err == nil || !recoverable(clean, err) {
					return v, err
				}
			}
			return v, err
		})
	}
}

// Longest returns a parser that tries every parser in lookahead and then
// commits to the one that consumed the most input. Ties go to the parser
// listed first. If all fail, the error of the last is returned. It panics if
// no parsers are given.
//
// The winning parser runs twice, once to measure it and once for real.
func Longest[T comparable, S any, V any](ps ...parser.Func[T, S, V]) parser.Func[T, S, V] {
	if len(ps) == 0 {
		panic("match: Longest requires at least one parser")
	}

	return func(in parser.Input[T, S]) (V, error) {
		return parser.Run(in, longestInfo, func() (V, error) {
			var zero V

			start, ok := offset(in)
			if !ok {
				return First(ps...)(in)
			}

			best, bestLen := -1, -1
			var lastErr error
			for i, p := range ps {
				m := in.Mark(nil)
				_, err := p(in)
				end, _ := offset(in)
				rewound := in.Rewind(m)
				in.Unmark(nil, err == nil, m)

				if !rewound {
					return zero, parser.NewError(errNoRewind())
				}

				if err != nil {
					if _, isParseErr := parser.AsParseError(err); !isParseErr {
						return zero, err
					}
					lastErr = err
					continue
				}

				if end-start > bestLen {
					best, bestLen = i, end-start
				}
			}

			if best < 0 {
				return zero, lastErr
			}
			return ps[best](in)
		})
	}
}

// Many returns a parser that runs p repeatedly until it fails, returning every
// value produced. The failed final attempt is rewound. If fewer than atLeast
// values are produced, Many fails and rewinds to where it began.
//
// An attempt that succeeds without consuming anything ends the repetition, so
// a parser that can match nothing does not loop forever.
func Many[T comparable, S any, V any](p parser.Func[T, S, V], atLeast int) parser.Func[T, S, []V] {
	return Try(func(in parser.Input[T, S]) ([]V, error) {
		return parser.Run(in, manyInfo, func() ([]V, error) {
			vs := make([]V, 0, atLeast)
			for {
				before, tracked := offset(in)

				v, clean, err := attempt(in, p)
				if err != nil {
					if !recoverable(clean, err) || len(vs) < atLeast {
						return nil, err
					}
					return vs, nil
				}

				vs = append(vs, v)

				if after, _ := offset(in); tracked && after == before {
					break
				}
			}

			if len(vs) < atLeast {
				return parser.Fail[[]V](parser.Errorf("expected at least %d matches but found %d", atLeast, len(vs)))
			}
			return vs, nil
		})
	})
}

// ManyWithSep returns a parser that matches p repeatedly with sep matched in
// between. A separator not followed by a match of p is not consumed. If fewer
// than atLeast values are produced, ManyWithSep fails and rewinds to where it
// began.
func ManyWithSep[T comparable, S any, V any, W any](
	p parser.Func[T, S, V],
	sep parser.Func[T, S, W],
	atLeast int,
) parser.Func[T, S, []V] {
	sepThen := func(in parser.Input[T, S]) (V, error) {
		var zero V
		if _, err := sep(in); err != nil {
			return zero, err
		}
		return p(in)
	}

	return Try(func(in parser.Input[T, S]) ([]V, error) {
		return parser.Run(in, manyWithSepInfo, func() ([]V, error) {
			vs := make([]V, 0, atLeast)
			step := p
			for {
				before, tracked := offset(in)

				v, clean, err := attempt(in, step)
				if err != nil {
					if !recoverable(clean, err) || len(vs) < atLeast {
						return nil, err
					}
					return vs, nil
				}

				vs = append(vs, v)
				step = sepThen

				if after, _ := offset(in); tracked && after == before {
					break
				}
			}

			if len(vs) < atLeast {
				return parser.Fail[[]V](parser.Errorf("expected at least %d matches but found %d", atLeast, len(vs)))
			}
			return vs, nil
		})
	})
}
