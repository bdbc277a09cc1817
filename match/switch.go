package match

import (
	"github.com/zostay/gordy/v2/parser"
)

// Case is one branch of a Switch. Build cases with When, WhenPeek, and
// Otherwise.
type Case[T comparable, S any, V any] struct {
	guard func(parser.Input[T, S]) (any, error)
	peek  bool
	body  func(parser.Input[T, S], any) (V, error)
}

// When builds a Case that is chosen when guard succeeds. The input consumed by
// guard stays consumed and body is then called with the value guard returned.
func When[T comparable, S any, G any, V any](
	guard parser.Func[T, S, G],
	body func(in parser.Input[T, S], g G) (V, error),
) Case[T, S, V] {
	return Case[T, S, V]{
		guard: func(in parser.Input[T, S]) (any, error) {
			return guard(in)
		},
		body: func(in parser.Input[T, S], g any) (V, error) {
			gv, _ := g.(G)
			return body(in, gv)
		},
	}
}

// WhenPeek is like When, except that the input is rewound after guard
// succeeds, so body sees the input exactly as guard did. This allows a case to
// be chosen by looking as far ahead as needed.
func WhenPeek[T comparable, S any, G any, V any](
	guard parser.Func[T, S, G],
	body func(in parser.Input[T, S], g G) (V, error),
) Case[T, S, V] {
	c := When(guard, body)
	c.peek = true
	return c
}

// Otherwise builds the catch-all Case. It must be the last case of a Switch.
func Otherwise[T comparable, S any, V any](body parser.Func[T, S, V]) Case[T, S, V] {
	return Case[T, S, V]{
		body: func(in parser.Input[T, S], _ any) (V, error) {
			return body(in)
		},
	}
}

// Switch returns a parser that chooses among the given cases. Cases are tried
// in the order given. The guard of each case is run and, on failure, the input
// is rewound and the next case is tried. The first case whose guard succeeds
// is committed to: its body runs and its result is the result of the Switch,
// even if a later case would also have matched.
//
// If no case matches, the failure of the last guard tried is returned.
//
// Switch panics if it is given no cases or if an Otherwise case is anywhere
// but last. Both are mistakes in the grammar, not in the input.
func Switch[T comparable, S any, V any](cases ...Case[T, S, V]) parser.Func[T, S, V] {
	if len(cases) == 0 {
		panic("match: Switch requires at least one case")
	}

	for i, c := range cases {
		if c.guard == nil && i != len(cases)-1 {
			panic("match: Otherwise must be the last case of a Switch")
		}
	}

	return func(in parser.Input[T, S]) (V, error) {
		return parser.Run(in, switchInfo, func() (V, error) {
			var (
				zero    V
				lastErr error
			)

			for _, c := range cases {
				if c.guard == nil {
					return c.body(in, nil)
				}

				m := in.Mark(nil)
				g, err := c.guard(in)

				rewound := true
				if err != nil || c.peek {
					rewound = in.Rewind(m)
				}
				in.Unmark(nil, err == nil, m)

				if err != nil {
					if !recoverable(rewound, err) {
						return zero, err
					}
					lastErr = err
					continue
				}

				if !rewound {
					return zero, parser.NewError(errNoRewind())
				}

				return c.body(in, g)
			}

			return zero, lastErr
		})
	}
}
