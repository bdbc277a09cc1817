package parser

// Func is a parser: it reads from the input and returns the value it built or
// an error. On failure the error is normally a *ParseError.
//
// A Func that fails may have consumed input. Callers that need to try
// something else afterward must rewind, which is what the backtracking
// combinators in the match package do for you.
type Func[T comparable, S any, V any] func(in Input[T, S]) (V, error)

// Run calls fn as the parser described by info. It marks the input before
// calling fn and unmarks it afterward, and when fn fails with a *ParseError
// a frame naming info and describing the input from the mark to the failure
// is appended to it.
//
// Run is how a hand-written parser function gets its name into error
// context:
//
//	func number(in parser.TextInput) (int, error) {
//		return parser.Run(in, numberInfo, func() (int, error) {
//			...
//		})
//	}
func Run[T comparable, S any, V any](
	in Input[T, S],
	info *Info,
	fn func() (V, error),
) (V, error) {
	m := in.Mark(info)

	v, err := fn()
	if err != nil {
		if perr, isParseErr := AsParseError(err); isParseErr {
			perr.Push(info.String(), in.Context(m))
		}
	}

	in.Unmark(info, err == nil, m)
	return v, err
}

// Fail returns a ParseError for exp with no frames, along with the zero value
// of V. It is shorthand for the final return of a failing parser.
func Fail[V any](exp Expected) (V, error) {
	var zero V
	return zero, NewError(exp)
}
