package parser

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/zostay/go-std/slices"
)

// Kind identifies what sort of thing a parser expected to find.
type Kind int

// The kinds of expectation a ParseError may describe.
const (
	KindToken Kind = iota // a single token
	KindSlice             // a run of tokens
	KindEOF               // the end of input, or more input
	KindOther             // a custom message
)

// Expected describes what a failed parser wanted and what it found instead.
// Want and Found are nil when unknown or absent.
type Expected struct {
	Kind  Kind
	Want  any
	Found any

	// More is set on KindEOF when input was wanted but the end of input was
	// found, rather than the other way around.
	More bool

	// Message is the text of a KindOther expectation.
	Message string
}

// ExpectToken builds a token mismatch.
func ExpectToken(want, found any) Expected {
	return Expected{Kind: KindToken, Want: want, Found: found}
}

// ExpectSlice builds a slice mismatch.
func ExpectSlice(want, found any) Expected {
	return Expected{Kind: KindSlice, Want: want, Found: found}
}

// ExpectEOF builds a mismatch where the end of input was wanted but found was
// still there.
func ExpectEOF(found any) Expected {
	return Expected{Kind: KindEOF, Found: found}
}

// ExpectMore builds a mismatch where want was needed but the input had ended.
func ExpectMore(want any) Expected {
	return Expected{Kind: KindEOF, Want: want, More: true}
}

// Errorf builds a custom expectation from a format string.
func Errorf(format string, args ...any) Expected {
	return Expected{Kind: KindOther, Message: fmt.Sprintf(format, args...)}
}

// String renders the expectation as a sentence.
func (e Expected) String() string {
	switch e.Kind {
	case KindToken:
		return describe("token", e.Want, e.Found)
	case KindSlice:
		return describe("slice", e.Want, e.Found)
	case KindEOF:
		switch {
		case e.More && e.Want != nil:
			return fmt.Sprintf("expected %s but found EOF", quote(e.Want))
		case e.More:
			return "expected more input but found EOF"
		case e.Found != nil:
			return fmt.Sprintf("expected EOF but found %s", quote(e.Found))
		default:
			return "expected EOF but input remains"
		}
	default:
		return e.Message
	}
}

func describe(what string, want, found any) string {
	switch {
	case want != nil && found != nil:
		return fmt.Sprintf("expected %s %s but found %s", what, quote(want), quote(found))
	case want != nil:
		return fmt.Sprintf("expected %s %s but none was found", what, quote(want))
	case found != nil:
		return fmt.Sprintf("unexpected %s %s", what, quote(found))
	default:
		return fmt.Sprintf("expected any %s but none was found", what)
	}
}

// quote renders tokens and slices in Go quoted form.
func quote(v any) string {
	switch x := v.(type) {
	case rune, byte, string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return fmt.Sprintf("%q", string(x))
	case []rune:
		return fmt.Sprintf("%q", string(x))
	case fmt.Stringer:
		return fmt.Sprintf("%q", x.String())
	default:
		return fmt.Sprint(x)
	}
}

// Frame names a parser that failed along with where in the input it was
// working when it did.
type Frame struct {
	Parser  string
	Context Context
}

// String renders the frame as a single context line.
func (f Frame) String() string {
	if f.Context == nil {
		return " + " + f.Parser
	}
	return fmt.Sprintf(" + %s at %s", f.Parser, f.Context)
}

// ParseError is the error returned by parsers when the input does not match.
// Frames lists the parsers that failed, innermost first.
type ParseError struct {
	Expected Expected
	Frames   []Frame
}

// NewError returns a ParseError for the given expectation with no frames.
func NewError(exp Expected) *ParseError {
	return &ParseError{Expected: exp}
}

// Push appends a frame to the error and returns the error.
func (e *ParseError) Push(parser string, ctx Context) *ParseError {
	e.Frames = append(e.Frames, Frame{Parser: parser, Context: ctx})
	return e
}

// Context returns the context of the innermost frame, or nil.
func (e *ParseError) Context() Context {
	if len(e.Frames) == 0 {
		return nil
	}
	return e.Frames[0].Context
}

// Error renders the expectation followed by one line per frame.
func (e *ParseError) Error() string {
	lines := slices.Map(e.Frames, Frame.String)
	return strings.Join(append([]string{e.Expected.String()}, lines...), "\n")
}

// AsParseError finds the ParseError in err's chain.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
