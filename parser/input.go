package parser

import (
	"fmt"

	"github.com/zostay/gordy/v2/token"
)

// Info describes a parser to the input when it marks a position. Inputs that
// do nothing with the information are free to ignore it.
type Info struct {
	// Name is the name of the parser, as it should appear in error context.
	Name string
}

// String returns the parser name.
func (i *Info) String() string {
	if i == nil {
		return ""
	}
	return i.Name
}

// Marker records a position within an input so the input can later be rewound
// to it. The zero value is NoMarker, which signals that the input could not
// produce a marker.
type Marker struct {
	off   int
	valid bool
}

// NoMarker is returned by inputs that cannot rewind.
var NoMarker = Marker{}

// MarkAt returns a valid Marker for the given offset. Input implementations
// use this to build their markers.
func MarkAt(off int) Marker {
	return Marker{off: off, valid: true}
}

// Offset returns the offset the marker was made at.
func (m Marker) Offset() int {
	return m.off
}

// Valid returns true if the marker may be used for rewinding.
func (m Marker) Valid() bool {
	return m.valid
}

// Context describes where in the input a point or a span lies. A nil Context
// means the input is unable to describe its position.
type Context interface {
	fmt.Stringer
}

// Input is the consumption protocol every parser works against. T is the
// token type and S is the slice type returned by Slice, EatSlice, and Take.
//
// Consuming methods only ever move forward and only when they succeed. A
// failed Eat or EatSlice leaves the input exactly as it was. Peeking methods
// never move. Take and Skip call pred once per token, in order, and stop at
// the first token it rejects.
type Input[T comparable, S any] interface {
	// Token returns the next token without consuming it. It returns false at
	// the end of input.
	Token() (T, bool)

	// Slice returns the next n units of input without consuming them. It
	// returns false if fewer than n remain.
	Slice(n int) (S, bool)

	// Peek returns true if there is a next token and it satisfies pred.
	Peek(pred func(T) bool) bool

	// PeekSlice returns true if the next n units exist and satisfy pred.
	PeekSlice(n int, pred func(S) bool) bool

	// Eat consumes and returns the next token if it satisfies pred.
	Eat(pred func(T) bool) (T, bool)

	// EatSlice consumes and returns the next n units if they satisfy pred.
	EatSlice(n int, pred func(S) bool) (S, bool)

	// Take consumes the longest run of tokens satisfying pred, which may be
	// empty.
	Take(pred func(T) bool) S

	// Skip consumes the longest run of tokens satisfying pred and returns the
	// number of tokens consumed.
	Skip(pred func(T) bool) int

	// IsEOF returns true when no further tokens can be read.
	IsEOF() bool

	// Mark captures the current position. It returns NoMarker when the input
	// cannot rewind.
	Mark(info *Info) Marker

	// Context describes the input between the marker and the current
	// position, or just the current position when the marker is not valid.
	// It returns nil when unsupported.
	Context(m Marker) Context

	// Unmark is called when the parser that made the marker completes. It
	// must not change the input.
	Unmark(info *Info, ok bool, m Marker)

	// Rewind restores the position captured by the marker. It returns false
	// if the position can no longer be restored.
	Rewind(m Marker) bool
}

// Window returns how far ahead in can look when it reads through a fixed size
// window, as File does. Inputs that wrap another, like Observed, are looked
// through.
func Window[T comparable, S any](in Input[T, S]) (int, bool) {
	for {
		switch x := any(in).(type) {
		case interface{ Window() int }:
			return x.Window(), true
		case interface{ Unwrap() Input[T, S] }:
			in = x.Unwrap()
		default:
			return 0, false
		}
	}
}

// Common instantiations of Input.
type (
	TextInput   = Input[rune, string]
	BytesInput  = Input[byte, []byte]
	CursorInput = Input[rune, token.Extent]
)
