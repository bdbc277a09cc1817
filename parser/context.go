package parser

import (
	"fmt"
	"strings"
)

// Offset is the Context reported by inputs that only know how far into the
// input they are.
type Offset int

// String returns the offset as a human readable string.
func (o Offset) String() string {
	return fmt.Sprintf("offset %d", int(o))
}

// Range is the Context reported for a marked region. It holds the start and end
// byte offsets of the described region.
type Range struct {
	Start int
	End   int
}

// String returns the range as "start..end", or just the offset when the range
// is empty.
func (r Range) String() string {
	if r.Start == r.End {
		return Offset(r.Start).String()
	}
	return fmt.Sprintf("offset %d..%d", r.Start, r.End)
}

// between describes the input from m to cur. Without a usable marker it is
// just the offset cur.
func between(m Marker, cur int) Context {
	if !m.Valid() || m.Offset() < 0 || m.Offset() > cur {
		return Offset(cur)
	}
	return Range{Start: m.Offset(), End: cur}
}

// Position is a location in text. Line and Column start counting from 1 and
// Offset is the byte offset from the start of the text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the Context reported by Positioned. End is nil when the span
// describes a single point.
type Span struct {
	Name    string
	Start   Position
	End     *Position
	Snippet string
}

// String returns the span as "name:line:col to line:col" along with the
// snippet of text found at the start of the span.
func (s *Span) String() string {
	out := &strings.Builder{}
	if s.Name != "" {
		fmt.Fprint(out, s.Name, ":")
	}

	fmt.Fprint(out, s.Start)
	if s.End != nil && *s.End != s.Start {
		fmt.Fprint(out, " to ", *s.End)
	}

	if s.Snippet != "" {
		fmt.Fprintf(out, " near %q", s.Snippet)
	}

	return out.String()
}
