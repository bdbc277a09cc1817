package parser

import (
	"strings"
	"unicode/utf8"
)

// SnippetSize is the most bytes of input a Span will quote.
const SnippetSize = 7

// Positioned is a Text input that reports its context as a Span with line and
// column numbers. Name, when set, is included in the span (usually a file
// name).
type Positioned struct {
	*Text
	Name string
}

var _ TextInput = (*Positioned)(nil)

// NewPositioned returns a position tracking Input over the given string.
func NewPositioned(name, s string) *Positioned {
	return &Positioned{Text: NewText(s), Name: name}
}

// Context returns a Span running from the marker to the current position, or
// a single point Span at the current position when the marker is not valid.
func (p *Positioned) Context(m Marker) Context {
	cur := p.offset()

	from := cur
	if m.Valid() && m.Offset() >= 0 && m.Offset() <= cur {
		from = m.Offset()
	}

	span := &Span{
		Name:    p.Name,
		Start:   p.position(from),
		Snippet: snippet(p.start[from:]),
	}

	if from != cur {
		end := p.position(cur)
		span.End = &end
	}

	return span
}

// position works out the line and column of the given byte offset. This
// rescans the consumed text on every call, so it is only meant to be used for
// reporting.
func (p *Positioned) position(off int) Position {
	consumed := p.start[:off]
	line := 1 + strings.Count(consumed, "\n")
	col := 1 + utf8.RuneCountInString(consumed[strings.LastIndexByte(consumed, '\n')+1:])
	return Position{Line: line, Column: col, Offset: off}
}

// snippet returns at most SnippetSize bytes from the front of s without
// splitting a rune.
func snippet(s string) string {
	if len(s) <= SnippetSize {
		return s
	}

	n := SnippetSize
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
