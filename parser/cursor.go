package parser

import (
	"unicode/utf8"

	"github.com/zostay/gordy/v2/token"
)

// Cursor is an Input over a string that addresses everything by offset.
// Slices come back as token.Extent values carrying their start and end
// offsets, and the context is a Range of offsets. This suits callers that
// want to hold on to positions into a source they keep themselves.
type Cursor struct {
	src string
	pos int
}

var _ CursorInput = (*Cursor)(nil)

// NewCursor returns an offset addressed Input over the given string.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Source returns the whole string the cursor reads.
func (c *Cursor) Source() string {
	return c.src
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) extent(start, end int) token.Extent {
	return token.Extent{Start: start, End: end, Value: c.src[start:end]}
}

// Token returns the next rune.
func (c *Cursor) Token() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, true
}

// Slice returns the extent of the next n bytes.
func (c *Cursor) Slice(n int) (token.Extent, bool) {
	if n < 0 || c.pos+n > len(c.src) {
		return token.Extent{}, false
	}
	return c.extent(c.pos, c.pos+n), true
}

// Peek returns true if the next rune matches pred.
func (c *Cursor) Peek(pred func(rune) bool) bool {
	r, ok := c.Token()
	return ok && pred(r)
}

// PeekSlice returns true if the extent of the next n bytes matches pred.
func (c *Cursor) PeekSlice(n int, pred func(token.Extent) bool) bool {
	e, ok := c.Slice(n)
	return ok && pred(e)
}

// Eat consumes the next rune if it matches pred.
func (c *Cursor) Eat(pred func(rune) bool) (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}

	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	if !pred(r) {
		return 0, false
	}

	c.pos += size
	return r, true
}

// EatSlice consumes the next n bytes if their extent matches pred.
func (c *Cursor) EatSlice(n int, pred func(token.Extent) bool) (token.Extent, bool) {
	e, ok := c.Slice(n)
	if !ok || !pred(e) {
		return token.Extent{}, false
	}

	c.pos = e.End
	return e, true
}

// Take consumes runes while they match pred and returns their extent.
func (c *Cursor) Take(pred func(rune) bool) token.Extent {
	start := c.pos
	c.Skip(pred)
	return c.extent(start, c.pos)
}

// Skip consumes runes while they match pred and returns how many it consumed.
func (c *Cursor) Skip(pred func(rune) bool) int {
	count := 0
	for c.pos < len(c.src) {
		r, size := utf8.DecodeRuneInString(c.src[c.pos:])
		if !pred(r) {
			break
		}
		c.pos += size
		count++
	}
	return count
}

// IsEOF returns true when the whole source has been consumed.
func (c *Cursor) IsEOF() bool {
	return c.pos >= len(c.src)
}

// Mark returns a marker at the current offset.
func (c *Cursor) Mark(*Info) Marker {
	return MarkAt(c.pos)
}

// Context returns the Range from the marker to the current offset.
func (c *Cursor) Context(m Marker) Context {
	if m.Valid() && m.Offset() <= c.pos {
		return Range{Start: m.Offset(), End: c.pos}
	}
	return Range{Start: c.pos, End: c.pos}
}

// Unmark does nothing.
func (c *Cursor) Unmark(*Info, bool, Marker) {}

// Rewind moves to the marked offset.
func (c *Cursor) Rewind(m Marker) bool {
	if !m.Valid() || m.Offset() < 0 || m.Offset() > len(c.src) {
		return false
	}

	c.pos = m.Offset()
	return true
}
