package parser

import "unicode/utf8"

// Text is an Input over a string. Tokens are runes and slices are substrings
// of the original string, so nothing is copied while parsing. Slice lengths
// are measured in bytes.
type Text struct {
	start   string
	current string
}

var _ TextInput = (*Text)(nil)

// NewText returns an Input that reads the given string.
func NewText(s string) *Text {
	return &Text{start: s, current: s}
}

// Remaining returns the part of the string that has not been consumed.
func (t *Text) Remaining() string {
	return t.current
}

// Consumed returns the part of the string that has been consumed.
func (t *Text) Consumed() string {
	return t.start[:t.offset()]
}

func (t *Text) offset() int {
	return len(t.start) - len(t.current)
}

// Token returns the next rune.
func (t *Text) Token() (rune, bool) {
	if len(t.current) == 0 {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(t.current)
	return r, true
}

// Slice returns the next n bytes as a string.
func (t *Text) Slice(n int) (string, bool) {
	if n < 0 || n > len(t.current) {
		return "", false
	}
	return t.current[:n], true
}

// Peek returns true if the next rune matches pred.
func (t *Text) Peek(pred func(rune) bool) bool {
	r, ok := t.Token()
	return ok && pred(r)
}

// PeekSlice returns true if the next n bytes match pred.
func (t *Text) PeekSlice(n int, pred func(string) bool) bool {
	s, ok := t.Slice(n)
	return ok && pred(s)
}

// Eat consumes the next rune if it matches pred.
func (t *Text) Eat(pred func(rune) bool) (rune, bool) {
	if len(t.current) == 0 {
		return 0, false
	}

	r, size := utf8.DecodeRuneInString(t.current)
	if !pred(r) {
		return 0, false
	}

	t.current = t.current[size:]
	return r, true
}

// EatSlice consumes the next n bytes if they match pred.
func (t *Text) EatSlice(n int, pred func(string) bool) (string, bool) {
	s, ok := t.Slice(n)
	if !ok || !pred(s) {
		return "", false
	}

	t.current = t.current[n:]
	return s, true
}

// Take consumes runes while they match pred and returns them.
func (t *Text) Take(pred func(rune) bool) string {
	n, _ := t.scan(pred)
	s := t.current[:n]
	t.current = t.current[n:]
	return s
}

// Skip consumes runes while they match pred and returns how many it consumed.
func (t *Text) Skip(pred func(rune) bool) int {
	n, count := t.scan(pred)
	t.current = t.current[n:]
	return count
}

// scan returns the number of bytes and runes at the front of the remaining
// input that match pred.
func (t *Text) scan(pred func(rune) bool) (int, int) {
	n, count := 0, 0
	for n < len(t.current) {
		r, size := utf8.DecodeRuneInString(t.current[n:])
		if !pred(r) {
			break
		}
		n += size
		count++
	}
	return n, count
}

// IsEOF returns true when the whole string has been consumed.
func (t *Text) IsEOF() bool {
	return len(t.current) == 0
}

// Mark returns a marker at the current byte offset.
func (t *Text) Mark(*Info) Marker {
	return MarkAt(t.offset())
}

// Context returns the Range from the marker to the current offset, or just
// the current offset when there is no marker.
func (t *Text) Context(m Marker) Context {
	return between(m, t.offset())
}

// Unmark does nothing.
func (t *Text) Unmark(*Info, bool, Marker) {}

// Rewind moves back (or forward) to the marked offset.
func (t *Text) Rewind(m Marker) bool {
	if !m.Valid() || m.Offset() < 0 || m.Offset() > len(t.start) {
		return false
	}

	t.current = t.start[m.Offset():]
	return true
}
