package parser

// Bytes is an Input over a byte slice. Tokens are bytes and the slices
// returned are views into the original buffer with their capacity clipped,
// so appending to one can never overwrite input.
type Bytes struct {
	start   []byte
	current []byte
}

var _ BytesInput = (*Bytes)(nil)

// NewBytes returns an Input that reads the given buffer. The buffer must not
// be modified while parsing.
func NewBytes(bs []byte) *Bytes {
	return &Bytes{start: bs, current: bs}
}

// Remaining returns the part of the buffer that has not been consumed.
func (b *Bytes) Remaining() []byte {
	return b.current
}

func (b *Bytes) offset() int {
	return len(b.start) - len(b.current)
}

// Token returns the next byte.
func (b *Bytes) Token() (byte, bool) {
	if len(b.current) == 0 {
		return 0, false
	}
	return b.current[0], true
}

// Slice returns the next n bytes.
func (b *Bytes) Slice(n int) ([]byte, bool) {
	if n < 0 || n > len(b.current) {
		return nil, false
	}
	return b.current[:n:n], true
}

// Peek returns true if the next byte matches pred.
func (b *Bytes) Peek(pred func(byte) bool) bool {
	c, ok := b.Token()
	return ok && pred(c)
}

// PeekSlice returns true if the next n bytes match pred.
func (b *Bytes) PeekSlice(n int, pred func([]byte) bool) bool {
	s, ok := b.Slice(n)
	return ok && pred(s)
}

// Eat consumes the next byte if it matches pred.
func (b *Bytes) Eat(pred func(byte) bool) (byte, bool) {
	c, ok := b.Token()
	if !ok || !pred(c) {
		return 0, false
	}

	b.current = b.current[1:]
	return c, true
}

// EatSlice consumes the next n bytes if they match pred.
func (b *Bytes) EatSlice(n int, pred func([]byte) bool) ([]byte, bool) {
	s, ok := b.Slice(n)
	if !ok || !pred(s) {
		return nil, false
	}

	b.current = b.current[n:]
	return s, true
}

// Take consumes bytes while they match pred and returns them.
func (b *Bytes) Take(pred func(byte) bool) []byte {
	n := b.scan(pred)
	s := b.current[:n:n]
	b.current = b.current[n:]
	return s
}

// Skip consumes bytes while they match pred and returns how many it consumed.
func (b *Bytes) Skip(pred func(byte) bool) int {
	n := b.scan(pred)
	b.current = b.current[n:]
	return n
}

func (b *Bytes) scan(pred func(byte) bool) int {
	n := 0
	for n < len(b.current) && pred(b.current[n]) {
		n++
	}
	return n
}

// IsEOF returns true when the whole buffer has been consumed.
func (b *Bytes) IsEOF() bool {
	return len(b.current) == 0
}

// Mark returns a marker at the current offset.
func (b *Bytes) Mark(*Info) Marker {
	return MarkAt(b.offset())
}

// Context returns the Range from the marker to the current offset, or just
// the current offset when there is no marker.
func (b *Bytes) Context(m Marker) Context {
	return between(m, b.offset())
}

// Unmark does nothing.
func (b *Bytes) Unmark(*Info, bool, Marker) {}

// Rewind moves to the marked offset.
func (b *Bytes) Rewind(m Marker) bool {
	if !m.Valid() || m.Offset() < 0 || m.Offset() > len(b.start) {
		return false
	}

	b.current = b.start[m.Offset():]
	return true
}
