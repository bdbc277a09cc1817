package parser

import (
	"io"

	"github.com/pkg/errors"
)

// DefaultBufferSize is the window size used by NewFile.
const DefaultBufferSize = 4096

// maxEmptyReads limits how many times in a row a reader may return no data
// and no error before File gives up on it.
const maxEmptyReads = 100

// File is an Input that streams bytes from an io.Reader through a fixed size
// read-ahead window. Tokens are bytes. Because the window is reused, every
// slice it returns is a copy owned by the caller.
//
// Bytes before the cursor are kept until the window runs out of room, at
// which point they are dropped, except for those back to the oldest
// outstanding mark when keeping them still leaves room to read. Rewinding to
// a position that has been dropped is refused. Slice and EatSlice cannot look
// further ahead than the size of the window.
//
// A read error other than io.EOF ends the input as if it were EOF and is
// reported afterward by Err.
type File struct {
	r     io.Reader
	buf   []byte
	pos   int
	base  int
	eof   bool
	err   error
	marks []int
}

var _ BytesInput = (*File)(nil)

// NewFile returns an Input reading from r with the default window size.
func NewFile(r io.Reader) *File {
	return NewFileSize(r, DefaultBufferSize)
}

// NewFileSize returns an Input reading from r through a window of the given
// size. A size less than 1 selects the default.
func NewFileSize(r io.Reader, size int) *File {
	if size < 1 {
		size = DefaultBufferSize
	}

	return &File{r: r, buf: make([]byte, 0, size)}
}

// Err returns the read error that ended the input, if any.
func (f *File) Err() error {
	return f.err
}

// Window returns the size of the read-ahead window, which is the most that
// Slice and EatSlice can ask for.
func (f *File) Window() int {
	return cap(f.buf)
}

// Offset returns the number of bytes consumed from the start of the stream.
func (f *File) Offset() int {
	return f.base + f.pos
}

// fill tries to make at least n unread bytes available in the window.
func (f *File) fill(n int) bool {
	if n > cap(f.buf) {
		return false
	}

	for len(f.buf)-f.pos < n {
		if f.eof {
			return false
		}

		if len(f.buf) == cap(f.buf) {
			f.compact()
		}

		f.read()
	}

	return true
}

// compact drops consumed bytes at the front of the window. Marks at the
// front of the window are given up so that some room is always freed.
func (f *File) compact() {
	keep := f.Offset()
	for _, off := range f.marks {
		if off > f.base && off < keep {
			keep = off
		}
	}

	drop := keep - f.base
	n := copy(f.buf, f.buf[drop:])
	f.buf = f.buf[:n]
	f.base = keep
	f.pos -= drop
}

// read appends the next chunk of the stream to the window.
func (f *File) read() {
	for i := 0; i < maxEmptyReads; i++ {
		n, err := f.r.Read(f.buf[len(f.buf):cap(f.buf)])
		f.buf = f.buf[:len(f.buf)+n]

		if err != nil {
			f.eof = true
			if !errors.Is(err, io.EOF) {
				f.err = errors.Wrapf(err, "read at offset %d", f.base+len(f.buf))
			}
			return
		}

		if n > 0 {
			return
		}
	}

	f.eof = true
	f.err = io.ErrNoProgress
}

// view returns the next n bytes without copying them.
func (f *File) view(n int) ([]byte, bool) {
	if n < 0 || !f.fill(n) {
		return nil, false
	}
	return f.buf[f.pos : f.pos+n : f.pos+n], true
}

// Token returns the next byte.
func (f *File) Token() (byte, bool) {
	if !f.fill(1) {
		return 0, false
	}
	return f.buf[f.pos], true
}

// Slice returns a copy of the next n bytes.
func (f *File) Slice(n int) ([]byte, bool) {
	v, ok := f.view(n)
	if !ok {
		return nil, false
	}
	return append([]byte{}, v...), true
}

// Peek returns true if the next byte matches pred.
func (f *File) Peek(pred func(byte) bool) bool {
	c, ok := f.Token()
	return ok && pred(c)
}

// PeekSlice returns true if the next n bytes match pred. The slice handed to
// pred is only valid for the duration of the call.
func (f *File) PeekSlice(n int, pred func([]byte) bool) bool {
	v, ok := f.view(n)
	return ok && pred(v)
}

// Eat consumes the next byte if it matches pred.
func (f *File) Eat(pred func(byte) bool) (byte, bool) {
	c, ok := f.Token()
	if !ok || !pred(c) {
		return 0, false
	}

	f.pos++
	return c, true
}

// EatSlice consumes the next n bytes if they match pred and returns a copy of
// them. The slice handed to pred is only valid for the duration of the call.
func (f *File) EatSlice(n int, pred func([]byte) bool) ([]byte, bool) {
	v, ok := f.view(n)
	if !ok || !pred(v) {
		return nil, false
	}

	out := append([]byte{}, v...)
	f.pos += n
	return out, true
}

// Take consumes bytes while they match pred, reading ahead as needed, and
// returns a copy of them.
func (f *File) Take(pred func(byte) bool) []byte {
	out := []byte{}
	for f.fill(1) {
		start := f.pos
		for f.pos < len(f.buf) && pred(f.buf[f.pos]) {
			f.pos++
		}

		out = append(out, f.buf[start:f.pos]...)
		if f.pos < len(f.buf) {
			break
		}
	}
	return out
}

// Skip consumes bytes while they match pred and returns how many it consumed.
func (f *File) Skip(pred func(byte) bool) int {
	count := 0
	for f.fill(1) {
		start := f.pos
		for f.pos < len(f.buf) && pred(f.buf[f.pos]) {
			f.pos++
		}

		count += f.pos - start
		if f.pos < len(f.buf) {
			break
		}
	}
	return count
}

// IsEOF returns true when the stream has no more bytes.
func (f *File) IsEOF() bool {
	return !f.fill(1)
}

// Mark returns a marker at the current stream offset. The window holds on to
// the bytes after it until it is unmarked, room permitting.
func (f *File) Mark(*Info) Marker {
	off := f.Offset()
	f.marks = append(f.marks, off)
	return MarkAt(off)
}

// Context returns the Range from the marker to the current stream offset. The
// marked bytes need not still be in the window.
func (f *File) Context(m Marker) Context {
	return between(m, f.Offset())
}

// Unmark releases the bytes held for the marker.
func (f *File) Unmark(_ *Info, _ bool, m Marker) {
	if !m.Valid() {
		return
	}

	for i := len(f.marks) - 1; i >= 0; i-- {
		if f.marks[i] == m.Offset() {
			f.marks = append(f.marks[:i], f.marks[i+1:]...)
			return
		}
	}
}

// Rewind moves back to the marked offset if it is still in the window.
func (f *File) Rewind(m Marker) bool {
	if !m.Valid() {
		return false
	}

	off := m.Offset() - f.base
	if off < 0 || off > len(f.buf) {
		return false
	}

	f.pos = off
	return true
}
