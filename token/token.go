// Package token describes the smallest capabilities the parser needs from the
// values it works with: atomic tokens that can be compared for equality and
// slices that have a measurable length.
package token

import (
	"bytes"
	"fmt"
	"reflect"
)

// Token is the constraint satisfied by the atomic units of input, such as a
// rune of text or a byte of binary data.
type Token interface {
	comparable
}

// Lengther is implemented by slice types that are able to report their own
// length.
type Lengther interface {
	Len() int
}

// Len returns the length of a slice value. Strings and byte slices report
// their length in bytes, rune slices in runes, and anything implementing
// Lengther reports whatever its Len method says. Any other type is a
// programming error and will panic.
func Len[S any](s S) int {
	switch v := any(s).(type) {
	case string:
		return len(v)
	case []byte:
		return len(v)
	case []rune:
		return len(v)
	case Lengther:
		return v.Len()
	}

	panic(fmt.Sprintf("token: no length for slice of type %T", s))
}

// Equal reports whether two slice values hold the same tokens. Extents are
// compared by value and not by position.
func Equal[S any](a, b S) bool {
	switch x := any(a).(type) {
	case string:
		return x == any(b).(string)
	case []byte:
		return bytes.Equal(x, any(b).([]byte))
	case []rune:
		y := any(b).([]rune)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case Extent:
		return x.Value == any(b).(Extent).Value
	}

	return reflect.DeepEqual(a, b)
}
