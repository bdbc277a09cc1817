package match

import (
	"cmp"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Predicate is a function that returns true if it matches a single token or
// false if it does not.
type Predicate[T any] func(t T) bool

// Anything matches every token.
func Anything[T any](T) bool { return true }

// Is creates a Predicate matching only the given token.
func Is[T comparable](want T) Predicate[T] {
	return func(t T) bool {
		return t == want
	}
}

// In creates a Predicate from the set of tokens given.
func In[T comparable](set ...T) Predicate[T] {
	return func(t T) bool {
		for _, c := range set {
			if c == t {
				return true
			}
		}
		return false
	}
}

// Between creates a Predicate that matches any token in the given range. The
// match is inclusive so tokens equal to either end point are also matched.
func Between[T cmp.Ordered](lo, hi T) Predicate[T] {
	return func(t T) bool {
		return t >= lo && t <= hi
	}
}

// AnyOf creates a combined Predicate that matches a token that matches any of
// the given predicates.
func AnyOf[T any](preds ...Predicate[T]) Predicate[T] {
	switch len(preds) {
	case 0:
		return func(T) bool { return false }
	case 1:
		return preds[0]
	default:
		return func(t T) bool {
			for _, pred := range preds {
				if pred(t) {
					return true
				}
			}
			return false
		}
	}
}

// NoneOf creates a combined Predicate that matches a token that does not
// match any of the given predicates.
func NoneOf[T any](preds ...Predicate[T]) Predicate[T] {
	return func(t T) bool {
		for _, pred := range preds {
			if pred(t) {
				return false
			}
		}
		return true
	}
}

// ButNot creates a combined Predicate that matches a token that matches the
// first predicate, but does not match the second.
func ButNot[T any](this, that Predicate[T]) Predicate[T] {
	return func(t T) bool {
		return this(t) && !that(t)
	}
}

// Or returns a Predicate matching a token that matches p or any of the
// others.
func (p Predicate[T]) Or(others ...Predicate[T]) Predicate[T] {
	return AnyOf(append([]Predicate[T]{p}, others...)...)
}

// Except returns a Predicate matching a token that matches p but none of the
// others.
func (p Predicate[T]) Except(others ...Predicate[T]) Predicate[T] {
	return ButNot(p, AnyOf(others...))
}

// InTables creates a Predicate matching runes in any of the given unicode
// tables. The tables are merged once, up front.
func InTables(tabs ...*unicode.RangeTable) Predicate[rune] {
	tab := rangetable.Merge(tabs...)
	return func(r rune) bool {
		return unicode.Is(tab, r)
	}
}

// Common predicates for text and binary input.
var (
	Digit      = Between('0', '9')
	ByteDigit  = Between[byte]('0', '9')
	Space      = Predicate[rune](unicode.IsSpace)
	ByteSpace  = In[byte](' ', '\t', '\n', '\r', '\v', '\f')
	Letter     = Predicate[rune](unicode.IsLetter)
	ASCIIAlpha = AnyOf(Between('a', 'z'), Between('A', 'Z'))
)
