// Package parse defines the Parse/Peek contracts that hand-written parser
// functions implement, plus the punctuated-sequence helpers built on top
// of them. Rather than trait dispatch, a parser for T is simply a Go
// function value of type Parser[K, T] — the same "table of parse
// functions keyed by token kind" idiom the teacher's own Pratt parser
// uses for its prefix/infix dispatch tables.
package parse

import "github.com/tessera-parse/tessera/tstream"

// Parser parses a T out of the front of a stream, or returns an error.
// On failure the stream's position is unspecified: a Parser may have
// consumed tokens before failing, so a caller that wants to try an
// alternative forks the stream beforehand.
type Parser[K comparable, T any] func(*tstream.Stream[K]) (T, error)

// Peek reports whether a stream is currently positioned at something a
// corresponding Parser could consume, without consuming anything itself.
type Peek[K comparable] func(*tstream.Stream[K]) bool

// Option parses a T if peek reports one is present, or returns the zero
// value and ok=false otherwise, leaving the stream untouched in the
// latter case.
func Option[K comparable, T any](s *tstream.Stream[K], peek Peek[K], parse Parser[K, T]) (T, bool, error) {
	var zero T
	if !peek(s) {
		return zero, false, nil
	}
	v, err := parse(s)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Boxed adapts a Parser[K, T] into a Parser[K, *T], for contexts that
// need a pointer (e.g. to store T in an interface slot alongside other
// node kinds without boxing on every call site).
func Boxed[K comparable, T any](p Parser[K, T]) Parser[K, *T] {
	return func(s *tstream.Stream[K]) (*T, error) {
		v, err := p(s)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}
