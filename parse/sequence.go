package parse

import (
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/tstream"
)

// Policy controls whether a punctuated sequence's trailing separator is
// allowed, required, or forbidden. The three named constants below stand
// in for what a macro-based implementation would generate as three
// distinct wrapper types; Go generics let one Sequence type carry the
// policy as a value instead.
type Policy int

const (
	// Optional allows but does not require a trailing separator, as in
	// an array literal: [1, 2, 3] or [1, 2, 3,].
	Optional Policy = iota
	// Required demands a trailing separator on every item, as in a
	// sequence of `use` statements each ended with a semicolon.
	Required
	// Forbidden disallows a trailing separator, as in a function's
	// argument list: f(a, b, c) not f(a, b, c,).
	Forbidden
)

// Pair is one value plus its following separator, which is absent only
// for the last item of a sequence under Optional or Forbidden policy.
type Pair[T, P any] struct {
	Value T
	Sep   P
	HasSep bool
}

// Sequence is a punctuated list of values of type T separated by tokens
// parsed as P, honoring the given trailing policy.
type Sequence[T, P any] struct {
	Policy Policy
	Pairs  []Pair[T, P]
}

// Len returns the number of values in the sequence.
func (s Sequence[T, P]) Len() int {
	return len(s.Pairs)
}

// IsEmpty reports whether the sequence has no values.
func (s Sequence[T, P]) IsEmpty() bool {
	return len(s.Pairs) == 0
}

// TrailingSep reports whether the sequence ends with a separator.
func (s Sequence[T, P]) TrailingSep() bool {
	if len(s.Pairs) == 0 {
		return false
	}
	return s.Pairs[len(s.Pairs)-1].HasSep
}

// Values returns just the values, discarding separators.
func (s Sequence[T, P]) Values() []T {
	out := make([]T, len(s.Pairs))
	for i, p := range s.Pairs {
		out[i] = p.Value
	}
	return out
}

// ParseSequence parses a Policy-conformant punctuated sequence of values
// using parseValue, separators using parseSep, continuing for as long as
// peekSep reports a separator is next. It stops as soon as peekValue
// reports no further value is available after a separator, which is what
// permits an Optional trailing separator.
func ParseSequence[K comparable, T, P any](
	s *tstream.Stream[K],
	policy Policy,
	peekValue Peek[K],
	parseValue Parser[K, T],
	peekSep Peek[K],
	parseSep Parser[K, P],
) (Sequence[T, P], error) {
	seq := Sequence[T, P]{Policy: policy}
	if !peekValue(s) {
		return seq, nil
	}
	for {
		v, err := parseValue(s)
		if err != nil {
			return seq, err
		}
		pair := Pair[T, P]{Value: v}
		if peekSep(s) {
			sep, err := parseSep(s)
			if err != nil {
				return seq, err
			}
			pair.Sep = sep
			pair.HasSep = true
			seq.Pairs = append(seq.Pairs, pair)
			if policy != Forbidden && !peekValue(s) {
				break
			}
			continue
		}
		if policy == Required {
			return seq, perr.New(perr.ParseError, "expected trailing separator after sequence item").At(s.CursorSpan())
		}
		seq.Pairs = append(seq.Pairs, pair)
		break
	}
	return seq, nil
}
