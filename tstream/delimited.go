package tstream

import (
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/span"
)

// Delimited pairs a value with the span of the delimiters that enclosed
// it, such as the parentheses around a grouped expression or the braces
// around a block.
type Delimited[T any] struct {
	Span  span.Span
	Value T
}

// Map transforms the wrapped value, preserving the delimiter span.
func (d Delimited[T]) Map(f func(T) T) Delimited[T] {
	return Delimited[T]{Span: d.Span, Value: f(d.Value)}
}

// ExtractInner consumes a balanced open/close pair starting at the
// current cursor (which must be positioned on the open token), tracking
// nested occurrences of the same pair, and returns a child stream
// windowed over exactly the tokens between them plus the covering span of
// the whole delimited group. The parent stream's cursor ends up just
// past the matching close token.
//
// open and close must be distinct; passing the same type for both would
// make every occurrence look like both an open and a close.
func ExtractInner[K comparable](s *Stream[K], open, close K) (Delimited[*Stream[K]], error) {
	var zero Delimited[*Stream[K]]

	openTok, ok := s.Eat(open)
	if !ok {
		return zero, perr.Newf(perr.ParseError, "expected opening delimiter").At(s.CursorSpan())
	}

	innerStart := s.cursor
	depth := 1
	for {
		tok, ok := s.PeekTokenRaw(0)
		if !ok {
			return zero, perr.Newf(perr.ParseError, "unterminated delimited group").At(openTok.Span)
		}
		switch tok.Value.Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				innerEnd := s.cursor
				closeTok, _ := s.NextRaw()
				covering := span.Join(openTok.Span, closeTok.Span)
				inner := &Stream[K]{
					buf:        s.buf,
					rangeStart: innerStart,
					rangeEnd:   innerEnd,
					cursor:     innerStart,
					lastCursor: innerStart - 1,
					skip:       s.skip,
					depth:      s.depth,
					maxDepth:   s.maxDepth,
				}
				return Delimited[*Stream[K]]{Span: covering, Value: inner}, nil
			}
		}
		s.cursor++
	}
}
