// Package tstream implements the token stream: a forkable cursor over a
// shared token buffer with significant/raw reading modes, a recursion
// guard, and delimiter extraction. It is the machinery every hand-written
// parser function in this toolkit is built against.
package tstream

import (
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/span"
	"github.com/tessera-parse/tessera/srcbuf"
	"github.com/tessera-parse/tessera/token"
)

// Stream is a cursor into a shared token buffer. Streams are cheap to
// fork: a fork shares the underlying buffer but has its own cursor, so
// speculative parsing can try an alternative and discard it without
// disturbing the parent.
type Stream[K comparable] struct {
	buf *srcbuf.Buffer[K]

	rangeStart int // absolute index this stream's window begins at
	rangeEnd   int // absolute index this stream's window ends at, -1 = open
	cursor     int // absolute index of the next token Next will return
	lastCursor int // absolute index of the last token Next returned

	skip token.SkipSet[K]

	depth    int
	maxDepth int
}

// New returns a stream over the whole of buf, starting at its current
// start index, with recursion limit maxDepth (maxDepth <= 0 means
// unbounded).
func New[K comparable](buf *srcbuf.Buffer[K], skip token.SkipSet[K], maxDepth int) *Stream[K] {
	return &Stream[K]{
		buf:        buf,
		rangeStart: buf.Start(),
		rangeEnd:   -1,
		cursor:     buf.Start(),
		lastCursor: buf.Start() - 1,
		skip:       skip,
		maxDepth:   maxDepth,
	}
}

// Window returns a stream sharing s's buffer but bounded to the absolute
// index range [from, to), with its cursor reset to from. It is how the
// incremental engine and jsonl.ParseDocument hand a parse function a view
// restricted to exactly one chunk.
func Window[K comparable](s *Stream[K], from, to int) *Stream[K] {
	return &Stream[K]{
		buf:        s.buf,
		rangeStart: from,
		rangeEnd:   to,
		cursor:     from,
		lastCursor: from - 1,
		skip:       s.skip,
		maxDepth:   s.maxDepth,
	}
}

func (s *Stream[K]) end() int {
	if s.rangeEnd >= 0 {
		return s.rangeEnd
	}
	return s.buf.End()
}

// Position returns the stream's current absolute cursor, suitable for
// passing to Rewind later.
func (s *Stream[K]) Position() int {
	return s.cursor
}

// Rewind resets the cursor to a position previously returned by Position.
// Rewinding to a position before the stream's window or past its end is
// clamped.
func (s *Stream[K]) Rewind(pos int) {
	if pos < s.rangeStart {
		pos = s.rangeStart
	}
	if pos > s.end() {
		pos = s.end()
	}
	s.cursor = pos
}

// Fork returns an independent stream sharing the same buffer and window,
// starting at this stream's current cursor. Advancing the fork never
// affects the parent; the parent must itself Rewind or Next past the
// fork's progress to adopt it.
func (s *Stream[K]) Fork() *Stream[K] {
	return &Stream[K]{
		buf:        s.buf,
		rangeStart: s.rangeStart,
		rangeEnd:   s.rangeEnd,
		cursor:     s.cursor,
		lastCursor: s.lastCursor,
		skip:       s.skip,
		depth:      s.depth,
		maxDepth:   s.maxDepth,
	}
}

// PeekTokenRaw returns the token at offset positions ahead of the cursor
// without applying the skip set, and whether one exists within range.
func (s *Stream[K]) PeekTokenRaw(offset int) (token.Spanned[K], bool) {
	idx := s.cursor + offset
	if idx < s.rangeStart || idx >= s.end() {
		var zero token.Spanned[K]
		return zero, false
	}
	return s.buf.At(idx)
}

// NextRaw advances past and returns the very next token, applying no skip
// set, or reports ok=false at the end of the stream's window.
func (s *Stream[K]) NextRaw() (token.Spanned[K], bool) {
	tok, ok := s.PeekTokenRaw(0)
	if !ok {
		return tok, false
	}
	s.lastCursor = s.cursor
	s.cursor++
	return tok, true
}

// skipToSignificant advances the cursor past any tokens in the skip set,
// without consuming the first significant token it finds.
func (s *Stream[K]) skipToSignificant() {
	for {
		tok, ok := s.PeekTokenRaw(0)
		if !ok || !s.skip.Skip(tok.Value.Type) {
			return
		}
		s.cursor++
	}
}

// PeekToken returns the next significant token (skipping skip-set tokens)
// without consuming it or moving the cursor.
func (s *Stream[K]) PeekToken() (token.Spanned[K], bool) {
	f := *s
	f.skipToSignificant()
	return f.PeekTokenRaw(0)
}

// PeekTokenAt returns the nth significant token ahead (0 = next), skipping
// over skip-set tokens as it counts.
func (s *Stream[K]) PeekTokenAt(n int) (token.Spanned[K], bool) {
	f := s.Fork()
	f.skipToSignificant()
	var tok token.Spanned[K]
	var ok bool
	for i := 0; i <= n; i++ {
		f.skipToSignificant()
		tok, ok = f.NextRaw()
		if !ok {
			return tok, false
		}
	}
	return tok, true
}

// PeekType reports whether the next significant token has the given type.
func (s *Stream[K]) PeekType(typ K) bool {
	tok, ok := s.PeekToken()
	return ok && tok.Value.Type == typ
}

// Next advances past and returns the next significant token.
func (s *Stream[K]) Next() (token.Spanned[K], bool) {
	s.skipToSignificant()
	return s.NextRaw()
}

// Eat advances past the next significant token if it has the given type,
// reporting whether it did.
func (s *Stream[K]) Eat(typ K) (token.Spanned[K], bool) {
	tok, ok := s.PeekToken()
	if !ok || tok.Value.Type != typ {
		var zero token.Spanned[K]
		return zero, false
	}
	return s.Next()
}

// Expect advances past the next significant token, requiring it to have
// the given type, or returns a ParseError.
func (s *Stream[K]) Expect(typ K) (token.Spanned[K], error) {
	tok, ok := s.Eat(typ)
	if !ok {
		return tok, perr.Newf(perr.ParseError, "unexpected token").At(s.CursorSpan())
	}
	return tok, nil
}

// IsEmpty reports whether there are no more significant tokens in the
// stream's window.
func (s *Stream[K]) IsEmpty() bool {
	_, ok := s.PeekToken()
	return !ok
}

// Remaining counts the significant tokens left in the stream's window.
// Like the reference implementation, this is a fork-and-count operation
// and is O(n) in what remains; callers on a hot path should prefer
// IsEmpty.
func (s *Stream[K]) Remaining() int {
	f := s.Fork()
	n := 0
	for {
		if _, ok := f.Next(); !ok {
			return n
		}
		n++
	}
}

// EnsureConsumed returns a StreamNotConsumed error if any significant
// tokens remain in the window, nil otherwise.
func (s *Stream[K]) EnsureConsumed() error {
	if n := s.Remaining(); n > 0 {
		return perr.StreamNotConsumedError(n).At(s.CursorSpan())
	}
	return nil
}

// EnterRecursion increments the recursion depth, returning a
// RecursionLimitExceeded error without changing state if limit would be
// exceeded. Every recursive parse function must call EnterRecursion on
// entry and ExitRecursion on every return path.
func (s *Stream[K]) EnterRecursion() error {
	next := s.depth + 1
	if s.maxDepth > 0 && next > s.maxDepth {
		return perr.RecursionLimitError(next, s.maxDepth).At(s.CursorSpan())
	}
	s.depth = next
	return nil
}

// ExitRecursion decrements the recursion depth, saturating at zero.
func (s *Stream[K]) ExitRecursion() {
	if s.depth > 0 {
		s.depth--
	}
}

// Depth returns the current recursion depth.
func (s *Stream[K]) Depth() int {
	return s.depth
}

// CursorSpan returns the span of the token currently at the cursor, or a
// call-site span if the stream is at its end.
func (s *Stream[K]) CursorSpan() span.Span {
	if s.cursor >= s.end() {
		return span.CallSite()
	}
	if sp, ok := s.buf.At(s.cursor); ok {
		return sp.Span
	}
	return span.CallSite()
}

// LastSpan returns the span of the most recently consumed token.
func (s *Stream[K]) LastSpan() span.Span {
	if s.lastCursor < s.rangeStart {
		return span.CallSite()
	}
	if sp, ok := s.buf.At(s.lastCursor); ok {
		return sp.Span
	}
	return span.CallSite()
}

// SpanAt returns the span of the token at absolute index i.
func (s *Stream[K]) SpanAt(i int) span.Span {
	if sp, ok := s.buf.At(i); ok {
		return sp.Span
	}
	return span.CallSite()
}

// SpanRange returns the span covering tokens [from, to) by absolute index.
func (s *Stream[K]) SpanRange(from, to int) span.Span {
	if to <= from {
		return span.CallSite()
	}
	return span.Join(s.SpanAt(from), s.SpanAt(to-1))
}
