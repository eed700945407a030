// Package srcbuf holds the append-only token buffer that backs a token
// stream. Lexing only ever appends; parsing only ever advances a cursor
// over what has already been appended, which is what lets a stream be
// forked and rewound cheaply.
package srcbuf

import (
	"github.com/tessera-parse/tessera/token"
)

// Buffer is an append-only sequence of spanned tokens shared by every
// tstream.Stream forked from the same source. Consume drops fully-read
// tokens from the front during incremental/streaming use so memory does
// not grow without bound across a long-lived session.
type Buffer[K comparable] struct {
	tokens  []token.Spanned[K]
	cursor  int // index of the oldest token still addressable by index 0
}

// New returns an empty buffer with the given initial capacity hint.
func New[K comparable](capacity int) *Buffer[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[K]{tokens: make([]token.Spanned[K], 0, capacity)}
}

// Push appends a single token.
func (b *Buffer[K]) Push(tok token.Spanned[K]) {
	b.tokens = append(b.tokens, tok)
}

// Extend appends a batch of tokens.
func (b *Buffer[K]) Extend(toks []token.Spanned[K]) {
	b.tokens = append(b.tokens, toks...)
}

// Len returns the number of tokens currently addressable, i.e. End()
// minus Start().
func (b *Buffer[K]) Len() int {
	return len(b.tokens)
}

// IsEmpty reports whether the buffer holds no addressable tokens.
func (b *Buffer[K]) IsEmpty() bool {
	return len(b.tokens) == 0
}

// Cap returns the buffer's underlying capacity.
func (b *Buffer[K]) Cap() int {
	return cap(b.tokens)
}

// Reserve grows the underlying capacity to hold at least additional more
// tokens without reallocating.
func (b *Buffer[K]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	if cap(b.tokens)-len(b.tokens) >= additional {
		return
	}
	grown := make([]token.Spanned[K], len(b.tokens), len(b.tokens)+additional)
	copy(grown, b.tokens)
	b.tokens = grown
}

// At returns the token at absolute index i, where i counts from the
// buffer's logical start (before any Consume), and ok reports whether i is
// still addressable: neither consumed away nor beyond Len.
func (b *Buffer[K]) At(i int) (tok token.Spanned[K], ok bool) {
	idx := i - b.cursor
	if idx < 0 || idx >= len(b.tokens) {
		return tok, false
	}
	return b.tokens[idx], true
}

// Remaining returns the number of addressable tokens at or after index i.
func (b *Buffer[K]) Remaining(i int) int {
	idx := i - b.cursor
	if idx < 0 {
		idx = 0
	}
	n := len(b.tokens) - idx
	if n < 0 {
		return 0
	}
	return n
}

// Start returns the smallest absolute index still addressable.
func (b *Buffer[K]) Start() int {
	return b.cursor
}

// End returns one past the largest absolute index ever pushed.
func (b *Buffer[K]) End() int {
	return b.cursor + len(b.tokens)
}

// Consume drops every token before absolute index upTo, clamped to the
// buffer's current bounds. Any tstream.Stream whose cursor still points
// before upTo must not be used after this call.
func (b *Buffer[K]) Consume(upTo int) {
	if upTo <= b.cursor {
		return
	}
	idx := upTo - b.cursor
	if idx > len(b.tokens) {
		idx = len(b.tokens)
	}
	b.tokens = append([]token.Spanned[K](nil), b.tokens[idx:]...)
	b.cursor += idx
}

// Compact reclaims capacity freed by prior Consume calls by reallocating
// the backing array tightly around the live tokens.
func (b *Buffer[K]) Compact() {
	if len(b.tokens) == cap(b.tokens) {
		return
	}
	tight := make([]token.Spanned[K], len(b.tokens))
	copy(tight, b.tokens)
	b.tokens = tight
}

// Clear empties the buffer but keeps its capacity and logical cursor.
func (b *Buffer[K]) Clear() {
	b.tokens = b.tokens[:0]
}
