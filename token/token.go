// Package token defines the generic token shape that the rest of the
// toolkit is built around. The core never inspects what a token's Type
// means; it only needs to compare tags for equality, which is why Type is
// left as a type parameter rather than a fixed enum the way a single
// grammar's lexer would define it.
package token

import "github.com/tessera-parse/tessera/span"

// Token is one lexed unit of source, tagged with a user-defined kind K.
// K is typically a small string or int enum, the way a concrete lexer
// (see package jsonl for a worked example) defines its own token kinds.
type Token[K comparable] struct {
	Type    K
	Literal string
}

// Spanned is the form tokens travel in once they have a source location
// attached; nearly everything in this toolkit operates on
// span.Spanned[Token[K]] rather than a bare Token.
type Spanned[K comparable] = span.Spanned[Token[K]]

// New returns tok at the given span.
func New[K comparable](sp span.Span, typ K, literal string) Spanned[K] {
	return span.New(sp, Token[K]{Type: typ, Literal: literal})
}

// SkipSet names the token kinds a stream should silently skip over in its
// "significant" reading mode, such as whitespace or comment tokens. The
// zero value skips nothing.
type SkipSet[K comparable] map[K]bool

// Skip reports whether typ is a member of the set.
func (s SkipSet[K]) Skip(typ K) bool {
	if s == nil {
		return false
	}
	return s[typ]
}

// NewSkipSet builds a SkipSet containing the given kinds.
func NewSkipSet[K comparable](kinds ...K) SkipSet[K] {
	s := make(SkipSet[K], len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}
