// Package chunkbound locates safe places to cut a growing token stream
// into parseable chunks before the whole input has arrived, the way a
// line-oriented format can be parsed line by line as bytes trickle in.
package chunkbound

import "github.com/tessera-parse/tessera/token"

// Boundary tells the incremental engine, for a given grammar's token
// kind K, which tokens may end a chunk, how nesting depth changes as
// tokens are scanned, and which tokens contribute nothing and can be
// skipped when deciding whether a chunk has any real content.
type Boundary[K comparable] interface {
	// IsBoundaryToken reports whether tok may end a chunk, such as a
	// newline in a line-oriented format.
	IsBoundaryToken(tok token.Token[K]) bool
	// DepthDelta reports how tok changes nesting depth: +1 for an
	// opening delimiter, -1 for a closing one, 0 otherwise. A boundary
	// token is only honored once depth has returned to zero.
	DepthDelta(tok token.Token[K]) int
	// IsIgnorable reports whether tok carries no content of its own,
	// such as inter-token whitespace.
	IsIgnorable(tok token.Token[K]) bool
}

// Find scans toks for the first index i such that toks[i] is a boundary
// token at nesting depth zero or below (below zero only after an unmatched
// closing delimiter), returning i+1 (the position just past the
// boundary) and ok=true. It returns ok=false if no such boundary exists
// in toks, meaning the caller needs more input before it can find one.
func Find[K comparable](toks []token.Token[K], b Boundary[K]) (pos int, ok bool) {
	depth := 0
	for i, tok := range toks {
		depth += b.DepthDelta(tok)
		if b.IsBoundaryToken(tok) && depth <= 0 {
			return i + 1, true
		}
	}
	return 0, false
}
