package jsonl

import "github.com/tessera-parse/tessera/token"

// LineBoundary implements chunkbound.Boundary[Kind]: a JSON Lines record
// ends at a newline seen while bracket/brace nesting has returned to
// zero, matching the original worked example's ChunkBoundary impl for
// JsonLine exactly.
type LineBoundary struct{}

func (LineBoundary) IsBoundaryToken(tok token.Token[Kind]) bool {
	return tok.Type == Newline
}

func (LineBoundary) DepthDelta(tok token.Token[Kind]) int {
	switch tok.Type {
	case LBrace, LBracket:
		return 1
	case RBrace, RBracket:
		return -1
	default:
		return 0
	}
}

func (LineBoundary) IsIgnorable(tok token.Token[Kind]) bool {
	return tok.Type == Space || tok.Type == Newline
}

// IsCompleteAtEOF reports whether toks form a complete JSON value even
// without a trailing newline, for the last line of a file that was not
// itself newline-terminated.
func IsCompleteAtEOF(toks []token.Token[Kind]) bool {
	depth := 0
	hasValue := false
	for _, tok := range toks {
		switch tok.Type {
		case LBrace, LBracket:
			depth++
			hasValue = true
		case RBrace, RBracket:
			depth--
		case Space, Newline:
			// no-op
		default:
			hasValue = true
		}
	}
	return hasValue && depth <= 0
}
