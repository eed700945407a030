package incremental

import (
	"github.com/tessera-parse/tessera/chunkbound"
	"github.com/tessera-parse/tessera/srcbuf"
	"github.com/tessera-parse/tessera/token"
	"github.com/tessera-parse/tessera/tstream"
)

// ParseChunk parses the tokens of one already-bounded chunk into a U,
// given a fresh stream windowed over exactly that chunk.
type ParseChunk[K comparable, U any] func(*tstream.Stream[K]) (U, error)

// IsCompleteAtEOF decides, once no more input will ever arrive, whether
// the tokens from checkpoint onward form a complete value even without a
// trailing boundary token, the way a JSON Lines value on the last line of
// a file is complete even without a trailing newline.
type IsCompleteAtEOF[K comparable] func(toks []token.Token[K]) bool

// ParseIncremental attempts to produce one U from buf starting at
// checkpoint, following the eight-step protocol: if there is nothing
// buffered yet, report NeedMore; otherwise look for a chunk boundary,
// falling back to the end-of-file completeness predicate when atEOF and
// no boundary token has appeared; skip chunks that contain only
// ignorable tokens without invoking parseChunk; and on a real chunk,
// parse it and advance the checkpoint past it.
func ParseIncremental[K comparable, U any](
	buf *srcbuf.Buffer[K],
	checkpoint Checkpoint,
	skip token.SkipSet[K],
	maxDepth int,
	boundary chunkbound.Boundary[K],
	atEOF bool,
	isCompleteAtEOF IsCompleteAtEOF[K],
	parseChunk ParseChunk[K, U],
) (value U, newCheckpoint Checkpoint, state State, err error) {
	newCheckpoint = checkpoint

	start := buf.Start() + checkpoint.Cursor
	available := buf.Remaining(start)
	if available == 0 {
		return value, newCheckpoint, NeedMore, nil
	}

	toks := make([]token.Token[K], 0, available)
	for i := 0; i < available; i++ {
		sp, _ := buf.At(start + i)
		toks = append(toks, sp.Value)
	}

	chunkLen, found := chunkbound.Find(toks, boundary)
	if !found {
		if !atEOF {
			return value, newCheckpoint, NeedMore, nil
		}
		if isCompleteAtEOF == nil || !isCompleteAtEOF(toks) {
			return value, newCheckpoint, NeedMore, nil
		}
		chunkLen = len(toks)
	}

	// Strip a single trailing boundary token from the chunk before
	// deciding whether it carries any content, and before parsing it —
	// the boundary itself is not part of the value.
	contentLen := chunkLen
	if contentLen > 0 && boundary.IsBoundaryToken(toks[contentLen-1]) {
		contentLen--
	}

	hasContent := false
	for i := 0; i < contentLen; i++ {
		if !boundary.IsIgnorable(toks[i]) {
			hasContent = true
			break
		}
	}

	if !hasContent {
		newCheckpoint.Cursor += chunkLen
		newCheckpoint.TokensConsumed += chunkLen
		newCheckpoint.State = NeedMore
		return value, newCheckpoint, NeedMore, nil
	}

	chunkStream := tstream.New(buf, skip, maxDepth)
	inner := tstream.Window(chunkStream, start, start+contentLen)

	v, cerr := parseChunk(inner)
	if cerr != nil {
		newCheckpoint.State = ParseErrorState
		return value, newCheckpoint, ParseErrorState, cerr
	}

	newCheckpoint.Cursor += chunkLen
	newCheckpoint.TokensConsumed += chunkLen
	newCheckpoint.State = Complete
	return v, newCheckpoint, Complete, nil
}
