package perr

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/tessera-parse/tessera/span"
)

func TestNewHasCallSiteLocation(t *testing.T) {
	err := New(ParseError, "bad token")
	assert.Equal(t, err.Kind, ParseError)
	assert.True(t, err.Location.IsCallSite())
}

func TestNewfFormats(t *testing.T) {
	err := Newf(TokenLimitExceeded, "consumed %d of %d", 5, 3)
	assert.Equal(t, err.Message, "consumed 5 of 3")
}

func TestAtReturnsCopyWithLocation(t *testing.T) {
	base := New(StreamNotConsumed, "leftover")
	sp := span.Span{Start: 2, End: 8}
	located := base.At(sp)

	assert.True(t, base.Location.IsCallSite())
	assert.Equal(t, located.Location, sp)
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("root cause")
	err := New(LexError, "wrapped").WithCause(cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesOnKindAlone(t *testing.T) {
	a := New(RecursionLimitExceeded, "deep").At(span.Span{Start: 1, End: 2})
	b := New(RecursionLimitExceeded, "different message")
	assert.True(t, errors.Is(a, b))

	c := New(ChunkTooLarge, "oversized")
	assert.False(t, errors.Is(a, c))
}

func TestErrorStringWithAndWithoutLocation(t *testing.T) {
	noLoc := New(ChannelClosed, "closed")
	assert.Equal(t, noLoc.Error(), "channel_closed: closed")

	withLoc := New(ChannelClosed, "closed").At(span.Span{Start: 3, End: 5})
	assert.Equal(t, withLoc.Error(), "channel_closed: closed (3:5)")
}

func TestStreamNotConsumedError(t *testing.T) {
	err := StreamNotConsumedError(4)
	assert.Equal(t, err.Kind, StreamNotConsumed)
	assert.Contains(t, err.Message, "4")
}

func TestRecursionLimitError(t *testing.T) {
	err := RecursionLimitError(5, 3)
	assert.Equal(t, err.Kind, RecursionLimitExceeded)
	assert.Contains(t, err.Message, "5")
	assert.Contains(t, err.Message, "3")
}

func TestTokenLimitError(t *testing.T) {
	err := TokenLimitError(10, 8)
	assert.Equal(t, err.Kind, TokenLimitExceeded)
}
