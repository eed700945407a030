package tstream

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/tessera-parse/tessera/span"
	"github.com/tessera-parse/tessera/srcbuf"
	"github.com/tessera-parse/tessera/token"
)

type kind string

const (
	kWord    kind = "WORD"
	kSpace   kind = "SPACE"
	kLParen  kind = "("
	kRParen  kind = ")"
	kComma   kind = ","
)

func buildBuffer(types ...kind) *srcbuf.Buffer[kind] {
	b := srcbuf.New[kind](len(types))
	for i, typ := range types {
		b.Push(token.New(span.Span{Start: i, End: i + 1}, typ, string(typ)))
	}
	return b
}

func TestRawVsSignificantSkipsTrivia(t *testing.T) {
	buf := buildBuffer(kWord, kSpace, kWord)
	skip := token.NewSkipSet(kSpace)
	s := New(buf, skip, 0)

	tok, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, tok.Value.Type, kWord)

	// Significant Next skips the space straight to the second word.
	tok, ok = s.Next()
	assert.True(t, ok)
	assert.Equal(t, tok.Value.Type, kWord)
	assert.True(t, s.IsEmpty())
}

func TestRawSeesEveryToken(t *testing.T) {
	buf := buildBuffer(kWord, kSpace, kWord)
	skip := token.NewSkipSet(kSpace)
	s := New(buf, skip, 0)

	var kinds []kind
	for {
		tok, ok := s.NextRaw()
		if !ok {
			break
		}
		kinds = append(kinds, tok.Value.Type)
	}
	assert.Equal(t, kinds, []kind{kWord, kSpace, kWord})
}

func TestPeekTokenDoesNotMutate(t *testing.T) {
	buf := buildBuffer(kWord, kWord)
	s := New(buf, nil, 0)

	first, ok := s.PeekToken()
	assert.True(t, ok)
	again, ok := s.PeekToken()
	assert.True(t, ok)
	assert.Equal(t, first, again)
	assert.Equal(t, s.Position(), buf.Start())
}

func TestCursorSoundnessAfterOperations(t *testing.T) {
	buf := buildBuffer(kWord, kWord, kWord, kWord)
	s := New(buf, nil, 0)

	s.Next()
	s.Next()
	f := s.Fork()
	f.Next()
	s.Rewind(0)

	assert.GreaterOrEqual(t, s.Position(), 0)
	assert.LessOrEqual(t, s.Position(), buf.End())
	assert.GreaterOrEqual(t, f.Position(), 0)
	assert.LessOrEqual(t, f.Position(), buf.End())
}

func TestForkIndependence(t *testing.T) {
	buf := buildBuffer(kWord, kWord, kWord)
	s := New(buf, nil, 0)
	s.Next()

	fork := s.Fork()
	fork.Next()
	fork.Next()

	assert.Equal(t, s.Position(), 1)
	assert.Equal(t, s.Remaining(), 2)
	assert.True(t, fork.IsEmpty())
}

func TestRewindClampsInsteadOfPanicking(t *testing.T) {
	buf := buildBuffer(kWord, kWord)
	s := New(buf, nil, 0)

	s.Rewind(1000)
	assert.Equal(t, s.Position(), buf.End())

	s.Rewind(-50)
	assert.Equal(t, s.Position(), buf.Start())
}

func TestEnsureConsumedIdempotent(t *testing.T) {
	buf := buildBuffer(kWord, kWord)
	s := New(buf, nil, 0)
	s.Next()

	err1 := s.EnsureConsumed()
	err2 := s.EnsureConsumed()
	assert.Error(t, err1)
	assert.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())

	s.Next()
	assert.NoError(t, s.EnsureConsumed())
}

func TestEatAndExpect(t *testing.T) {
	buf := buildBuffer(kLParen, kRParen)
	s := New(buf, nil, 0)

	_, ok := s.Eat(kRParen)
	assert.False(t, ok)

	_, ok = s.Eat(kLParen)
	assert.True(t, ok)

	_, err := s.Expect(kRParen)
	assert.NoError(t, err)

	_, err = s.Expect(kComma)
	assert.Error(t, err)
}

func TestRecursionGuard(t *testing.T) {
	buf := buildBuffer(kWord)
	s := New(buf, nil, 2)

	assert.NoError(t, s.EnterRecursion())
	assert.NoError(t, s.EnterRecursion())
	err := s.EnterRecursion()
	assert.Error(t, err)
	assert.Equal(t, s.Depth(), 2)

	s.ExitRecursion()
	assert.NoError(t, s.EnterRecursion())
}

func TestRecursionGuardSaturatesAtZero(t *testing.T) {
	buf := buildBuffer(kWord)
	s := New(buf, nil, 0)
	s.ExitRecursion()
	s.ExitRecursion()
	assert.Equal(t, s.Depth(), 0)
}

func TestRecursionGuardIndependentPerStream(t *testing.T) {
	buf := buildBuffer(kWord)
	s := New(buf, nil, 1)
	assert.NoError(t, s.EnterRecursion())

	fork := s.Fork()
	assert.Error(t, fork.EnterRecursion())

	other := New(buf, nil, 1)
	assert.NoError(t, other.EnterRecursion())
}

func TestWindowRestrictsRange(t *testing.T) {
	buf := buildBuffer(kWord, kComma, kWord, kComma, kWord)
	s := New(buf, nil, 0)
	w := Window(s, 1, 3)

	assert.Equal(t, w.Remaining(), 2)
	tok, _ := w.Next()
	assert.Equal(t, tok.Value.Type, kComma)
	tok, _ = w.Next()
	assert.Equal(t, tok.Value.Type, kWord)
	assert.True(t, w.IsEmpty())

	// The parent stream's own cursor is untouched by the window.
	assert.Equal(t, s.Position(), buf.Start())
}

func TestSpanLookups(t *testing.T) {
	buf := buildBuffer(kWord, kWord, kWord)
	s := New(buf, nil, 0)

	assert.Equal(t, s.SpanAt(1), span.Span{Start: 1, End: 2})
	assert.True(t, s.SpanAt(99).IsCallSite())
	assert.Equal(t, s.SpanRange(0, 3), span.Span{Start: 0, End: 3})
	assert.True(t, s.SpanRange(2, 2).IsCallSite())

	s.Next()
	assert.Equal(t, s.LastSpan(), span.Span{Start: 0, End: 1})
}
