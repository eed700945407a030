package token

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/tessera-parse/tessera/span"
)

type kind string

const (
	kindWord    kind = "WORD"
	kindSpace   kind = "SPACE"
	kindComment kind = "COMMENT"
)

func TestNew(t *testing.T) {
	sp := span.Span{Start: 0, End: 4}
	tok := New(sp, kindWord, "fish")
	assert.Equal(t, tok.Span, sp)
	assert.Equal(t, tok.Value.Type, kindWord)
	assert.Equal(t, tok.Value.Literal, "fish")
}

func TestSkipSetZeroValue(t *testing.T) {
	var s SkipSet[kind]
	assert.False(t, s.Skip(kindSpace))
}

func TestSkipSetMembership(t *testing.T) {
	s := NewSkipSet(kindSpace, kindComment)
	assert.True(t, s.Skip(kindSpace))
	assert.True(t, s.Skip(kindComment))
	assert.False(t, s.Skip(kindWord))
}
