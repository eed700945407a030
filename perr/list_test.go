package perr

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestListEmpty(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())
	assert.Equal(t, l.Len(), 0)
	assert.NoError(t, l.Err())
}

func TestListAddIgnoresNil(t *testing.T) {
	var l List
	l.Add(nil)
	assert.False(t, l.HasErrors())
}

func TestListAccumulates(t *testing.T) {
	var l List
	l.Add(New(ParseError, "first"))
	l.Add(New(LexError, "second"))

	assert.Equal(t, l.Len(), 2)
	assert.True(t, l.HasErrors())
	assert.Error(t, l.Err())
	assert.Len(t, l.Errors(), 2)
}
