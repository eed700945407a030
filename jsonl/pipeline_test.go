package jsonl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/pipeline"
)

// sliceSource returns a pipeline.Source that yields each of chunks in
// order, then signals end of input.
func sliceSource(chunks ...string) pipeline.Source {
	i := 0
	return func() ([]byte, bool, error) {
		if i >= len(chunks) {
			return nil, false, nil
		}
		c := chunks[i]
		i++
		return []byte(c), true, nil
	}
}

func drain(t *testing.T, ch <-chan pipeline.Result[Value]) []pipeline.Result[Value] {
	t.Helper()
	var out []pipeline.Result[Value]
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("timed out waiting for pipeline results")
		}
	}
}

// S2: a value split mid-token across chunk deliveries must still produce
// exactly one AST node.
func TestStreamingSplitMidToken(t *testing.T) {
	ctx := context.Background()
	coord := NewCoordinator(pipeline.Small)
	results := drain(t, coord.Run(ctx, sliceSource(`{"na`, `me":`, ` "Alice"}`+"\n")))

	assert.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, results[0].Value.Members[0].Value.Str, "Alice")
}

// S4: a token buffer sized far below the input's token count must fail
// with BufferOverflow rather than grow without bound.
func TestStreamingBufferOverflow(t *testing.T) {
	ctx := context.Background()
	cfg := pipeline.Small
	cfg.TokenBufferSize = 4
	coord := NewCoordinator(cfg)

	// No newline anywhere in this one chunk, so no boundary is ever
	// found and every token piles up in the parser's buffer.
	results := drain(t, coord.Run(ctx, sliceSource(`1,2,3,4,5,6,7,8,9,0`)))

	assert.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.True(t, errors.Is(results[0].Err, perr.New(perr.BufferOverflow, "")))
}

// S5: a small AST queue still delivers every unit, in order, once the
// consumer drains it.
func TestStreamingBackpressurePreservesOrder(t *testing.T) {
	ctx := context.Background()
	cfg := pipeline.Small
	cfg.ASTBufferSize = 1
	coord := NewCoordinator(cfg)

	input := "1\n2\n3\n4\n5\n"
	results := drain(t, coord.Run(ctx, sliceSource(input)))

	assert.Len(t, results, 5)
	for i, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, r.Value.Num, float64(i+1))
	}
}

// S6: an input that ends mid-value with no closing delimiter must report
// IncompleteInput instead of silently dropping the tail.
func TestStreamingIncompleteInput(t *testing.T) {
	ctx := context.Background()
	coord := NewCoordinator(pipeline.Small)
	results := drain(t, coord.Run(ctx, sliceSource(`{"a": 1,`)))

	assert.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.True(t, errors.Is(results[0].Err, perr.New(perr.IncompleteInput, "")))
}

// S8/order-preservation: streaming a complete document must produce the
// same sequence of values as a batch parse of the same input.
func TestStreamingOrderMatchesBatch(t *testing.T) {
	input := `{"a":1}` + "\n" + `{"b":2}` + "\n" + `{"c":3}` + "\n"

	batch, err := ParseDocument([]byte(input))
	assert.NoError(t, err)

	ctx := context.Background()
	coord := NewCoordinator(pipeline.Small)
	results := drain(t, coord.Run(ctx, sliceSource(input)))

	assert.Len(t, results, len(batch))
	for i, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, r.Value.Members[0].Key.Value, batch[i].Members[0].Key.Value)
	}
}

func TestStreamingCancellationStopsPipeline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	coord := NewCoordinator(pipeline.Small)
	ch := coord.Run(ctx, sliceSource("1\n2\n3\n"))
	cancel()

	// The channel must close rather than hang forever once canceled.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("pipeline did not close after cancellation")
		}
	}
}
