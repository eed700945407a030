package jsonl

import (
	"context"
	"io"

	"github.com/tessera-parse/tessera/incremental"
	"github.com/tessera-parse/tessera/pipeline"
)

// SourceFromReader adapts an io.Reader into a pipeline.Source, reading up
// to chunkSize bytes per call.
func SourceFromReader(r io.Reader, chunkSize int) pipeline.Source {
	if chunkSize <= 0 {
		chunkSize = pipeline.Medium.LexerBufferCapacity
	}
	return func() ([]byte, bool, error) {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			return buf[:n], true, nil
		}
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
}

// NewCoordinator returns a pipeline.Coordinator wired up to stream JSON
// Lines values as they arrive.
func NewCoordinator(cfg pipeline.Config) *pipeline.Coordinator[Kind, Value] {
	return &pipeline.Coordinator[Kind, Value]{
		Config:          cfg,
		NewLexer:        func() incremental.Lexer[Kind] { return NewLexer() },
		Boundary:        LineBoundary{},
		IsCompleteAtEOF: IsCompleteAtEOF,
		ParseChunk:      ParseLine,
		Skip:            Skip,
		MaxDepth:        MaxDepth,
	}
}

// Stream parses r as JSON Lines incrementally, returning a channel of
// results as they become available.
func Stream(ctx context.Context, r io.Reader, cfg pipeline.Config) <-chan pipeline.Result[Value] {
	coord := NewCoordinator(cfg)
	return coord.Run(ctx, SourceFromReader(r, cfg.LexerBufferCapacity))
}
