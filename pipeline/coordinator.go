package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tessera-parse/tessera/chunkbound"
	"github.com/tessera-parse/tessera/incremental"
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/srcbuf"
	"github.com/tessera-parse/tessera/token"
)

// Source is a pull-based byte source: each call returns the next chunk of
// input, io.EOF-style completion signaled by ok=false.
type Source func() (chunk []byte, ok bool, err error)

// LexerFactory builds a fresh incremental lexer for one coordinator run.
type LexerFactory[K comparable] func() incremental.Lexer[K]

// Coordinator runs a two-stage pipeline over a byte Source: a lexer
// goroutine turns bytes into tokens, a parser goroutine turns tokens into
// values, and the two are connected by bounded channels so a slow
// consumer naturally applies backpressure to the lexer instead of the
// whole input being buffered in memory at once.
type Coordinator[K comparable, U any] struct {
	Config          Config
	NewLexer        LexerFactory[K]
	Boundary        chunkbound.Boundary[K]
	IsCompleteAtEOF incremental.IsCompleteAtEOF[K]
	ParseChunk      incremental.ParseChunk[K, U]
	Skip            token.SkipSet[K]
	MaxDepth        int
	Logger          *slog.Logger
}

// Result is one value produced by a Run, tagged with the RunID it came
// from for log correlation.
type Result[U any] struct {
	RunID uuid.UUID
	Value U
	Err   error
}

// Run drives the pipeline to completion against src, sending each parsed
// value (or terminal error) on the returned channel, which is closed when
// the source is exhausted, the context is canceled, or an unrecoverable
// error occurs. Two worker goroutines are spawned, the lexer task and the
// parser task, plus one goroutine that only waits for both to finish.
func (c *Coordinator[K, U]) Run(ctx context.Context, src Source) <-chan Result[U] {
	runID := uuid.New()
	out := make(chan Result[U], c.Config.ASTBufferSize)
	tokenCh := make(chan []token.Spanned[K], c.Config.TokenBufferSize)
	errCh := make(chan error, 1)

	logger := c.Logger
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	logger = logger.With("run_id", runID.String())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(tokenCh)
		c.lexTask(ctx, src, tokenCh, errCh, logger)
	}()

	go func() {
		defer wg.Done()
		defer close(out)
		c.parseTask(ctx, runID, tokenCh, errCh, out, logger)
	}()

	go func() {
		wg.Wait()
	}()

	return out
}

func (c *Coordinator[K, U]) lexTask(
	ctx context.Context,
	src Source,
	tokenCh chan<- []token.Spanned[K],
	errCh chan<- error,
	logger *slog.Logger,
) {
	lexer := c.NewLexer()
	fail := func(err *perr.Error) {
		select {
		case errCh <- err:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		chunk, ok, err := src()
		if err != nil {
			fail(perr.New(perr.LexError, err.Error()).WithCause(err))
			return
		}
		if !ok {
			toks, err := lexer.Finish()
			if err != nil {
				fail(perr.New(perr.LexError, err.Error()).WithCause(err))
				return
			}
			if len(toks) > 0 {
				select {
				case tokenCh <- toks:
				case <-ctx.Done():
				}
			}
			logger.Debug("lexer finished", "offset", lexer.Offset())
			return
		}

		if max := c.Config.MaxChunkSize; max > 0 && len(chunk) > max {
			fail(perr.Newf(perr.ChunkTooLarge, "chunk of %d bytes exceeds max_chunk_size %d", len(chunk), max))
			return
		}

		toks, err := lexer.Feed(chunk)
		if err != nil {
			fail(perr.New(perr.LexError, err.Error()).WithCause(err))
			return
		}
		if len(toks) == 0 {
			continue
		}
		select {
		case tokenCh <- toks:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Coordinator[K, U]) parseTask(
	ctx context.Context,
	runID uuid.UUID,
	tokenCh <-chan []token.Spanned[K],
	errCh <-chan error,
	out chan<- Result[U],
	logger *slog.Logger,
) {
	bufCap := c.Config.TokenBufferSize
	buf := srcbuf.New[K](bufCap)
	checkpoint := incremental.Checkpoint{}

	emit := func(v U, err error) bool {
		select {
		case out <- Result[U]{RunID: runID, Value: v, Err: err}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// maybeCompact drains the consumed prefix once it exceeds half the
	// configured token buffer size. It only ever runs between calls to
	// ParseIncremental, never mid-parse.
	maybeCompact := func() {
		threshold := bufCap / 2
		if threshold <= 0 {
			threshold = 1
		}
		if checkpoint.TokensConsumed <= threshold {
			return
		}
		buf.Consume(buf.Start() + checkpoint.Cursor)
		checkpoint.Cursor = 0
		checkpoint.TokensConsumed = 0
		buf.Compact()
	}

	drainReady := func(atEOF bool) bool {
		for {
			prevCursor := checkpoint.Cursor
			v, cp, state, err := incremental.ParseIncremental[K, U](
				buf, checkpoint, c.Skip, c.MaxDepth, c.Boundary, atEOF, c.IsCompleteAtEOF, c.ParseChunk,
			)
			checkpoint = cp
			switch state {
			case incremental.Complete:
				if !emit(v, nil) {
					return false
				}
				maybeCompact()
				continue
			case incremental.ParseErrorState:
				emit(v, err)
				return false
			default: // NeedMore
				if checkpoint.Cursor != prevCursor {
					// An ignorable-only chunk was skipped; more may be ready.
					continue
				}
				return true
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			emit(*new(U), err)
			return
		case toks, ok := <-tokenCh:
			if !ok {
				if !drainReady(true) {
					return
				}
				if remaining := buf.Remaining(buf.Start() + checkpoint.Cursor); remaining > 0 {
					emit(*new(U), perr.New(perr.IncompleteInput, "input ended with unconsumed tokens remaining"))
				}
				return
			}
			buf.Extend(toks)
			if bufCap > 0 && buf.Len() > 2*bufCap {
				emit(*new(U), perr.Newf(perr.BufferOverflow, "token buffer holds %d tokens, exceeding 2x token_buffer_size %d", buf.Len(), bufCap))
				return
			}
			if !drainReady(false) {
				return
			}
		}
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler  { return discardHandler{} }
func (discardHandler) WithGroup(name string) slog.Handler        { return discardHandler{} }
