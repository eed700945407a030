// Package pipeline is the streaming coordinator: a lexer goroutine and a
// parser goroutine connected by bounded channels, turning a byte source
// into a stream of parsed values with backpressure and clean
// cancellation, without requiring the whole input up front.
package pipeline

import "github.com/dustin/go-humanize"

// Config controls the coordinator's buffer, queue, and chunk-size
// limits. The zero value is not meant to be used directly; start from
// one of the named presets below, the same way callers start from a
// named SyntaxConfig preset rather than building one field at a time.
type Config struct {
	// TokenBufferSize is the capacity hint for the token queue and the
	// parser's internal token buffer. Compaction runs once consumed
	// tokens exceed half of this; BufferOverflow trips at twice it.
	TokenBufferSize int
	// ASTBufferSize is the capacity of the AST output queue; a full
	// queue applies backpressure to the parser task.
	ASTBufferSize int
	// MaxChunkSize bounds a single source chunk; a larger chunk fails
	// fast with ChunkTooLarge rather than being buffered.
	MaxChunkSize int
	// LexerBufferCapacity is the preset's lexer byte-buffer size. The
	// coordinator does not pass it to the lexer, whose factory takes no
	// arguments; jsonl.Stream uses it as the read size of its source.
	LexerBufferCapacity int
	// LexerTokensPerChunk is the preset's tokens-per-chunk estimate. The
	// coordinator does not pass it to the lexer, and nothing in this
	// module reads it.
	LexerTokensPerChunk int
}

// Small suits interactive or latency-sensitive input such as a REPL.
var Small = Config{
	TokenBufferSize:     128,
	ASTBufferSize:       16,
	MaxChunkSize:        4 * 1024,
	LexerBufferCapacity: 256,
	LexerTokensPerChunk: 32,
}

// Medium is a reasonable default for typical file-sized input.
var Medium = Config{
	TokenBufferSize:     1024,
	ASTBufferSize:       64,
	MaxChunkSize:        64 * 1024,
	LexerBufferCapacity: 4 * 1024,
	LexerTokensPerChunk: 256,
}

// Large suits bulk streaming of large documents.
var Large = Config{
	TokenBufferSize:     8192,
	ASTBufferSize:       512,
	MaxChunkSize:        256 * 1024,
	LexerBufferCapacity: 64 * 1024,
	LexerTokensPerChunk: 2048,
}

// FromChunkSize derives a Config from the caller's known chunk size in
// bytes, scaling every other dimension off of it the way the reference
// presets scale off their own chunk sizes.
func FromChunkSize(n int) Config {
	if n < 1 {
		n = 1
	}
	tokenBuf := n / 4
	if tokenBuf < 1 {
		tokenBuf = 1
	}
	astBuf := n / 64
	if astBuf < 1 {
		astBuf = 1
	}
	return Config{
		TokenBufferSize:     tokenBuf,
		ASTBufferSize:       astBuf,
		MaxChunkSize:        2 * n,
		LexerBufferCapacity: n,
		LexerTokensPerChunk: tokenBuf,
	}
}

// String renders the config with human-readable byte sizes, for
// coordinator startup logs.
func (c Config) String() string {
	return "token_buffer=" + humanize.Comma(int64(c.TokenBufferSize)) +
		" ast_buffer=" + humanize.Comma(int64(c.ASTBufferSize)) +
		" max_chunk=" + humanize.IBytes(uint64(c.MaxChunkSize)) +
		" lexer_buffer=" + humanize.IBytes(uint64(c.LexerBufferCapacity)) +
		" lexer_tokens_per_chunk=" + humanize.Comma(int64(c.LexerTokensPerChunk))
}
