// Package perr defines the error taxonomy shared by every package in this
// module. Every error the toolkit returns carries a Kind drawn from a
// closed set, mirroring how the teacher's scripting-language front end
// categorizes syntax errors by kind rather than returning bare strings.
package perr

import (
	"fmt"

	"github.com/tessera-parse/tessera/span"
)

// Kind categorizes an Error. New kinds are added here, never invented
// ad hoc at a call site, so callers can switch on Kind reliably.
type Kind string

const (
	StreamNotConsumed     Kind = "stream_not_consumed"
	RecursionLimitExceeded Kind = "recursion_limit_exceeded"
	TokenLimitExceeded    Kind = "token_limit_exceeded"
	ChannelClosed         Kind = "channel_closed"
	ChunkTooLarge         Kind = "chunk_too_large"
	BufferOverflow        Kind = "buffer_overflow"
	IncompleteInput       Kind = "incomplete_input"
	Timeout               Kind = "timeout"
	LexError              Kind = "lex_error"
	ParseError            Kind = "parse_error"
)

// Error is the concrete carrier for every Kind above. Location is the
// call-site span (span.CallSite()) when an error has no meaningful source
// position, such as a channel-closed error raised by the streaming
// coordinator.
type Error struct {
	Kind     Kind
	Message  string
	Location span.Span
	Cause    error
}

// New builds an Error with no source location.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Location: span.CallSite()}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// At attaches a source location to the error, returning a new Error value.
func (e *Error) At(loc span.Span) *Error {
	cp := *e
	cp.Location = loc
	return &cp
}

// WithCause attaches an underlying error, returning a new Error value.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *Error) Error() string {
	if e.Location.IsCallSite() || e.Location.IsEmpty() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind, e.Message, e.Location.Start, e.Location.End)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, perr.New(kind, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// StreamNotConsumedError reports that a stream still has remaining
// tokens after a caller claimed to have consumed all of it.
func StreamNotConsumedError(remaining int) *Error {
	return Newf(StreamNotConsumed, "stream not fully consumed: %d token(s) remaining", remaining)
}

// RecursionLimitError reports that a recursion guard tripped.
func RecursionLimitError(depth, limit int) *Error {
	return Newf(RecursionLimitExceeded, "recursion limit exceeded: depth %d > limit %d", depth, limit)
}

// TokenLimitError reports that a token budget was exhausted.
func TokenLimitError(consumed, limit int) *Error {
	return Newf(TokenLimitExceeded, "token limit exceeded: consumed %d > limit %d", consumed, limit)
}
