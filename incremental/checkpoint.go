// Package incremental drives resumable, checkpoint-based parsing of a
// token stream that may not yet contain a complete unit: each call either
// produces a finished value and an updated checkpoint, or reports that
// more input is needed before it can make progress.
package incremental

import "fmt"

// State is the three-way outcome of an incremental parse attempt.
type State int

const (
	// NeedMore means no value was produced. Either the stream did not yet
	// contain enough tokens, and the returned checkpoint is unchanged, or
	// a chunk of only ignorable tokens was skipped, and the returned
	// checkpoint has advanced past it. The caller retries with the
	// returned checkpoint, feeding more input first if it is unchanged.
	NeedMore State = iota
	// Complete means a value was produced and the checkpoint has been
	// advanced past it.
	Complete
	// ParseErrorState means the tokens seen so far are definitively
	// invalid and cannot become valid by feeding more input.
	ParseErrorState
)

func (st State) String() string {
	switch st {
	case NeedMore:
		return "need_more"
	case Complete:
		return "complete"
	case ParseErrorState:
		return "parse_error"
	default:
		return fmt.Sprintf("state(%d)", int(st))
	}
}

// Checkpoint captures enough state to resume an incremental parse after
// feeding it more tokens. The zero value is the checkpoint a fresh parse
// starts from.
type Checkpoint struct {
	Cursor         int
	TokensConsumed int
	State          State
}
