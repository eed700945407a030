// Package jsonl is the worked example: a complete JSON Lines token,
// lexer, AST, parser, and printer built on every contract the rest of
// this module defines, exercised both in batch and in streaming mode.
// JSON Lines (one JSON value per line) was chosen because it is exactly
// the shape original_source's own worked example targets, and because
// its newline-delimited records are a natural fit for chunk-boundary
// detection.
package jsonl

import "github.com/tessera-parse/tessera/token"

// Kind is the token kind for JSON Lines input.
type Kind string

const (
	LBrace    Kind = "{"
	RBrace    Kind = "}"
	LBracket  Kind = "["
	RBracket  Kind = "]"
	Colon     Kind = ":"
	Comma     Kind = ","
	String    Kind = "STRING"
	Number    Kind = "NUMBER"
	True      Kind = "TRUE"
	False     Kind = "FALSE"
	Null      Kind = "NULL"
	Newline   Kind = "NEWLINE"
	Space     Kind = "SPACE"
	Illegal   Kind = "ILLEGAL"
)

// Skip is the default skip set for a token stream parsing JSON Lines:
// inter-token space and tab are insignificant to the grammar. Newline is
// deliberately NOT in the skip set — it is the chunk boundary and the
// line-level parser needs to see it to stop a value at end of line.
var Skip = token.NewSkipSet(Space)

// Spanned is a convenience alias for a JSON Lines token with its span.
type Spanned = token.Spanned[Kind]
