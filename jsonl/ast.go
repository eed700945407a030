package jsonl

import "github.com/tessera-parse/tessera/span"

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	KindObject ValueKind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   span.Spanned[string]
	Value Value
}

// Value is a parsed JSON value together with the span of source it came
// from. Exactly one of the fields matching Kind is meaningful; this
// mirrors how risor's ast.Node implementations are one type per node kind
// rather than a single tagged struct, but is collapsed to a tagged union
// here since JSON's value grammar is small and closed.
type Value struct {
	Span span.Span
	Kind ValueKind

	Members []Member  // KindObject
	Items   []Value   // KindArray
	Str     string    // KindString, unescaped
	Num     float64   // KindNumber
	Bool    bool      // KindBool
}

// Line is one parsed record of a JSON Lines document: a value plus the
// line it was parsed from, for error reporting against the original
// input.
type Line struct {
	Value Value
	Index int
}
