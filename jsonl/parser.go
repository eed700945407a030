package jsonl

import (
	"github.com/tessera-parse/tessera/chunkbound"
	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/span"
	"github.com/tessera-parse/tessera/srcbuf"
	"github.com/tessera-parse/tessera/token"
	"github.com/tessera-parse/tessera/tstream"
)

// MaxDepth is the default recursion limit for nested objects/arrays,
// chosen to comfortably exceed any realistic JSON document while still
// catching pathological or adversarial input.
const MaxDepth = 256

// NewStream returns a stream over buf configured with the skip set and
// recursion limit JSON Lines parsing expects.
func NewStream(buf *srcbuf.Buffer[Kind]) *tstream.Stream[Kind] {
	return tstream.New(buf, Skip, MaxDepth)
}

// ParseValue parses one JSON value from the front of s.
func ParseValue(s *tstream.Stream[Kind]) (Value, error) {
	if err := s.EnterRecursion(); err != nil {
		return Value{}, err
	}
	defer s.ExitRecursion()

	tok, ok := s.PeekToken()
	if !ok {
		return Value{}, perr.New(perr.ParseError, "unexpected end of input, expected a value").At(s.CursorSpan())
	}

	switch tok.Value.Type {
	case LBrace:
		return parseObject(s)
	case LBracket:
		return parseArray(s)
	case String:
		return parseString(s)
	case Number:
		return parseNumber(s)
	case True, False:
		return parseBool(s)
	case Null:
		t, _ := s.Next()
		return Value{Span: t.Span, Kind: KindNull}, nil
	default:
		return Value{}, perr.Newf(perr.ParseError, "unexpected token %q", tok.Value.Literal).At(tok.Span)
	}
}

func parseString(s *tstream.Stream[Kind]) (Value, error) {
	t, _ := s.Expect(String)
	unescaped, err := ParseStringLiteral(t.Value.Literal)
	if err != nil {
		return Value{}, perr.Newf(perr.ParseError, "invalid string literal: %v", err).At(t.Span)
	}
	return Value{Span: t.Span, Kind: KindString, Str: unescaped}, nil
}

func parseNumber(s *tstream.Stream[Kind]) (Value, error) {
	t, err := s.Expect(Number)
	if err != nil {
		return Value{}, err
	}
	n, numErr := ParseNumberLiteral(t.Value.Literal)
	if numErr != nil {
		return Value{}, perr.Newf(perr.ParseError, "invalid number literal: %v", numErr).At(t.Span)
	}
	return Value{Span: t.Span, Kind: KindNumber, Num: n}, nil
}

func parseBool(s *tstream.Stream[Kind]) (Value, error) {
	t, _ := s.Next()
	return Value{Span: t.Span, Kind: KindBool, Bool: t.Value.Type == True}, nil
}

func parseArray(s *tstream.Stream[Kind]) (Value, error) {
	open, err := s.Expect(LBracket)
	if err != nil {
		return Value{}, err
	}
	var items []Value
	if !s.PeekType(RBracket) {
		for {
			v, err := ParseValue(s)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
			if _, ok := s.Eat(Comma); ok {
				continue
			}
			break
		}
	}
	close, err := s.Expect(RBracket)
	if err != nil {
		return Value{}, err
	}
	return Value{Span: span.Join(open.Span, close.Span), Kind: KindArray, Items: items}, nil
}

func parseObject(s *tstream.Stream[Kind]) (Value, error) {
	open, err := s.Expect(LBrace)
	if err != nil {
		return Value{}, err
	}
	var members []Member
	if !s.PeekType(RBrace) {
		for {
			keyTok, err := s.Expect(String)
			if err != nil {
				return Value{}, err
			}
			key, uerr := ParseStringLiteral(keyTok.Value.Literal)
			if uerr != nil {
				return Value{}, perr.Newf(perr.ParseError, "invalid object key: %v", uerr).At(keyTok.Span)
			}
			if _, err := s.Expect(Colon); err != nil {
				return Value{}, err
			}
			val, err := ParseValue(s)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: span.New(keyTok.Span, key), Value: val})
			if _, ok := s.Eat(Comma); ok {
				continue
			}
			break
		}
	}
	close, err := s.Expect(RBrace)
	if err != nil {
		return Value{}, err
	}
	return Value{Span: span.Join(open.Span, close.Span), Kind: KindObject, Members: members}, nil
}

// ParseLine parses one JSON value, then requires that only an optional
// trailing newline remains in the stream's window.
func ParseLine(s *tstream.Stream[Kind]) (Value, error) {
	v, err := ParseValue(s)
	if err != nil {
		return Value{}, err
	}
	s.Eat(Newline)
	if err := s.EnsureConsumed(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// ParseDocument parses every line of a complete, fully-buffered document,
// skipping blank lines. It locates each line's boundary with the same
// chunkbound.Find the streaming path uses, so batch and streaming agree on
// exactly where one record ends and the next begins.
func ParseDocument(src []byte) ([]Value, error) {
	lexer := NewLexer()
	spannedToks, err := lexer.Feed(src)
	if err != nil {
		return nil, err
	}
	more, err := lexer.Finish()
	if err != nil {
		return nil, err
	}
	spannedToks = append(spannedToks, more...)

	buf := srcbuf.New[Kind](len(spannedToks))
	buf.Extend(spannedToks)

	rawToks := make([]token.Token[Kind], len(spannedToks))
	for i, t := range spannedToks {
		rawToks[i] = t.Value
	}

	var values []Value
	s := NewStream(buf)
	pos := 0
	for pos < len(rawToks) {
		if rawToks[pos].Type == Newline {
			s.NextRaw()
			pos++
			continue
		}
		chunkLen, found := chunkbound.Find(rawToks[pos:], LineBoundary{})
		if !found {
			chunkLen = len(rawToks) - pos
		}
		lineStream := tstream.Window(s, pos, pos+chunkLen)
		for i := 0; i < chunkLen; i++ {
			s.NextRaw()
		}
		v, err := ParseLine(lineStream)
		if err != nil {
			return values, err
		}
		values = append(values, v)
		pos += chunkLen
	}
	return values, nil
}
