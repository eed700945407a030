package jsonl

import (
	"strconv"

	"github.com/tessera-parse/tessera/perr"
	"github.com/tessera-parse/tessera/span"
	"github.com/tessera-parse/tessera/token"
)

// Lexer is an incremental lexer for JSON Lines input. It buffers bytes
// across Feed calls and only emits a token once it is certain the token
// cannot be extended by more input — a number or keyword at the very end
// of the buffer is held back until either more bytes arrive to terminate
// it unambiguously, or Finish is called. A run of spaces or tabs at the end
// of the buffer is the exception: it is emitted as it stands, so
// whitespace split across chunks arrives as more than one Space token.
type Lexer struct {
	buf    []byte
	offset int
}

// NewLexer returns a fresh Lexer starting at byte offset 0.
func NewLexer() *Lexer {
	return &Lexer{}
}

func (l *Lexer) Feed(chunk []byte) ([]token.Spanned[Kind], error) {
	return l.FeedInto(nil, chunk)
}

func (l *Lexer) FeedInto(dst []token.Spanned[Kind], chunk []byte) ([]token.Spanned[Kind], error) {
	l.buf = append(l.buf, chunk...)
	return l.drain(dst, false)
}

func (l *Lexer) Finish() ([]token.Spanned[Kind], error) {
	return l.FinishInto(nil)
}

func (l *Lexer) FinishInto(dst []token.Spanned[Kind]) ([]token.Spanned[Kind], error) {
	out, err := l.drain(dst, true)
	if err != nil {
		return out, err
	}
	if len(l.buf) > 0 {
		sp := span.Span{Start: l.offset, End: l.offset + len(l.buf)}
		return out, perr.New(perr.IncompleteInput, "unexpected end of input mid-token").At(sp)
	}
	return out, nil
}

func (l *Lexer) Offset() int {
	return l.offset
}

// drain lexes as many complete tokens out of l.buf as it can, advancing
// l.offset and shrinking l.buf to only the unconsumed remainder. When
// atEOF is true, a token that reaches the end of the buffer is treated as
// terminated by end of input rather than held back.
func (l *Lexer) drain(dst []token.Spanned[Kind], atEOF bool) ([]token.Spanned[Kind], error) {
	i := 0
	n := len(l.buf)

	emit := func(kind Kind, start, end int, literal string) {
		sp := span.Span{Start: l.offset + start, End: l.offset + end}
		dst = append(dst, token.New(sp, kind, literal))
	}

	for i < n {
		c := l.buf[i]
		switch {
		case c == '{':
			emit(LBrace, i, i+1, "{")
			i++
		case c == '}':
			emit(RBrace, i, i+1, "}")
			i++
		case c == '[':
			emit(LBracket, i, i+1, "[")
			i++
		case c == ']':
			emit(RBracket, i, i+1, "]")
			i++
		case c == ':':
			emit(Colon, i, i+1, ":")
			i++
		case c == ',':
			emit(Comma, i, i+1, ",")
			i++
		case c == '\n':
			emit(Newline, i, i+1, "\n")
			i++
		case c == ' ' || c == '\t' || c == '\r':
			j := i + 1
			for j < n && (l.buf[j] == ' ' || l.buf[j] == '\t' || l.buf[j] == '\r') {
				j++
			}
			emit(Space, i, j, string(l.buf[i:j]))
			i = j
		case c == '"':
			end, ok := scanString(l.buf, i)
			if !ok {
				if atEOF {
					return l.finishDrain(dst, i, n, atEOF)
				}
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(String, i, end, string(l.buf[i:end]))
			i = end
		case c == '-' || (c >= '0' && c <= '9'):
			end, complete := scanNumber(l.buf, i, atEOF)
			if !complete {
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(Number, i, end, string(l.buf[i:end]))
			i = end
		case matchesKeyword(l.buf, i, "true"):
			if !atEOF && i+4 == n {
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(True, i, i+4, "true")
			i += 4
		case matchesKeyword(l.buf, i, "false"):
			if !atEOF && i+5 == n {
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(False, i, i+5, "false")
			i += 5
		case matchesKeyword(l.buf, i, "null"):
			if !atEOF && i+4 == n {
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(Null, i, i+4, "null")
			i += 4
		default:
			// Could be a truncated keyword at the tail of the buffer; if
			// so wait for more input rather than declaring it illegal.
			if !atEOF && couldBeKeywordPrefix(l.buf[i:]) {
				return l.finishDrain(dst, i, i, atEOF)
			}
			emit(Illegal, i, i+1, string(l.buf[i]))
			i++
		}
	}
	return l.finishDrain(dst, n, n, atEOF)
}

// finishDrain advances the lexer past [0, consumed) of the current
// buffer and retains the rest for the next call.
func (l *Lexer) finishDrain(dst []token.Spanned[Kind], consumed, _ int, _ bool) ([]token.Spanned[Kind], error) {
	l.offset += consumed
	l.buf = append([]byte(nil), l.buf[consumed:]...)
	return dst, nil
}

func scanString(buf []byte, start int) (end int, ok bool) {
	i := start + 1
	for i < len(buf) {
		switch buf[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1, true
		}
		i++
	}
	return 0, false
}

func scanNumber(buf []byte, start int, atEOF bool) (end int, complete bool) {
	i := start
	if buf[i] == '-' {
		i++
	}
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i < len(buf) && buf[i] == '.' {
		i++
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
	}
	if i < len(buf) && (buf[i] == 'e' || buf[i] == 'E') {
		i++
		if i < len(buf) && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
	}
	if i == len(buf) && !atEOF {
		return start, false
	}
	return i, true
}

func matchesKeyword(buf []byte, i int, kw string) bool {
	if i+len(kw) > len(buf) {
		return false
	}
	return string(buf[i:i+len(kw)]) == kw
}

func couldBeKeywordPrefix(rest []byte) bool {
	for _, kw := range []string{"true", "false", "null"} {
		n := len(rest)
		if n > len(kw) {
			n = len(kw)
		}
		if string(rest[:n]) == kw[:n] {
			return true
		}
	}
	return false
}

// ParseNumberLiteral converts a Number token's literal back to a float64.
func ParseNumberLiteral(literal string) (float64, error) {
	return strconv.ParseFloat(literal, 64)
}

// ParseStringLiteral decodes a String token's literal (including its
// surrounding quotes) into its unescaped value.
func ParseStringLiteral(literal string) (string, error) {
	return strconv.Unquote(literal)
}
