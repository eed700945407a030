package jsonl

import (
	"strconv"

	"github.com/tessera-parse/tessera/printer"
)

// Printer renders Value back to JSON Lines text, honoring the Builder's
// indentation so a multi-line pretty-printed mode and a compact mode
// share the same traversal.
type Printer struct {
	b      *printer.Builder
	Pretty bool
}

// NewPrinter returns a Printer with default (tab) indentation.
func NewPrinter() *Printer {
	return &Printer{b: printer.NewBuilder()}
}

func (p *Printer) Builder() *printer.Builder { return p.b }

func (p *Printer) Token(t Kind) {
	p.b.Word(string(t))
}

// String returns the text printed so far.
func (p *Printer) String() string {
	return p.b.String()
}

// WriteValue renders v to the printer's buffer.
func (p *Printer) WriteValue(v Value) {
	switch v.Kind {
	case KindNull:
		p.b.Word("null")
	case KindBool:
		if v.Bool {
			p.b.Word("true")
		} else {
			p.b.Word("false")
		}
	case KindNumber:
		p.b.Word(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case KindString:
		p.b.Word(strconv.Quote(v.Str))
	case KindArray:
		p.writeArray(v)
	case KindObject:
		p.writeObject(v)
	}
}

func (p *Printer) writeArray(v Value) {
	if p.Pretty && len(v.Items) > 0 {
		printer.OpenBlock[Kind](p, LBracket)
		printer.WriteSeparated[Kind, Value](p, v.Items, p.WriteValue, Comma, false, true)
		printer.CloseBlock[Kind](p, RBracket)
		return
	}
	p.Token(LBracket)
	printer.WriteSeparatedInline[Kind, Value](p, v.Items, p.WriteValue, Comma)
	p.Token(RBracket)
}

func (p *Printer) writeObject(v Value) {
	if p.Pretty && len(v.Members) > 0 {
		printer.OpenBlock[Kind](p, LBrace)
		printer.WriteSeparated[Kind, Member](p, v.Members, p.writeMember, Comma, false, true)
		printer.CloseBlock[Kind](p, RBrace)
		return
	}
	p.Token(LBrace)
	printer.WriteSeparatedInline[Kind, Member](p, v.Members, p.writeMember, Comma)
	p.Token(RBrace)
}

func (p *Printer) writeMember(m Member) {
	p.b.Word(strconv.Quote(m.Key.Value))
	p.Token(Colon)
	p.b.Space()
	p.WriteValue(m.Value)
}

// PrintLine renders v as one JSON Lines record, including its trailing
// newline.
func PrintLine(v Value) string {
	p := NewPrinter()
	p.WriteValue(v)
	p.b.Char('\n')
	return p.String()
}
