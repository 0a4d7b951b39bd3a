package str

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a source span. Offsets are byte indexes into the input,
// lines and columns are 1-based rune coordinates. The End fields point
// just past the last rune of the span, so a one-rune token starting at
// column 5 ends at column 6.
type Position struct {
	StartOffset int
	EndOffset   int
	StartLine   int
	EndLine     int
	StartCol    int
	EndCol      int
}

// extend grows the span so that it also covers other. Spans only ever
// grow forward, matching the order nodes are produced in.
func (p *Position) extend(other Position) {
	p.EndOffset = other.EndOffset
	p.EndLine = other.EndLine
	p.EndCol = other.EndCol
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.StartLine, p.StartCol)
}

// InstrKind identifies the lexical category of an instruction.
type InstrKind int

const (
	InstrString InstrKind = iota
	InstrChar
	InstrInt
	InstrFloat
	InstrBoolean
	InstrID
	InstrTake
	InstrCopyTo
	InstrCopy
	InstrEnd
	InstrIf
	InstrElse
	InstrRepeat
	InstrMacro
)

// Instr is the payload of a token: which instruction it is plus the
// data the instruction carries. Take and CopyTo store their names from
// the top of the stack downward, which is the reverse of source order.
type Instr struct {
	kind InstrKind
	data any
}

func stringInstr(s string) Instr        { return Instr{kind: InstrString, data: s} }
func charInstr(r rune) Instr            { return Instr{kind: InstrChar, data: r} }
func intInstr(n int64) Instr            { return Instr{kind: InstrInt, data: n} }
func floatInstr(f float64) Instr        { return Instr{kind: InstrFloat, data: f} }
func booleanInstr(b bool) Instr         { return Instr{kind: InstrBoolean, data: b} }
func idInstr(name string) Instr         { return Instr{kind: InstrID, data: name} }
func takeInstr(names []string) Instr    { return Instr{kind: InstrTake, data: names} }
func copyToInstr(names []string) Instr  { return Instr{kind: InstrCopyTo, data: names} }
func copyInstr(target Token) Instr      { return Instr{kind: InstrCopy, data: &target} }
func keywordInstr(kind InstrKind) Instr { return Instr{kind: kind} }

// Kind returns the lexical category of the instruction.
func (i Instr) Kind() InstrKind { return i.kind }

// Text returns the payload of a String or ID instruction.
func (i Instr) Text() string {
	if s, ok := i.data.(string); ok {
		return s
	}
	return ""
}

// Rune returns the payload of a Char instruction.
func (i Instr) Rune() rune {
	if r, ok := i.data.(rune); ok {
		return r
	}
	return 0
}

// Int returns the payload of an Int instruction.
func (i Instr) Int() int64 {
	if n, ok := i.data.(int64); ok {
		return n
	}
	return 0
}

// Float returns the payload of a Float instruction.
func (i Instr) Float() float64 {
	if f, ok := i.data.(float64); ok {
		return f
	}
	return 0
}

// Bool returns the payload of a Boolean instruction.
func (i Instr) Bool() bool {
	if b, ok := i.data.(bool); ok {
		return b
	}
	return false
}

// Names returns the identifier list of a Take or CopyTo instruction, in
// stored (stack) order.
func (i Instr) Names() []string {
	if names, ok := i.data.([]string); ok {
		return names
	}
	return nil
}

// Target returns the token a Copy instruction wraps.
func (i Instr) Target() *Token {
	if t, ok := i.data.(*Token); ok {
		return t
	}
	return nil
}

// name is the category label used in diagnostics.
func (i Instr) name() string {
	switch i.kind {
	case InstrString:
		return "string"
	case InstrChar:
		return "char"
	case InstrInt:
		return "int"
	case InstrFloat:
		return "float"
	case InstrBoolean:
		return "boolean"
	case InstrID:
		return "identifier"
	case InstrTake:
		return "take-into-identifiers"
	case InstrCopyTo:
		return "copy-to-identifiers"
	case InstrCopy:
		return fmt.Sprintf("copy of %s", i.Target().Instr.name())
	case InstrEnd:
		return "end"
	case InstrIf:
		return "if"
	case InstrElse:
		return "else"
	case InstrRepeat:
		return "repeat"
	case InstrMacro:
		return "macro"
	default:
		return fmt.Sprintf("instr(%d)", int(i.kind))
	}
}

// String renders the instruction the way it looks in source. Take and
// CopyTo lists are printed in source order, so the stored order is
// reversed back first.
func (i Instr) String() string {
	switch i.kind {
	case InstrString:
		return strconv.Quote(i.Text())
	case InstrChar:
		return strconv.QuoteRune(i.Rune())
	case InstrInt:
		return strconv.FormatInt(i.Int(), 10)
	case InstrFloat:
		return formatFloat(i.Float())
	case InstrBoolean:
		return strconv.FormatBool(i.Bool())
	case InstrID:
		return i.Text()
	case InstrTake:
		return "(" + strings.Join(sourceOrder(i.Names()), " ") + ")"
	case InstrCopyTo:
		return "{" + strings.Join(sourceOrder(i.Names()), " ") + "}"
	case InstrCopy:
		return "@" + i.Target().Instr.String()
	case InstrEnd:
		return "end"
	case InstrIf:
		return "if"
	case InstrElse:
		return "else"
	case InstrRepeat:
		return "repeat"
	case InstrMacro:
		return "macro"
	default:
		return i.name()
	}
}

func sourceOrder(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[len(names)-1-i] = name
	}
	return out
}

// Token pairs an instruction with the source span it was read from.
type Token struct {
	Instr Instr
	Pos   Position
}

func (t Token) String() string {
	return t.Instr.String()
}
