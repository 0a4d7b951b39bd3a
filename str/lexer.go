package str

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex converts source text into its token sequence. The first
// malformed construct aborts the whole scan with a positioned error.
func Lex(text string) ([]Token, error) {
	l := newLexer(text)
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}

// lexer scans the input one rune at a time. off, line and col always
// describe the next rune to be read.
type lexer struct {
	input string
	off   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

// current returns the rune under the cursor, or 0 at end of input.
func (l *lexer) current() rune {
	if l.off >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.off:])
	return r
}

func (l *lexer) advance() {
	if l.off >= len(l.input) {
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.off:])
	l.off += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// mark opens a span at the cursor; spanFrom closes one there.
func (l *lexer) mark() Position {
	return Position{
		StartOffset: l.off, EndOffset: l.off,
		StartLine: l.line, EndLine: l.line,
		StartCol: l.col, EndCol: l.col,
	}
}

func (l *lexer) spanFrom(start Position) Position {
	start.EndOffset = l.off
	start.EndLine = l.line
	start.EndCol = l.col
	return start
}

// skipSpace consumes whitespace and # comments, which run to the end
// of the line.
func (l *lexer) skipSpace() {
	for {
		switch ch := l.current(); {
		case ch == '#':
			for ch != 0 && ch != '\n' {
				l.advance()
				ch = l.current()
			}
		case unicode.IsSpace(ch):
			l.advance()
		default:
			return
		}
	}
}

// isSymbol reports whether r is one of the reserved symbols that start
// or close a token on their own.
func isSymbol(r rune) bool {
	switch r {
	case '"', '\'', '(', ')', '{', '}', '@':
		return true
	}
	return false
}

// next scans one token. It returns nil without an error at end of
// input.
func (l *lexer) next() (*Token, *Error) {
	l.skipSpace()
	ch := l.current()
	if ch == 0 {
		return nil, nil
	}
	start := l.mark()
	switch ch {
	case '"':
		l.advance()
		var sb strings.Builder
		for {
			c := l.current()
			if c == 0 {
				return nil, errorAt(l.spanFrom(start), "unclosed string")
			}
			l.advance()
			if c == '"' {
				break
			}
			sb.WriteRune(c)
		}
		return &Token{Instr: stringInstr(sb.String()), Pos: l.spanFrom(start)}, nil
	case '\'':
		l.advance()
		c := l.current()
		if c == 0 {
			return nil, errorAt(l.spanFrom(start), "expected character")
		}
		l.advance()
		if l.current() != '\'' {
			return nil, errorAt(l.spanFrom(start), "unclosed character")
		}
		l.advance()
		return &Token{Instr: charInstr(c), Pos: l.spanFrom(start)}, nil
	case '(':
		l.advance()
		names, err := l.groupNames(')', "take", start)
		if err != nil {
			return nil, err
		}
		return &Token{Instr: takeInstr(stackOrder(names)), Pos: l.spanFrom(start)}, nil
	case '{':
		l.advance()
		names, err := l.groupNames('}', "copy", start)
		if err != nil {
			return nil, err
		}
		return &Token{Instr: copyToInstr(stackOrder(names)), Pos: l.spanFrom(start)}, nil
	case '@':
		l.advance()
		target, err := l.next()
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, errorAt(l.spanFrom(start), "unexpected end of input after @")
		}
		return &Token{Instr: copyInstr(*target), Pos: l.spanFrom(start)}, nil
	case ')', '}':
		l.advance()
		return nil, errorAt(l.spanFrom(start), "unexpected %q", ch)
	default:
		var sb strings.Builder
		for {
			c := l.current()
			if c == 0 || c == '#' || unicode.IsSpace(c) || isSymbol(c) {
				break
			}
			sb.WriteRune(c)
			l.advance()
		}
		pos := l.spanFrom(start)
		instr, err := classifyRun(sb.String(), pos)
		if err != nil {
			return nil, err
		}
		return &Token{Instr: instr, Pos: pos}, nil
	}
}

// groupNames reads the identifiers between ( ) or { }. Source order is
// left intact here; callers flip it into stack order.
func (l *lexer) groupNames(close rune, what string, start Position) ([]string, *Error) {
	var names []string
	for {
		l.skipSpace()
		ch := l.current()
		if ch == 0 {
			return nil, errorAt(l.spanFrom(start), "unclosed identifier %s", what)
		}
		if ch == close {
			l.advance()
			return names, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, errorAt(l.spanFrom(start), "unclosed identifier %s", what)
		}
		if tok.Instr.Kind() != InstrID {
			return nil, errorAt(tok.Pos, "expected identifier, got %s", tok.Instr.name())
		}
		names = append(names, tok.Instr.Text())
	}
}

// stackOrder flips a source-order name list so that the first name
// addresses the top of the stack.
func stackOrder(names []string) []string {
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// classifyRun decides what a bare run of characters is: a keyword, a
// boolean, a number, or an identifier. A run starting with a digit must
// parse as a number.
func classifyRun(run string, pos Position) (Instr, *Error) {
	switch run {
	case "":
		return Instr{}, errorAt(pos, "empty id")
	case "true":
		return booleanInstr(true), nil
	case "false":
		return booleanInstr(false), nil
	case "end":
		return keywordInstr(InstrEnd), nil
	case "if":
		return keywordInstr(InstrIf), nil
	case "else":
		return keywordInstr(InstrElse), nil
	case "repeat":
		return keywordInstr(InstrRepeat), nil
	case "macro":
		return keywordInstr(InstrMacro), nil
	}
	first, _ := utf8.DecodeRuneInString(run)
	if unicode.IsDigit(first) {
		if n, err := strconv.ParseInt(run, 10, 64); err == nil {
			return intInstr(n), nil
		}
		if f, err := strconv.ParseFloat(run, 64); err == nil {
			return floatInstr(f), nil
		}
		return Instr{}, errorAt(pos, "malformed number %q", run)
	}
	return idInstr(run), nil
}
