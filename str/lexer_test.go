package str

import (
	"strings"
	"testing"
)

func lexTokens(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	return tokens
}

func lexError(t *testing.T, source string) *Error {
	t.Helper()
	_, err := Lex(source)
	if err == nil {
		t.Fatalf("lex %q: expected error", source)
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("lex %q: error type %T", source, err)
	}
	return lexErr
}

func TestLexLiterals(t *testing.T) {
	tokens := lexTokens(t, `"hi" 'x' 12 3.5 true false`)
	if len(tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(tokens))
	}
	if tokens[0].Instr.Kind() != InstrString || tokens[0].Instr.Text() != "hi" {
		t.Fatalf("string token: %v", tokens[0])
	}
	if tokens[1].Instr.Kind() != InstrChar || tokens[1].Instr.Rune() != 'x' {
		t.Fatalf("char token: %v", tokens[1])
	}
	if tokens[2].Instr.Kind() != InstrInt || tokens[2].Instr.Int() != 12 {
		t.Fatalf("int token: %v", tokens[2])
	}
	if tokens[3].Instr.Kind() != InstrFloat || tokens[3].Instr.Float() != 3.5 {
		t.Fatalf("float token: %v", tokens[3])
	}
	if tokens[4].Instr.Kind() != InstrBoolean || !tokens[4].Instr.Bool() {
		t.Fatalf("true token: %v", tokens[4])
	}
	if tokens[5].Instr.Kind() != InstrBoolean || tokens[5].Instr.Bool() {
		t.Fatalf("false token: %v", tokens[5])
	}
}

func TestLexKeywordsAndIDs(t *testing.T) {
	tokens := lexTokens(t, "if else end repeat macro + len -1")
	wantKinds := []InstrKind{
		InstrIf, InstrElse, InstrEnd, InstrRepeat, InstrMacro,
		InstrID, InstrID, InstrID,
	}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("expected %d tokens, got %d", len(wantKinds), len(tokens))
	}
	for i, want := range wantKinds {
		if tokens[i].Instr.Kind() != want {
			t.Fatalf("token %d: got kind %v, want %v", i, tokens[i].Instr.Kind(), want)
		}
	}
	// A leading minus is not part of number syntax, so -1 is an id.
	if got := tokens[7].Instr.Text(); got != "-1" {
		t.Fatalf("expected id %q, got %q", "-1", got)
	}
}

func TestLexNumbers(t *testing.T) {
	tokens := lexTokens(t, "10 3.14 1e3")
	if tokens[0].Instr.Kind() != InstrInt || tokens[0].Instr.Int() != 10 {
		t.Fatalf("int: %v", tokens[0])
	}
	if tokens[1].Instr.Kind() != InstrFloat || tokens[1].Instr.Float() != 3.14 {
		t.Fatalf("float: %v", tokens[1])
	}
	if tokens[2].Instr.Kind() != InstrFloat || tokens[2].Instr.Float() != 1000 {
		t.Fatalf("exponent float: %v", tokens[2])
	}

	err := lexError(t, "12x")
	if !strings.Contains(err.Message, "malformed number") {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}

func TestLexTakeAndCopyToStoreStackOrder(t *testing.T) {
	tokens := lexTokens(t, "(a b c) {x y}")
	take := tokens[0].Instr
	if take.Kind() != InstrTake {
		t.Fatalf("expected take, got %v", take.Kind())
	}
	if got := take.Names(); len(got) != 3 || got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("take names: %v", got)
	}
	copyTo := tokens[1].Instr
	if copyTo.Kind() != InstrCopyTo {
		t.Fatalf("expected copy-to, got %v", copyTo.Kind())
	}
	if got := copyTo.Names(); len(got) != 2 || got[0] != "y" || got[1] != "x" {
		t.Fatalf("copy-to names: %v", got)
	}
}

func TestLexCopy(t *testing.T) {
	tokens := lexTokens(t, "@a @{a b}")
	first := tokens[0].Instr
	if first.Kind() != InstrCopy || first.Target().Instr.Kind() != InstrID {
		t.Fatalf("copy of id: %v", first)
	}
	if got := first.Target().Instr.Text(); got != "a" {
		t.Fatalf("copy target: %q", got)
	}
	second := tokens[1].Instr
	if second.Kind() != InstrCopy || second.Target().Instr.Kind() != InstrCopyTo {
		t.Fatalf("copy of copy-to: %v", second)
	}

	err := lexError(t, "@")
	if !strings.Contains(err.Message, "unexpected end of input") {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}

func TestLexComments(t *testing.T) {
	tokens := lexTokens(t, "1 # ignored 2\n3 # trailing")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Instr.Int() != 1 || tokens[1].Instr.Int() != 3 {
		t.Fatalf("tokens: %v %v", tokens[0], tokens[1])
	}
	// A comment also ends a bare run.
	tokens = lexTokens(t, "abc#rest")
	if len(tokens) != 1 || tokens[0].Instr.Text() != "abc" {
		t.Fatalf("tokens: %v", tokens)
	}
}

func TestLexSymbolsEndRuns(t *testing.T) {
	tokens := lexTokens(t, `1(a)2`)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Instr.Kind() != InstrInt || tokens[1].Instr.Kind() != InstrTake || tokens[2].Instr.Kind() != InstrInt {
		t.Fatalf("kinds: %v %v %v", tokens[0], tokens[1], tokens[2])
	}
}

func TestLexPositions(t *testing.T) {
	tokens := lexTokens(t, "1\n 23 \"a\nb\"")
	first := tokens[0].Pos
	if first.StartLine != 1 || first.StartCol != 1 || first.EndCol != 2 {
		t.Fatalf("first position: %+v", first)
	}
	second := tokens[1].Pos
	if second.StartLine != 2 || second.StartCol != 2 || second.EndCol != 4 {
		t.Fatalf("second position: %+v", second)
	}
	// The string literal spans the newline inside it.
	third := tokens[2].Pos
	if third.StartLine != 2 || third.EndLine != 3 {
		t.Fatalf("third position: %+v", third)
	}
	if third.StartOffset != 6 || third.EndOffset != 11 {
		t.Fatalf("third offsets: %+v", third)
	}
}

func TestLexUnicodeColumnsCountRunes(t *testing.T) {
	tokens := lexTokens(t, `"héllo" x`)
	id := tokens[1].Pos
	if id.StartCol != 9 {
		t.Fatalf("id column: %+v", id)
	}
}

func TestLexStringAndCharErrors(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`"abc`, "unclosed string"},
		{`'`, "expected character"},
		{`''`, "unclosed character"},
		{`'ab'`, "unclosed character"},
		{`(a`, "unclosed identifier take"},
		{`{a`, "unclosed identifier copy"},
		{`(1)`, "expected identifier, got int"},
		{`)`, `unexpected ')'`},
		{`}`, `unexpected '}'`},
	}
	for _, tc := range cases {
		err := lexError(t, tc.source)
		if !strings.Contains(err.Message, tc.want) {
			t.Fatalf("lex %q: got %q, want substring %q", tc.source, err.Message, tc.want)
		}
		if err.Pos == nil {
			t.Fatalf("lex %q: error carries no position", tc.source)
		}
	}
}

func TestLexErrorDisplay(t *testing.T) {
	err := lexError(t, "  \"oops")
	if got, want := err.Error(), `error at 1:3: unclosed string`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLexCharQuote(t *testing.T) {
	tokens := lexTokens(t, "'''")
	if tokens[0].Instr.Kind() != InstrChar || tokens[0].Instr.Rune() != '\'' {
		t.Fatalf("quote char: %v", tokens[0])
	}
}

func TestLexEmptyInput(t *testing.T) {
	for _, source := range []string{"", "   \n\t", "# only a comment"} {
		if tokens := lexTokens(t, source); len(tokens) != 0 {
			t.Fatalf("lex %q: expected no tokens, got %v", source, tokens)
		}
	}
}
