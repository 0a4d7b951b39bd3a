package str

import "testing"

func FuzzLexParseDoesNotPanic(f *testing.F) {
	f.Add("")
	f.Add(`1 2 + (a b) @a`)
	f.Add(`"unclosed`)
	f.Add(`'`)
	f.Add(`''`)
	f.Add(`true if 1 else 2 end`)
	f.Add(`3 repeat "x" end`)
	f.Add(`macro f (int int) + end`)
	f.Add(`@@@`)
	f.Add(`((((`)
	f.Add(`{a b} @{a b}`)
	f.Add("# comment only\n")
	f.Add(`"héllo" 'é' pos`)
	f.Add(`)}`)
	f.Add(`12.34.56`)

	f.Fuzz(func(t *testing.T, source string) {
		tokens, err := Lex(source)
		if err != nil {
			return
		}
		_, _ = Parse(tokens)
	})
}
