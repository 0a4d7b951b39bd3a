package str

import (
	"strings"
	"unicode/utf8"
)

// String operations work in runes, not bytes: len counts runes, `.`
// indexes runes, and pos reports rune positions, so an index taken
// from pos feeds straight back into `.`.

func stringLen(p *Program) error {
	s := p.stack.mustPop()
	p.stack.Push(NewInt(int64(utf8.RuneCountInString(s.Text()))))
	return nil
}

// wrapIndex maps i into [0,n), counting negative values back from the
// end. n must be positive; callers reject the empty string before
// wrapping.
func wrapIndex(i int64, n int) int {
	m := i % int64(n)
	if m < 0 {
		m += int64(n)
	}
	return int(m)
}

func charAt(p *Program) error {
	idx, s := p.stack.mustPop(), p.stack.mustPop()
	runes := []rune(s.Text())
	if len(runes) == 0 {
		return errorf("cannot index into an empty str")
	}
	p.stack.Push(NewChar(runes[wrapIndex(idx.Int(), len(runes))]))
	return nil
}

// sliceString takes a half-open range: both bounds wrap like charAt,
// so "abcd" 1 -1 . is "bc".
func sliceString(p *Program) error {
	end, start, s := p.stack.mustPop(), p.stack.mustPop(), p.stack.mustPop()
	runes := []rune(s.Text())
	if len(runes) == 0 {
		return errorf("cannot slice an empty str")
	}
	i := wrapIndex(start.Int(), len(runes))
	j := wrapIndex(end.Int(), len(runes))
	p.stack.Push(NewString(string(runes[i:j])))
	return nil
}

func reverseString(p *Program) error {
	runes := []rune(p.stack.mustPop().Text())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	p.stack.Push(NewString(string(runes)))
	return nil
}

// findInString pushes the rune index of the first occurrence followed
// by true, or just false when the needle is absent.
func findInString(p *Program) error {
	needle, s := p.stack.mustPop(), p.stack.mustPop()
	byteIdx := strings.Index(s.Text(), needleText(needle))
	if byteIdx < 0 {
		p.stack.Push(NewBool(false))
		return nil
	}
	p.stack.Push(NewInt(int64(utf8.RuneCountInString(s.Text()[:byteIdx]))))
	p.stack.Push(NewBool(true))
	return nil
}

// removeAt pushes the char removed from the string. The rest of the
// string is not pushed back.
func removeAt(p *Program) error {
	idx, s := p.stack.mustPop(), p.stack.mustPop()
	runes := []rune(s.Text())
	if len(runes) == 0 {
		return errorf("cannot remove from an empty str")
	}
	p.stack.Push(NewChar(runes[wrapIndex(idx.Int(), len(runes))]))
	return nil
}

// countInString counts occurrences of the needle. Substring matches
// may overlap: "aaa" "aa" count is 2.
func countInString(p *Program) error {
	needle, s := p.stack.mustPop(), p.stack.mustPop()
	if needle.Kind() == KindChar {
		count := int64(0)
		for _, r := range s.Text() {
			if r == needle.Rune() {
				count++
			}
		}
		p.stack.Push(NewInt(count))
		return nil
	}
	hay := []rune(s.Text())
	nd := []rune(needle.Text())
	count := int64(0)
	for i := range hay {
		if i+len(nd) <= len(hay) && string(hay[i:i+len(nd)]) == needle.Text() {
			count++
		}
	}
	p.stack.Push(NewInt(count))
	return nil
}

// splitString pushes every part bottom-up, then the part count, so the
// count on top says how many strings sit underneath.
func splitString(p *Program) error {
	sep, s := p.stack.mustPop(), p.stack.mustPop()
	sepText := needleText(sep)
	parts := strings.Split(s.Text(), sepText)
	if sepText == "" {
		// An empty separator also matches the boundary at each end, so
		// both ends contribute an empty part.
		parts = append(append([]string{""}, parts...), "")
	}
	for _, part := range parts {
		p.stack.Push(NewString(part))
	}
	p.stack.Push(NewInt(int64(len(parts))))
	return nil
}

// joinStack consumes the entire stack below the separator and pushes
// one string, joining bottom to top. Non-string values join in display
// form.
func joinStack(p *Program) error {
	sep := p.stack.mustPop()
	parts := make([]string, p.stack.Len())
	for i := len(parts) - 1; i >= 0; i-- {
		parts[i] = p.stack.mustPop().String()
	}
	p.stack.Push(NewString(strings.Join(parts, needleText(sep))))
	return nil
}

// needleText is the raw text of a String or Char operand.
func needleText(v Value) string {
	if v.Kind() == KindChar {
		return string(v.Rune())
	}
	return v.Text()
}
