package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sty00A4/str/str"
)

// formatCodeFrame points at the source region an error names: the
// offending line with a gutter, and a caret run covering the span. A
// span that crosses lines is underlined to the end of its first line.
func formatCodeFrame(source string, pos str.Position) string {
	if source == "" || pos.StartLine <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.StartLine > len(lines) {
		return ""
	}

	lineText := lines[pos.StartLine-1]
	lineRunes := []rune(lineText)

	column := pos.StartCol
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	width := len(lineRunes) - column + 1
	if pos.EndLine == pos.StartLine && pos.EndCol > pos.StartCol {
		width = pos.EndCol - pos.StartCol
	}
	if width > len(lineRunes)-column+1 {
		width = len(lineRunes) - column + 1
	}
	if width < 1 {
		width = 1
	}

	lineLabel := strconv.Itoa(pos.StartLine)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s%s",
		pos.StartLine,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
		strings.Repeat("^", width),
	)
}
