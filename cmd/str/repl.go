package main

import (
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"github.com/sty00A4/str/str"
)

// runREPL is the plain line-editor session used when stdin is a
// terminal. One program lives for the whole session, so the stack and
// the variable table carry over from line to line, and the stack is
// printed after every line.
func runREPL() error {
	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)

	program := str.StdProgram()
	completer := func(line string) []string {
		return completeLine(program, line)
	}
	cli.SetCompleter(completer)

	fmt.Println(version)
	fmt.Println(`type "exit" or press ctrl+d to leave`)

	for {
		line, err := cli.Prompt("> ")
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		default:
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cli.AppendHistory(line)
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		evalLine(program, line)
	}
}

// evalLine runs one line against the session program. Errors do not
// end the session, and the stack is shown either way so a failed
// line's surviving prefix stays visible.
func evalLine(program *str.Program, line string) {
	if err := evalSource(program, line); err != nil {
		fmt.Println(errorStyle.Render(renderedError(err, line).Error()))
	}
	fmt.Println(stackStyle.Render(program.Stack().String()))
}

func evalSource(program *str.Program, source string) error {
	tokens, err := str.Lex(source)
	if err != nil {
		return err
	}
	node, err := str.Parse(tokens)
	if err != nil {
		return err
	}
	return program.Run(node)
}

// completeLine completes the word under the cursor against keywords,
// registered operations, and bound variables.
func completeLine(program *str.Program, line string) []string {
	var head, word string
	if idx := strings.LastIndexAny(line, " \t"); idx >= 0 {
		head, word = line[:idx+1], line[idx+1:]
	} else {
		word = line
	}
	if word == "" {
		return nil
	}
	var out []string
	for _, candidate := range completionCandidates(program) {
		if strings.HasPrefix(candidate, word) {
			out = append(out, head+candidate)
		}
	}
	return out
}

var replKeywords = []string{"if", "else", "end", "repeat", "macro", "true", "false"}

func completionCandidates(program *str.Program) []string {
	candidates := append([]string{}, replKeywords...)
	candidates = append(candidates, program.Operations()...)
	for name := range program.Vars() {
		candidates = append(candidates, name)
	}
	return candidates
}
