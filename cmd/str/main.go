package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/sty00A4/str/str"
)

const version = "str 0.1.0"

const usage = `str

Usage:
  str play
  str SCRIPT
  str -c COMMAND
  str
  str -h | --help
  str -v | --version

Arguments:
  SCRIPT  Path to a str script.

Options:
  -c, --command=COMMAND  Run the given source text and exit.
  -h, --help             Display this help.
  -v, --version          Print the str version.

A clean run prints the stack the script leaves behind. With no
operands, str reads from stdin: a terminal gets a line editor whose
stack and variables persist across lines, anything else is run as one
script. The play command opens the full-screen playground.
`

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(argv []string) error {
	opts, err := docopt.ParseArgs(usage, argv, version)
	if err != nil {
		return err
	}

	if play, _ := opts.Bool("play"); play {
		return runPlayground()
	}
	if command, _ := opts.String("--command"); command != "" {
		return runBatch(command)
	}
	if script, _ := opts.String("SCRIPT"); script != "" {
		source, err := os.ReadFile(script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		return runBatch(string(source))
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return runREPL()
	}
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return runBatch(string(source))
}

// runBatch runs one source text against a fresh program and prints the
// stack it leaves behind. A runtime failure still prints the stack the
// completed prefix built before reporting the error.
func runBatch(source string) error {
	program := str.StdProgram()
	tokens, err := str.Lex(source)
	if err != nil {
		return renderedError(err, source)
	}
	node, err := str.Parse(tokens)
	if err != nil {
		return renderedError(err, source)
	}
	runErr := program.Run(node)
	if out := program.Stack().String(); out != "" {
		fmt.Println(out)
	}
	if runErr != nil {
		return renderedError(runErr, source)
	}
	return nil
}

// renderedError attaches a code frame to positioned errors.
func renderedError(err error, source string) error {
	var evalErr *str.Error
	if errors.As(err, &evalErr) && evalErr.Pos != nil {
		if frame := formatCodeFrame(source, *evalErr.Pos); frame != "" {
			return fmt.Errorf("%s\n%s", err, frame)
		}
	}
	return err
}
