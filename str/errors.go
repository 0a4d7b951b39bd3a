package str

import "fmt"

// Error is the diagnostic type shared by the lexer, the parser, and the
// evaluator. Pos is nil when no source region applies, for example when
// a host-registered operation fails without location information.
type Error struct {
	Message string
	Pos     *Position
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("error at %d:%d: %s", e.Pos.StartLine, e.Pos.StartCol, e.Message)
	}
	return "error: " + e.Message
}

func errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func errorAt(pos Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: &pos}
}
