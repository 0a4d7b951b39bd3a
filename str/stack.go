package str

import "strings"

// Stack is the operand stack. The zero value is an empty stack ready
// for use.
type Stack struct {
	values []Value
}

// Push places v on top of the stack.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top of the stack. It reports false on an
// empty stack.
func (s *Stack) Pop() (Value, bool) {
	if len(s.values) == 0 {
		return Value{}, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

// Peek returns the top of the stack without removing it.
func (s *Stack) Peek() (Value, bool) {
	if len(s.values) == 0 {
		return Value{}, false
	}
	return s.values[len(s.values)-1], true
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}

// fromTop returns the value i positions below the top without bounds
// checking; dispatch verifies depth before calling it.
func (s *Stack) fromTop(i int) Value {
	return s.values[len(s.values)-1-i]
}

// mustPop is for built-in operations whose operand count dispatch has
// already proved; an empty stack here is an interpreter bug.
func (s *Stack) mustPop() Value {
	v, ok := s.Pop()
	if !ok {
		panic("operand stack underflow past dispatch check")
	}
	return v
}

// String renders the stack bottom to top in debug form, values
// separated by single spaces.
func (s *Stack) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.Inspect()
	}
	return strings.Join(parts, " ")
}
