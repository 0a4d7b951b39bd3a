package str

import (
	"slices"
	"strings"
)

// NativeFunc is the implementation of a built-in operation. Dispatch
// has already checked the operand types when it is called, so bodies
// pop without re-validating arity.
type NativeFunc func(p *Program) error

// overload is one callable candidate: a required type signature plus
// either a native implementation or a user-defined body. params reads
// left-to-right as bottom-to-top of the stack.
type overload struct {
	params []Type
	native NativeFunc
	body   Node
}

// matches reports whether the top of the stack satisfies the
// signature. Parameters are checked right-to-left against the stack
// top downward; values deeper than the signature are ignored.
func (o *overload) matches(stack *Stack) bool {
	if stack.Len() < len(o.params) {
		return false
	}
	for i := range o.params {
		param := o.params[len(o.params)-1-i]
		if !param.match(stack.fromTop(i).Type()) {
			return false
		}
	}
	return true
}

// overloadSet is every candidate registered under one operation name.
// Candidates keep registration order, which is the dispatch tie-break:
// the first matching signature wins.
type overloadSet struct {
	name       string
	candidates []overload
}

// define adds a candidate. A signature equal to an already registered
// one replaces it in place, keeping its position in the order; Any is
// exact here, so [any] and [int] stay distinct candidates.
func (s *overloadSet) define(ov overload) {
	for i := range s.candidates {
		if slices.Equal(s.candidates[i].params, ov.params) {
			s.candidates[i] = ov
			return
		}
	}
	s.candidates = append(s.candidates, ov)
}

// lookup returns the first candidate the current stack satisfies, in
// registration order, or nil when none match.
func (s *overloadSet) lookup(stack *Stack) *overload {
	for i := range s.candidates {
		if s.candidates[i].matches(stack) {
			return &s.candidates[i]
		}
	}
	return nil
}

// signatures renders every candidate for no-match diagnostics, one
// `[types] name` line each.
func (s *overloadSet) signatures() string {
	var sb strings.Builder
	for i := range s.candidates {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  [")
		for j, t := range s.candidates[i].params {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.String())
		}
		sb.WriteString("] ")
		sb.WriteString(s.name)
	}
	return sb.String()
}
