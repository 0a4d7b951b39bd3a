package str

import "slices"

// Program is one interpreter session: the operand stack, the variable
// table, and the operation registry. Every Run mutates the program in
// place, so values left on the stack and bound names carry over to the
// next Run. A Program is not safe for concurrent use.
type Program struct {
	stack Stack
	vars  map[string]Value
	ops   map[string]*overloadSet
}

// NewProgram returns an empty program with no operations registered.
// Most callers want StdProgram instead.
func NewProgram() *Program {
	return &Program{
		vars: make(map[string]Value),
		ops:  make(map[string]*overloadSet),
	}
}

// Stack exposes the operand stack, for display and for hosts that push
// inputs before running.
func (p *Program) Stack() *Stack {
	return &p.stack
}

// Vars returns a snapshot of the variable table.
func (p *Program) Vars() map[string]Value {
	out := make(map[string]Value, len(p.vars))
	for name, v := range p.vars {
		out[name] = v
	}
	return out
}

// Operations returns the sorted names of every registered operation.
func (p *Program) Operations() []string {
	names := make([]string, 0, len(p.ops))
	for name := range p.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds a native implementation for name under the given
// signature. Registering an identical signature again replaces the
// earlier candidate without moving it in the dispatch order.
func (p *Program) Register(name string, params []Type, fn NativeFunc) {
	p.define(name, overload{params: slices.Clone(params), native: fn})
}

// registerBody is Register for user macro bodies.
func (p *Program) registerBody(name string, params []Type, body Node) {
	p.define(name, overload{params: slices.Clone(params), body: body})
}

func (p *Program) define(name string, ov overload) {
	set, ok := p.ops[name]
	if !ok {
		set = &overloadSet{name: name}
		p.ops[name] = set
	}
	set.define(ov)
}

// Run walks the tree depth-first, mutating the program as it goes. The
// first failure aborts evaluation; whatever the completed prefix
// pushed or bound stays in place, so a session can inspect the
// aftermath.
func (p *Program) Run(node Node) error {
	if err := p.run(node); err != nil {
		return err
	}
	return nil
}

func (p *Program) run(node Node) *Error {
	switch n := node.(type) {
	case *ChunkNode:
		for _, child := range n.Nodes {
			if err := p.run(child); err != nil {
				return err
			}
		}
	case *StringNode:
		p.stack.Push(NewString(n.Value))
	case *CharNode:
		p.stack.Push(NewChar(n.Value))
	case *IntNode:
		p.stack.Push(NewInt(n.Value))
	case *FloatNode:
		p.stack.Push(NewFloat(n.Value))
	case *BooleanNode:
		p.stack.Push(NewBool(n.Value))
	case *IDNode:
		return p.runID(n)
	case *TakeNode:
		for _, name := range n.Names {
			v, ok := p.stack.Pop()
			if !ok {
				return errorAt(n.Pos(), "cannot take a value into %q due to stack underflow", name)
			}
			p.vars[name] = v
		}
	case *CopyToNode:
		for _, name := range n.Names {
			v, ok := p.stack.Peek()
			if !ok {
				return errorAt(n.Pos(), "cannot copy a value into %q due to stack underflow", name)
			}
			p.vars[name] = v
		}
	case *CopyNode:
		return p.runCopy(n)
	case *IfNode:
		cond, ok := p.stack.Pop()
		if !ok {
			return errorAt(n.Pos(), "cannot run if due to stack underflow")
		}
		if cond.Kind() != KindBoolean {
			return errorAt(n.Pos(), "expected bool on top of the stack, got %s", cond.Type())
		}
		if cond.Bool() {
			return p.run(n.Body)
		}
		if n.Else != nil {
			return p.run(n.Else)
		}
	case *RepeatNode:
		count, ok := p.stack.Pop()
		if !ok {
			return errorAt(n.Pos(), "cannot run repeat due to stack underflow")
		}
		if count.Kind() != KindInt {
			return errorAt(n.Pos(), "expected int on top of the stack, got %s", count.Type())
		}
		for i := int64(0); i < count.Int(); i++ {
			if err := p.run(n.Body); err != nil {
				return err
			}
		}
	case *MacroNode:
		p.registerBody(n.Name, n.Params, n.Body)
	}
	return nil
}

// runID resolves a bare identifier. Operations shadow variables of the
// same name; a variable read removes the binding.
func (p *Program) runID(n *IDNode) *Error {
	if set, ok := p.ops[n.Name]; ok {
		cand := set.lookup(&p.stack)
		if cand == nil {
			return errorAt(n.Pos(), "no definition of macro %q matches the current stack, defined signatures:\n%s",
				n.Name, set.signatures())
		}
		if cand.body != nil {
			return p.run(cand.body)
		}
		if err := cand.native(p); err != nil {
			if e, ok := err.(*Error); ok {
				if e.Pos == nil {
					pos := n.Pos()
					e.Pos = &pos
				}
				return e
			}
			return errorAt(n.Pos(), "%s", err)
		}
		return nil
	}
	if v, ok := p.vars[n.Name]; ok {
		delete(p.vars, n.Name)
		p.stack.Push(v)
		return nil
	}
	return errorAt(n.Pos(), "unknown id %q", n.Name)
}

// runCopy pushes copies of bound values, leaving the bindings intact.
// @{a b} pushes values in source order, so the list reads bottom-to-top
// the same way a take does: `1 2 (a b) @{a b}` restores the stack it
// consumed.
func (p *Program) runCopy(n *CopyNode) *Error {
	target := n.Target
	switch target.Instr.Kind() {
	case InstrID:
		name := target.Instr.Text()
		if v, ok := p.vars[name]; ok {
			p.stack.Push(v)
			return nil
		}
		if _, ok := p.ops[name]; ok {
			return errorAt(target.Pos, "cannot copy %q, it is defined as a macro", name)
		}
		return errorAt(target.Pos, "unknown id %q", name)
	case InstrCopyTo:
		names := target.Instr.Names()
		for i := len(names) - 1; i >= 0; i-- {
			name := names[i]
			v, ok := p.vars[name]
			if !ok {
				if _, isOp := p.ops[name]; isOp {
					return errorAt(target.Pos, "cannot copy %q, it is defined as a macro", name)
				}
				return errorAt(target.Pos, "unknown id %q", name)
			}
			p.stack.Push(v)
		}
		return nil
	default:
		return errorAt(target.Pos, "expected identifier or copy-to-identifiers after @, got %s", target.Instr.name())
	}
}
