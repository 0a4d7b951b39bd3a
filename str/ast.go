package str

// Node is an executable element of the syntax tree.
type Node interface {
	Pos() Position
	node()
}

// ChunkNode is a sequence of nodes run in order. The whole script is
// one chunk; block bodies with zero or several nodes are chunks too.
type ChunkNode struct {
	Nodes    []Node
	position Position
}

// StringNode pushes a string literal.
type StringNode struct {
	Value    string
	position Position
}

// CharNode pushes a char literal.
type CharNode struct {
	Value    rune
	position Position
}

// IntNode pushes an int literal.
type IntNode struct {
	Value    int64
	position Position
}

// FloatNode pushes a float literal.
type FloatNode struct {
	Value    float64
	position Position
}

// BooleanNode pushes a boolean literal.
type BooleanNode struct {
	Value    bool
	position Position
}

// IDNode names an operation to dispatch or a variable to read. Reading
// a variable consumes its binding.
type IDNode struct {
	Name     string
	position Position
}

// TakeNode pops one value per name into the variable table. Names are
// stored top-of-stack first.
type TakeNode struct {
	Names    []string
	position Position
}

// CopyToNode binds every name to the value on top of the stack without
// popping it.
type CopyToNode struct {
	Names    []string
	position Position
}

// CopyNode pushes copies of bound values without consuming the
// bindings. Target is the token after the @.
type CopyNode struct {
	Target   Token
	position Position
}

// IfNode pops a boolean and runs Body when it is true, otherwise Else.
// Else is nil when the block has no else branch.
type IfNode struct {
	Body     Node
	Else     Node
	position Position
}

// RepeatNode pops an int and runs Body that many times.
type RepeatNode struct {
	Body     Node
	position Position
}

// MacroNode registers Body as an overload of Name for the given
// parameter types. Params reads left-to-right as bottom-to-top of the
// stack.
type MacroNode struct {
	Name     string
	Params   []Type
	Body     Node
	position Position
}

func (n *ChunkNode) node()   {}
func (n *StringNode) node()  {}
func (n *CharNode) node()    {}
func (n *IntNode) node()     {}
func (n *FloatNode) node()   {}
func (n *BooleanNode) node() {}
func (n *IDNode) node()      {}
func (n *TakeNode) node()    {}
func (n *CopyToNode) node()  {}
func (n *CopyNode) node()    {}
func (n *IfNode) node()      {}
func (n *RepeatNode) node()  {}
func (n *MacroNode) node()   {}

func (n *ChunkNode) Pos() Position   { return n.position }
func (n *StringNode) Pos() Position  { return n.position }
func (n *CharNode) Pos() Position    { return n.position }
func (n *IntNode) Pos() Position     { return n.position }
func (n *FloatNode) Pos() Position   { return n.position }
func (n *BooleanNode) Pos() Position { return n.position }
func (n *IDNode) Pos() Position      { return n.position }
func (n *TakeNode) Pos() Position    { return n.position }
func (n *CopyToNode) Pos() Position  { return n.position }
func (n *CopyNode) Pos() Position    { return n.position }
func (n *IfNode) Pos() Position      { return n.position }
func (n *RepeatNode) Pos() Position  { return n.position }
func (n *MacroNode) Pos() Position   { return n.position }
