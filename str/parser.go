package str

// Parse builds the executable tree for a token sequence. The result is
// always a ChunkNode; empty input yields an empty chunk with a zero
// span.
func Parse(tokens []Token) (Node, error) {
	node, err := newParser(tokens).parse()
	if err != nil {
		return nil, err
	}
	return node, nil
}

type parser struct {
	tokens []Token
	idx    int
}

func newParser(tokens []Token) *parser {
	return &parser{tokens: tokens}
}

// current returns the token under the cursor, or nil past the end.
func (p *parser) current() *Token {
	if p.idx >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.idx]
}

func (p *parser) advance() {
	p.idx++
}

func (p *parser) parse() (*ChunkNode, *Error) {
	root := &ChunkNode{}
	if len(p.tokens) > 0 {
		root.position = p.tokens[0].Pos
	}
	for {
		node, err := p.next()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return root, nil
		}
		root.position.extend(node.Pos())
		root.Nodes = append(root.Nodes, node)
	}
}

// next parses one node. It returns nil without an error at end of
// input. Keywords that only close or continue a block are rejected
// here; the block parsers consume them before recursing.
func (p *parser) next() (Node, *Error) {
	tok := p.current()
	if tok == nil {
		return nil, nil
	}
	switch tok.Instr.Kind() {
	case InstrString:
		p.advance()
		return &StringNode{Value: tok.Instr.Text(), position: tok.Pos}, nil
	case InstrChar:
		p.advance()
		return &CharNode{Value: tok.Instr.Rune(), position: tok.Pos}, nil
	case InstrInt:
		p.advance()
		return &IntNode{Value: tok.Instr.Int(), position: tok.Pos}, nil
	case InstrFloat:
		p.advance()
		return &FloatNode{Value: tok.Instr.Float(), position: tok.Pos}, nil
	case InstrBoolean:
		p.advance()
		return &BooleanNode{Value: tok.Instr.Bool(), position: tok.Pos}, nil
	case InstrID:
		p.advance()
		return &IDNode{Name: tok.Instr.Text(), position: tok.Pos}, nil
	case InstrTake:
		p.advance()
		return &TakeNode{Names: tok.Instr.Names(), position: tok.Pos}, nil
	case InstrCopyTo:
		p.advance()
		return &CopyToNode{Names: tok.Instr.Names(), position: tok.Pos}, nil
	case InstrCopy:
		p.advance()
		return &CopyNode{Target: *tok.Instr.Target(), position: tok.Pos}, nil
	case InstrIf:
		return p.parseIf()
	case InstrRepeat:
		return p.parseRepeat()
	case InstrMacro:
		return p.parseMacro()
	default:
		return nil, errorAt(tok.Pos, "unexpected %s", tok.Instr)
	}
}

func (p *parser) parseIf() (Node, *Error) {
	open := p.current()
	pos := open.Pos
	p.advance()
	var body, elseBody []Node
	inElse := false
	for {
		cur := p.current()
		if cur == nil {
			return nil, errorAt(pos, "unclosed if block")
		}
		switch cur.Instr.Kind() {
		case InstrEnd:
			pos.extend(cur.Pos)
			p.advance()
			node := &IfNode{Body: wrapBody(body, open.Pos), position: pos}
			if inElse {
				node.Else = wrapBody(elseBody, open.Pos)
			}
			return node, nil
		case InstrElse:
			if inElse {
				return nil, errorAt(cur.Pos, "unexpected else")
			}
			pos.extend(cur.Pos)
			p.advance()
			inElse = true
		default:
			child, err := p.next()
			if err != nil {
				return nil, err
			}
			pos.extend(child.Pos())
			if inElse {
				elseBody = append(elseBody, child)
			} else {
				body = append(body, child)
			}
		}
	}
}

func (p *parser) parseRepeat() (Node, *Error) {
	open := p.current()
	pos := open.Pos
	p.advance()
	var body []Node
	for {
		cur := p.current()
		if cur == nil {
			return nil, errorAt(pos, "unclosed repeat block")
		}
		if cur.Instr.Kind() == InstrEnd {
			pos.extend(cur.Pos)
			p.advance()
			return &RepeatNode{Body: wrapBody(body, open.Pos), position: pos}, nil
		}
		child, err := p.next()
		if err != nil {
			return nil, err
		}
		pos.extend(child.Pos())
		body = append(body, child)
	}
}

// parseMacro parses `macro name (types...) body end`. The parameter
// list reuses the take form, so its stored names arrive in stack order
// and are flipped back to declared order here.
func (p *parser) parseMacro() (Node, *Error) {
	open := p.current()
	pos := open.Pos
	p.advance()

	nameTok := p.current()
	if nameTok == nil {
		return nil, errorAt(pos, "expected identifier, got end of input")
	}
	if nameTok.Instr.Kind() != InstrID {
		return nil, errorAt(nameTok.Pos, "expected identifier, got %s", nameTok.Instr.name())
	}
	name := nameTok.Instr.Text()
	pos.extend(nameTok.Pos)
	p.advance()

	listTok := p.current()
	if listTok == nil {
		return nil, errorAt(pos, "expected parameter list, got end of input")
	}
	if listTok.Instr.Kind() != InstrTake {
		return nil, errorAt(listTok.Pos, "expected parameter list, got %s", listTok.Instr.name())
	}
	stored := listTok.Instr.Names()
	params := make([]Type, len(stored))
	for i, typeName := range stored {
		t, ok := typeByName(typeName)
		if !ok {
			return nil, errorAt(listTok.Pos, "unknown type %q", typeName)
		}
		params[len(stored)-1-i] = t
	}
	pos.extend(listTok.Pos)
	p.advance()

	var body []Node
	for {
		cur := p.current()
		if cur == nil {
			return nil, errorAt(pos, "unclosed macro block")
		}
		if cur.Instr.Kind() == InstrEnd {
			pos.extend(cur.Pos)
			p.advance()
			return &MacroNode{Name: name, Params: params, Body: wrapBody(body, open.Pos), position: pos}, nil
		}
		child, err := p.next()
		if err != nil {
			return nil, err
		}
		pos.extend(child.Pos())
		body = append(body, child)
	}
}

// wrapBody turns a block body into a single node: a lone node stays
// bare, anything else becomes a chunk. Empty bodies take the opening
// keyword's span.
func wrapBody(nodes []Node, at Position) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	pos := at
	if len(nodes) > 0 {
		pos = nodes[0].Pos()
		for _, n := range nodes[1:] {
			pos.extend(n.Pos())
		}
	}
	return &ChunkNode{Nodes: nodes, position: pos}
}
