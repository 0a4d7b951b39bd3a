package str

import (
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *ChunkNode {
	t.Helper()
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	node, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	chunk, ok := node.(*ChunkNode)
	if !ok {
		t.Fatalf("parse %q: root is %T, want chunk", source, node)
	}
	return chunk
}

func parseError(t *testing.T, source string) *Error {
	t.Helper()
	tokens, err := Lex(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatalf("parse %q: expected error", source)
	}
	parseErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("parse %q: error type %T", source, err)
	}
	return parseErr
}

func TestParseFlatSequence(t *testing.T) {
	chunk := parseSource(t, `1 "a" x (a) {b} @a`)
	if len(chunk.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(chunk.Nodes))
	}
	if _, ok := chunk.Nodes[0].(*IntNode); !ok {
		t.Fatalf("node 0: %T", chunk.Nodes[0])
	}
	if _, ok := chunk.Nodes[1].(*StringNode); !ok {
		t.Fatalf("node 1: %T", chunk.Nodes[1])
	}
	if id, ok := chunk.Nodes[2].(*IDNode); !ok || id.Name != "x" {
		t.Fatalf("node 2: %#v", chunk.Nodes[2])
	}
	if _, ok := chunk.Nodes[3].(*TakeNode); !ok {
		t.Fatalf("node 3: %T", chunk.Nodes[3])
	}
	if _, ok := chunk.Nodes[4].(*CopyToNode); !ok {
		t.Fatalf("node 4: %T", chunk.Nodes[4])
	}
	if _, ok := chunk.Nodes[5].(*CopyNode); !ok {
		t.Fatalf("node 5: %T", chunk.Nodes[5])
	}
}

func TestParseEmptyInput(t *testing.T) {
	chunk := parseSource(t, "")
	if len(chunk.Nodes) != 0 {
		t.Fatalf("expected empty chunk, got %d nodes", len(chunk.Nodes))
	}
	if chunk.Pos() != (Position{}) {
		t.Fatalf("expected zero position, got %+v", chunk.Pos())
	}
}

func TestParseIfElse(t *testing.T) {
	chunk := parseSource(t, "true if 1 else 2 3 end")
	ifNode, ok := chunk.Nodes[1].(*IfNode)
	if !ok {
		t.Fatalf("expected if node, got %T", chunk.Nodes[1])
	}
	// Single-node bodies stay bare, several nodes become a chunk.
	if _, ok := ifNode.Body.(*IntNode); !ok {
		t.Fatalf("body: %T", ifNode.Body)
	}
	elseChunk, ok := ifNode.Else.(*ChunkNode)
	if !ok {
		t.Fatalf("else: %T", ifNode.Else)
	}
	if len(elseChunk.Nodes) != 2 {
		t.Fatalf("else nodes: %d", len(elseChunk.Nodes))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	chunk := parseSource(t, "true if 1 end")
	ifNode := chunk.Nodes[1].(*IfNode)
	if ifNode.Else != nil {
		t.Fatalf("expected nil else, got %T", ifNode.Else)
	}
}

func TestParseEmptyElseIsPresent(t *testing.T) {
	chunk := parseSource(t, "true if 1 else end")
	ifNode := chunk.Nodes[1].(*IfNode)
	if ifNode.Else == nil {
		t.Fatal("expected empty else branch, got nil")
	}
	if elseChunk, ok := ifNode.Else.(*ChunkNode); !ok || len(elseChunk.Nodes) != 0 {
		t.Fatalf("else: %#v", ifNode.Else)
	}
}

func TestParseRepeat(t *testing.T) {
	chunk := parseSource(t, "3 repeat 1 2 end")
	repeatNode, ok := chunk.Nodes[1].(*RepeatNode)
	if !ok {
		t.Fatalf("expected repeat node, got %T", chunk.Nodes[1])
	}
	body, ok := repeatNode.Body.(*ChunkNode)
	if !ok || len(body.Nodes) != 2 {
		t.Fatalf("body: %#v", repeatNode.Body)
	}
}

func TestParseNestedBlocks(t *testing.T) {
	chunk := parseSource(t, "true if 2 repeat 1 end end")
	ifNode := chunk.Nodes[1].(*IfNode)
	body, ok := ifNode.Body.(*ChunkNode)
	if !ok || len(body.Nodes) != 2 {
		t.Fatalf("if body: %#v", ifNode.Body)
	}
	if _, ok := body.Nodes[1].(*RepeatNode); !ok {
		t.Fatalf("inner node: %T", body.Nodes[1])
	}
}

func TestParseMacro(t *testing.T) {
	chunk := parseSource(t, "macro pad (str int) swap end")
	macroNode, ok := chunk.Nodes[0].(*MacroNode)
	if !ok {
		t.Fatalf("expected macro node, got %T", chunk.Nodes[0])
	}
	if macroNode.Name != "pad" {
		t.Fatalf("name: %q", macroNode.Name)
	}
	// Parameters read left-to-right as bottom-to-top of the stack, in
	// declared order.
	if len(macroNode.Params) != 2 || macroNode.Params[0] != TypeString || macroNode.Params[1] != TypeInt {
		t.Fatalf("params: %v", macroNode.Params)
	}
	if id, ok := macroNode.Body.(*IDNode); !ok || id.Name != "swap" {
		t.Fatalf("body: %#v", macroNode.Body)
	}
}

func TestParseMacroErrors(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"macro", "expected identifier, got end of input"},
		{"macro 1 (int) end", "expected identifier, got int"},
		{"macro f", "expected parameter list, got end of input"},
		{"macro f 1 end", "expected parameter list, got int"},
		{"macro f (widget) end", `unknown type "widget"`},
		{"macro f (int) 1", "unclosed macro block"},
	}
	for _, tc := range cases {
		err := parseError(t, tc.source)
		if !strings.Contains(err.Message, tc.want) {
			t.Fatalf("parse %q: got %q, want substring %q", tc.source, err.Message, tc.want)
		}
	}
}

func TestParseUnclosedBlocks(t *testing.T) {
	if err := parseError(t, "true if 1"); !strings.Contains(err.Message, "unclosed if block") {
		t.Fatalf("if: %q", err.Message)
	}
	if err := parseError(t, "3 repeat"); !strings.Contains(err.Message, "unclosed repeat block") {
		t.Fatalf("repeat: %q", err.Message)
	}
}

func TestParseStrayKeywords(t *testing.T) {
	if err := parseError(t, "1 end"); !strings.Contains(err.Message, "unexpected end") {
		t.Fatalf("end: %q", err.Message)
	}
	if err := parseError(t, "else"); !strings.Contains(err.Message, "unexpected else") {
		t.Fatalf("else: %q", err.Message)
	}
	if err := parseError(t, "true if 1 else 2 else 3 end"); !strings.Contains(err.Message, "unexpected else") {
		t.Fatalf("double else: %q", err.Message)
	}
}

func TestParseBlockPositionsCoverEnd(t *testing.T) {
	source := "true if 1 end"
	chunk := parseSource(t, source)
	ifNode := chunk.Nodes[1].(*IfNode)
	pos := ifNode.Pos()
	if pos.StartOffset != 5 {
		t.Fatalf("start offset: %+v", pos)
	}
	if pos.EndOffset != len(source) {
		t.Fatalf("end offset: %+v", pos)
	}
	if root := chunk.Pos(); root.StartOffset != 0 || root.EndOffset != len(source) {
		t.Fatalf("root position: %+v", root)
	}
}
