// Package parser builds tree-sitter syntax trees for lets configuration
// documents and evaluates structural queries against them.
package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tree is a parsed document. Nodes obtained from a Tree borrow from it and
// must not be used after Close.
type Tree struct {
	raw    *sitter.Tree
	source []byte
}

// Parse parses text with a parser created for this call only.
// Malformed input still produces a tree; ERROR and MISSING nodes mark the
// broken parts.
func Parse(text string) (*Tree, error) {
	lang, err := Language()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLanguageLoad, err)
	}

	source := []byte(text)
	raw := parser.Parse(source, nil)
	if raw == nil {
		return nil, ErrParse
	}

	return &Tree{raw: raw, source: source}, nil
}

// Root returns the root node of the tree
func (t *Tree) Root() *sitter.Node {
	if t == nil || t.raw == nil {
		return nil
	}
	return t.raw.RootNode()
}

// Source returns the bytes the tree was parsed from
func (t *Tree) Source() []byte {
	return t.source
}

// Text returns the source text covered by node. Out of range nodes yield "".
func (t *Tree) Text(node *sitter.Node) string {
	if t == nil || node == nil {
		return ""
	}

	start := node.StartByte()
	end := node.EndByte()

	if start >= uint(len(t.source)) || end > uint(len(t.source)) || start >= end {
		return ""
	}

	return string(t.source[start:end])
}

// Close releases the tree
func (t *Tree) Close() {
	if t != nil && t.raw != nil {
		t.raw.Close()
		t.raw = nil
	}
}

// HasErrors reports whether the grammar had to recover from a syntax error
func (t *Tree) HasErrors() bool {
	root := t.Root()
	return root != nil && root.HasError()
}

// Errors lists the ERROR and MISSING nodes of the tree in document order
func (t *Tree) Errors() []ParseError {
	var errors []ParseError

	root := t.Root()
	if root == nil || !root.HasError() {
		return errors
	}

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		switch {
		case node.IsMissing():
			errors = append(errors, newParseError(node, fmt.Sprintf("missing %s", node.Kind())))
			return
		case node.IsError():
			errors = append(errors, newParseError(node, "syntax error"))
			return
		case !node.HasError():
			return
		}

		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil {
				walk(child)
			}
		}
	}

	walk(root)
	return errors
}

func newParseError(node *sitter.Node, message string) ParseError {
	startPoint := node.StartPosition()
	return ParseError{
		Line:    int(startPoint.Row) + 1,
		Column:  int(startPoint.Column) + 1,
		Kind:    node.Kind(),
		Message: message,
	}
}
