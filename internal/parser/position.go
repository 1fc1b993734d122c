package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Position is a zero-based cursor coordinate. Character counts UTF-8 bytes
// from the start of the line, the unit tree-sitter reports columns in.
type Position struct {
	Line      uint `json:"line" yaml:"line"`
	Character uint `json:"character" yaml:"character"`
}

// WithinNode reports whether pos lies between the node's start and end
// points, both inclusive.
func WithinNode(node *sitter.Node, pos Position) bool {
	if node == nil {
		return false
	}
	return WithinPoints(node.StartPosition(), node.EndPosition(), pos)
}

// WithinPoints compares row first, then column. On rows strictly between
// start and end any column matches.
func WithinPoints(start, end sitter.Point, pos Position) bool {
	if pos.Line < start.Row || pos.Line > end.Row {
		return false
	}

	if pos.Line == start.Row && pos.Character < start.Column {
		return false
	}

	if pos.Line == end.Row && pos.Character > end.Column {
		return false
	}

	return true
}

// SameLine reports whether node starts and ends on pos.Line. The column is
// ignored so that trailing whitespace after a one-line item still hits it.
func SameLine(node *sitter.Node, pos Position) bool {
	if node == nil {
		return false
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return pos.Line == start.Row && pos.Line == end.Row
}
