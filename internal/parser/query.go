package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Capture binds a capture name of a query pattern to the matched node
type Capture struct {
	Name string
	Node sitter.Node
}

// Match is one match of a query, captures in the order tree-sitter reports them
type Match struct {
	Captures []Capture
}

// Node returns the first node captured under name
func (m Match) Node(name string) (*sitter.Node, bool) {
	for i := range m.Captures {
		if m.Captures[i].Name == name {
			return &m.Captures[i].Node, true
		}
	}
	return nil, false
}

// Nodes returns every node captured under name
func (m Match) Nodes(name string) []*sitter.Node {
	var nodes []*sitter.Node
	for i := range m.Captures {
		if m.Captures[i].Name == name {
			nodes = append(nodes, &m.Captures[i].Node)
		}
	}
	return nodes
}

// Query is a compiled structural query. It is immutable once compiled and
// may be evaluated concurrently against different trees.
type Query struct {
	name  string
	raw   *sitter.Query
	names []string
}

// CompileQuery compiles a tree-sitter query string against the YAML grammar
func CompileQuery(name, source string) (*Query, error) {
	lang, err := Language()
	if err != nil {
		return nil, err
	}

	raw, queryErr := sitter.NewQuery(lang, source)
	if queryErr != nil {
		return nil, &QueryError{
			Name:    name,
			Row:     queryErr.Row,
			Column:  queryErr.Column,
			Message: queryErr.Message,
		}
	}

	return &Query{
		name:  name,
		raw:   raw,
		names: raw.CaptureNames(),
	}, nil
}

// Name returns the name the query was compiled under
func (q *Query) Name() string {
	return q.name
}

// CaptureNames returns the capture names declared by the query
func (q *Query) CaptureNames() []string {
	return q.names
}

// Matches evaluates the query over the whole tree. Text predicates such as
// #eq? are applied; nodes in the result borrow from tree.
func (q *Query) Matches(tree *Tree) []Match {
	root := tree.Root()
	if root == nil {
		return nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var result []Match

	matches := cursor.Matches(q.raw, root, tree.source)
	for match := matches.Next(); match != nil; match = matches.Next() {
		m := Match{Captures: make([]Capture, 0, len(match.Captures))}
		for _, capture := range match.Captures {
			m.Captures = append(m.Captures, Capture{
				Name: q.names[capture.Index],
				Node: capture.Node,
			})
		}
		result = append(result, m)
	}

	return result
}

// Close releases the compiled query
func (q *Query) Close() {
	if q != nil && q.raw != nil {
		q.raw.Close()
		q.raw = nil
	}
}
