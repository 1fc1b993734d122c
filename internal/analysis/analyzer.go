// Package analysis classifies cursor positions in lets configuration
// documents and extracts the names reachable from them.
//
// Every call parses the text it is given; nothing is cached between calls.
// An Analyzer only holds compiled queries, which are read-only, so it is
// safe for concurrent use.
package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lets-cli/lets-ls/internal/parser"
)

// Analyzer answers position and symbol questions about a document
type Analyzer struct {
	logger   *slog.Logger
	mixins   *parser.Query
	depends  *parser.Query
	commands *parser.Query
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used for debug tracing
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New loads the grammar and compiles the queries. An error here is a
// configuration problem and should abort startup.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}

	queries := []struct {
		name   string
		source string
		target **parser.Query
	}{
		{keyMixins, mixinsQuery, &a.mixins},
		{keyDepends, dependsQuery, &a.depends},
		{keyCommands, commandsQuery, &a.commands},
	}

	for _, q := range queries {
		compiled, err := parser.CompileQuery(q.name, q.source)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
		}
		*q.target = compiled
	}

	return a, nil
}

// Close releases the compiled queries
func (a *Analyzer) Close() {
	for _, q := range []*parser.Query{a.mixins, a.depends, a.commands} {
		if q != nil {
			q.Close()
		}
	}
}

// parse builds the tree for one call. The caller closes it.
func (a *Analyzer) parse(text string) (*parser.Tree, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	if tree.HasErrors() && a.logger.Enabled(context.Background(), slog.LevelDebug) {
		a.logger.Debug("document has syntax errors", "errors", len(tree.Errors()))
	}
	return tree, nil
}
