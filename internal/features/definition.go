package features

import (
	"fmt"
	"log/slog"

	"github.com/lets-cli/lets-ls/internal/analysis"
)

// Resolver turns a mixin name into the path of an existing file
type Resolver interface {
	Resolve(docPath, name string) (string, bool)
}

// Location points at a line of a file on disk
type Location struct {
	Path string `json:"path" yaml:"path"`
	Line uint   `json:"line" yaml:"line"`
}

// Definer answers go-to-definition requests
type Definer struct {
	analyzer Analyzer
	resolver Resolver
	logger   *slog.Logger
}

// NewDefiner creates a definer
func NewDefiner(analyzer Analyzer, resolver Resolver, logger *slog.Logger) *Definer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Definer{analyzer: analyzer, resolver: resolver, logger: logger}
}

// Definition jumps from a mixins entry to the top of the mixin file.
// Anything else, or a file that cannot be resolved, is not found.
func (d *Definer) Definition(req Request) (Location, bool, error) {
	context, err := d.analyzer.Classify(req.Text, req.Position)
	if err != nil {
		return Location{}, false, fmt.Errorf("failed to classify position: %w", err)
	}
	if context != analysis.MixinEntry {
		return Location{}, false, nil
	}

	filename, found, err := d.analyzer.MixinFilename(req.Text, req.Position)
	if err != nil {
		return Location{}, false, fmt.Errorf("failed to extract mixin filename: %w", err)
	}
	if !found {
		return Location{}, false, nil
	}

	path, ok := d.resolver.Resolve(req.Path, unquote(filename))
	if !ok {
		d.logger.Debug("mixin not resolved", "document", req.Path, "mixin", filename)
		return Location{}, false, nil
	}

	return Location{Path: path, Line: 0}, true, nil
}
