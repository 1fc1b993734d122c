package features

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lets-cli/lets-ls/internal/analysis"
)

// CandidateKind tells what a completion candidate names
type CandidateKind int

const (
	KindCommand CandidateKind = iota + 1
	KindFile
)

func (k CandidateKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output
func (k CandidateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Candidate is a single completion proposal
type Candidate struct {
	Label string        `json:"label" yaml:"label"`
	Kind  CandidateKind `json:"kind" yaml:"kind"`
}

// FileLister lists candidate mixin files below a directory, as
// slash-separated paths relative to it
type FileLister interface {
	List(root string) ([]string, error)
}

// Completer produces completion candidates
type Completer struct {
	analyzer Analyzer
	files    FileLister
	logger   *slog.Logger
}

// NewCompleter creates a completer. files may be nil, in which case mixin
// entries get no candidates.
func NewCompleter(analyzer Analyzer, files FileLister, logger *slog.Logger) *Completer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Completer{analyzer: analyzer, files: files, logger: logger}
}

// Complete returns the candidates for req. Positions outside a depends or
// mixins list get none.
func (c *Completer) Complete(req Request) ([]Candidate, error) {
	context, err := c.analyzer.Classify(req.Text, req.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to classify position: %w", err)
	}

	switch context {
	case analysis.DependsEntry:
		return c.completeDepends(req)
	case analysis.MixinEntry:
		return c.completeMixins(req)
	default:
		return nil, nil
	}
}

func (c *Completer) completeDepends(req Request) ([]Candidate, error) {
	commands, err := c.analyzer.ListCommands(req.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}

	current, found, err := c.analyzer.EnclosingCommand(req.Text, req.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to find enclosing command: %w", err)
	}
	if !found {
		c.logger.Debug("depends list outside any command body", "line", req.Position.Line)
	}

	return DependsCandidates(current, commands), nil
}

// DependsCandidates offers every command except current. A command cannot
// depend on itself this way; transitive cycles are not checked.
func DependsCandidates(current analysis.Command, commands []analysis.Command) []Candidate {
	var candidates []Candidate
	for _, cmd := range commands {
		if current.Name != "" && cmd.Name == current.Name {
			continue
		}
		candidates = append(candidates, Candidate{Label: cmd.Name, Kind: KindCommand})
	}
	return candidates
}

// completeMixins offers YAML files next to the document that are not the
// document itself and are not included yet
func (c *Completer) completeMixins(req Request) ([]Candidate, error) {
	if c.files == nil || req.Path == "" {
		return nil, nil
	}

	dir := filepath.Dir(req.Path)
	files, err := c.files.List(dir)
	if err != nil {
		c.logger.Warn("failed to list mixin files", "dir", dir, "error", err)
		return nil, nil
	}

	included, err := c.analyzer.ListMixins(req.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to list mixins: %w", err)
	}

	skip := map[string]bool{filepath.ToSlash(filepath.Base(req.Path)): true}
	for _, mixin := range included {
		skip[normalizeMixin(mixin)] = true
	}

	var candidates []Candidate
	for _, file := range files {
		if skip[file] {
			continue
		}
		candidates = append(candidates, Candidate{Label: file, Kind: KindFile})
	}
	return candidates, nil
}

// normalizeMixin strips quotes and a leading "./" so a written entry can be
// compared with a listed path
func normalizeMixin(name string) string {
	name = unquote(name)
	name = filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
	return strings.TrimPrefix(name, "./")
}

func unquote(name string) string {
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '"' || first == '\'') && first == last {
			return name[1 : len(name)-1]
		}
	}
	return name
}
