// Package report renders inspect results for people and scripts.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted format names
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
}

// Position is a zero-based line and byte column
type Position struct {
	Line      uint `json:"line" yaml:"line"`
	Character uint `json:"character" yaml:"character"`
}

// Item is one answer of an inspect query. Position overrides the result's
// position when set.
type Item struct {
	Label    string    `json:"label" yaml:"label"`
	Kind     string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`
}

// Result holds everything one inspect query produced for a file
type Result struct {
	Query    string    `json:"query" yaml:"query"`
	Path     string    `json:"path" yaml:"path"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`
	Items    []Item    `json:"items" yaml:"items"`
}

// Config contains configuration for output formatting
type Config struct {
	Format        Format
	ShowFilenames bool
	ShowColors    bool
}

// Formatter writes results
type Formatter interface {
	Write(result Result) error
}

// NewFormatter creates a formatter based on the configuration, defaulting
// to text
func NewFormatter(w io.Writer, config Config) Formatter {
	switch config.Format {
	case FormatJSON:
		return NewJSONFormatter(w)
	case FormatYAML:
		return NewYAMLFormatter(w)
	default:
		return NewTextFormatter(w, config)
	}
}
