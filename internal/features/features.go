// Package features implements completion and go-to-definition on top of
// the analysis core. Results are plain values; shaping them into protocol
// messages is left to the server.
package features

import (
	"github.com/lets-cli/lets-ls/internal/analysis"
	"github.com/lets-cli/lets-ls/internal/parser"
)

// Analyzer is the part of the analysis core the handlers use
type Analyzer interface {
	Classify(text string, pos parser.Position) (analysis.PositionContext, error)
	ListCommands(text string) ([]analysis.Command, error)
	EnclosingCommand(text string, pos parser.Position) (analysis.Command, bool, error)
	MixinFilename(text string, pos parser.Position) (string, bool, error)
	ListMixins(text string) ([]string, error)
}

// Request identifies a cursor position in a document snapshot.
// Path is the document's filesystem path, empty when it has none.
type Request struct {
	Path     string
	Text     string
	Position parser.Position
}
