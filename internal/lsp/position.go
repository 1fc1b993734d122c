package lsp

import (
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/lets-cli/lets-ls/internal/parser"
)

// toParserPosition converts an LSP position, whose character counts UTF-16
// code units, into the UTF-8 byte column the syntax tree uses. A character
// past the end of the line keeps its overshoot.
func toParserPosition(text string, pos protocol.Position) parser.Position {
	line := lineText(text, pos.Line)

	var units uint32
	for offset, r := range line {
		if units >= pos.Character {
			return parser.Position{Line: uint(pos.Line), Character: uint(offset)}
		}
		units += uint32(utf16.RuneLen(r))
	}

	column := uint(len(line))
	if pos.Character > units {
		column += uint(pos.Character - units)
	}
	return parser.Position{Line: uint(pos.Line), Character: column}
}

// lineText returns the given zero-based line without its terminator
func lineText(text string, line uint32) string {
	start := 0
	for i := uint32(0); i < line; i++ {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			return ""
		}
		start += idx + 1
	}

	rest := text[start:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSuffix(rest, "\r")
}
