package lsp

import (
	"testing"

	"go.lsp.dev/protocol"

	"github.com/lets-cli/lets-ls/internal/parser"
)

func TestToParserPosition(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  protocol.Position
		want parser.Position
	}{
		{
			name: "ascii",
			text: "commands:\n  test:\n    depends: [build]",
			pos:  protocol.Position{Line: 2, Character: 15},
			want: parser.Position{Line: 2, Character: 15},
		},
		{
			name: "two byte runes count once",
			text: "# héllo\nkey: x",
			pos:  protocol.Position{Line: 0, Character: 4},
			want: parser.Position{Line: 0, Character: 5},
		},
		{
			name: "surrogate pair counts twice",
			text: "a: \U0001F600 b",
			pos:  protocol.Position{Line: 0, Character: 6},
			want: parser.Position{Line: 0, Character: 8},
		},
		{
			name: "end of line",
			text: "depends:\n  - \nnext: x",
			pos:  protocol.Position{Line: 1, Character: 4},
			want: parser.Position{Line: 1, Character: 4},
		},
		{
			name: "overshoot is kept",
			text: "depends:\n  - \nnext: x",
			pos:  protocol.Position{Line: 1, Character: 10},
			want: parser.Position{Line: 1, Character: 10},
		},
		{
			name: "overshoot after multibyte text",
			text: "é",
			pos:  protocol.Position{Line: 0, Character: 3},
			want: parser.Position{Line: 0, Character: 4},
		},
		{
			name: "line past the end",
			text: "a: b",
			pos:  protocol.Position{Line: 5, Character: 2},
			want: parser.Position{Line: 5, Character: 2},
		},
		{
			name: "crlf line ending",
			text: "a: b\r\nc: d\r\n",
			pos:  protocol.Position{Line: 0, Character: 5},
			want: parser.Position{Line: 0, Character: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toParserPosition(tt.text, tt.pos)
			if got != tt.want {
				t.Errorf("toParserPosition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLineText(t *testing.T) {
	text := "first\r\nsecond\nthird"

	tests := []struct {
		line uint32
		want string
	}{
		{0, "first"},
		{1, "second"},
		{2, "third"},
		{3, ""},
	}

	for _, tt := range tests {
		if got := lineText(text, tt.line); got != tt.want {
			t.Errorf("lineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
