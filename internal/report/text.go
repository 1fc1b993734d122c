package report

import (
	"io"
	"strconv"
	"strings"
)

// ANSI color codes for output highlighting
const (
	Reset   = "\033[0m"
	Green   = "\033[32m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Bold    = "\033[1m"
)

// TextFormatter writes one line per item in a grep-like layout:
// path:line:character:label (kind)
type TextFormatter struct {
	writer io.Writer
	config Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer, config Config) *TextFormatter {
	return &TextFormatter{writer: w, config: config}
}

func (f *TextFormatter) Write(result Result) error {
	for _, item := range result.Items {
		if err := f.writeItem(result, item); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) writeItem(result Result, item Item) error {
	var line strings.Builder

	if f.config.ShowFilenames && result.Path != "" {
		line.WriteString(f.colorize(result.Path, Magenta))
		line.WriteString(":")
	}

	pos := item.Position
	if pos == nil {
		pos = result.Position
	}
	if pos != nil {
		line.WriteString(f.colorize(strconv.FormatUint(uint64(pos.Line), 10), Green))
		line.WriteString(":")
		line.WriteString(f.colorize(strconv.FormatUint(uint64(pos.Character), 10), Green))
		line.WriteString(":")
	}

	line.WriteString(f.colorize(item.Label, Bold))
	if item.Kind != "" {
		line.WriteString(" (")
		line.WriteString(f.colorize(item.Kind, Cyan))
		line.WriteString(")")
	}
	line.WriteString("\n")

	_, err := io.WriteString(f.writer, line.String())
	return err
}

func (f *TextFormatter) colorize(text, color string) string {
	if !f.config.ShowColors || text == "" {
		return text
	}
	return color + text + Reset
}
