package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes results as a YAML document stream
type YAMLFormatter struct {
	encoder *yaml.Encoder
}

func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	return &YAMLFormatter{encoder: encoder}
}

func (f *YAMLFormatter) Write(result Result) error {
	if err := f.encoder.Encode(normalize(result)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}

// Close terminates the document stream
func (f *YAMLFormatter) Close() error {
	return f.encoder.Close()
}
