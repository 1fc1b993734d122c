package report

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes one JSON document per result
type JSONFormatter struct {
	encoder *json.Encoder
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &JSONFormatter{encoder: encoder}
}

func (f *JSONFormatter) Write(result Result) error {
	return f.encoder.Encode(normalize(result))
}

// normalize keeps empty item lists as [] rather than null
func normalize(result Result) Result {
	if result.Items == nil {
		result.Items = []Item{}
	}
	return result
}
