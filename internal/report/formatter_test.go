package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() Result {
	return Result{
		Query:    "complete",
		Path:     "lets.yaml",
		Position: &Position{Line: 7, Character: 15},
		Items: []Item{
			{Label: "build", Kind: "command"},
			{Label: "<lint>", Kind: "command"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format Format
		want   interface{}
	}{
		{FormatText, &TextFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{"unknown", &TextFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.IsType(t, tt.want, NewFormatter(&buf, Config{Format: tt.format}))
		})
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		result Result
		want   string
	}{
		{
			name:   "with filenames",
			config: Config{ShowFilenames: true},
			result: sampleResult(),
			want:   "lets.yaml:7:15:build (command)\nlets.yaml:7:15:<lint> (command)\n",
		},
		{
			name:   "without filenames",
			result: sampleResult(),
			want:   "7:15:build (command)\n7:15:<lint> (command)\n",
		},
		{
			name:   "item position wins",
			config: Config{ShowFilenames: true},
			result: Result{
				Path:  "lets.yaml",
				Items: []Item{{Label: "missing \":\"", Kind: "MISSING", Position: &Position{Line: 2, Character: 4}}},
			},
			want: "lets.yaml:2:4:missing \":\" (MISSING)\n",
		},
		{
			name:   "no position no kind",
			result: Result{Items: []Item{{Label: "test"}}},
			want:   "test\n",
		},
		{
			name:   "no items",
			result: Result{Path: "lets.yaml"},
			want:   "",
		},
		{
			name:   "colors",
			config: Config{ShowColors: true},
			result: Result{Items: []Item{{Label: "test", Kind: "command"}}},
			want:   Bold + "test" + Reset + " (" + Cyan + "command" + Reset + ")\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewTextFormatter(&buf, tt.config).Write(tt.result))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Write(sampleResult()))

	assert.Contains(t, buf.String(), `"<lint>"`, "HTML characters must not be escaped")

	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResult(), decoded)
}

func TestJSONFormatter_EmptyItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Write(Result{Query: "commands", Path: "lets.yaml"}))
	assert.Contains(t, buf.String(), `"items":[]`)
	assert.NotContains(t, buf.String(), `"position"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewYAMLFormatter(&buf)
	require.NoError(t, formatter.Write(sampleResult()))
	require.NoError(t, formatter.Close())

	var decoded Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResult(), decoded)
	assert.Contains(t, buf.String(), "query: complete")
}
