package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" table ", FormatTable, false},
		{"xml", "", true},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)

	require.NoError(t, p.Print(map[string]string{"name": "web-1"}))
	assert.JSONEq(t, `{"name": "web-1"}`, buf.String())
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML)

	require.NoError(t, p.Print(map[string]string{"name": "web-1"}))
	assert.Equal(t, "name: web-1\n", buf.String())
}

func TestPrinter_Table(t *testing.T) {
	data := NewTableData("NAME", "STATUS")
	data.AddRow("web-1", "ok")

	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable)

	require.NoError(t, p.Print(data))
	assert.Contains(t, buf.String(), "web-1")
}

func TestPrinter_TableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable)

	// Data that is not a TableRenderer is emitted as JSON.
	require.NoError(t, p.Print(map[string]int{"attempts": 5}))
	assert.JSONEq(t, `{"attempts": 5}`, buf.String())
}

func TestPrintYAML_Indentation(t *testing.T) {
	var buf bytes.Buffer

	type nested struct {
		Prompt struct {
			Attempts int `yaml:"attempts"`
		} `yaml:"prompt"`
	}
	var v nested
	v.Prompt.Attempts = 5

	require.NoError(t, PrintYAML(&buf, v))
	assert.Equal(t, "prompt:\n  attempts: 5\n", buf.String())
}
