package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/output"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	data := map[string]string{"session": "alpha"}
	err := f.Print(data)
	require.NoError(t, err)

	var result map[string]string
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "alpha", result["session"])
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Print("hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", buf.String())
}

func TestFormatter_Printf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Printf("share %d of %d\n", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "share 1 of 5\n", buf.String())
}

func TestFormatter_Println(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Println("01:dead")
	require.NoError(t, err)
	assert.Equal(t, "01:dead\n", buf.String())
}

func TestFormatter_IsJSON(t *testing.T) {
	t.Parallel()
	jsonFmt := output.NewFormatter(output.FormatJSON, nil)
	textFmt := output.NewFormatter(output.FormatText, nil)

	assert.True(t, jsonFmt.IsJSON())
	assert.False(t, textFmt.IsJSON())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{"text", output.FormatText},
		{"TEXT", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"invalid", output.FormatAuto},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := output.ParseFormat(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestDetectFormat_NonTTY(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
}
