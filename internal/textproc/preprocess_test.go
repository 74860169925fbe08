package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "collapses whitespace runs",
			input:    "a   b\t\tc",
			expected: "a b c",
		},
		{
			name:     "normalizes CRLF to LF",
			input:    "line one\r\nline two",
			expected: "line one\nline two",
		},
		{
			name:     "collapses blank line runs to one blank line",
			input:    "para one\n\n\n\n\npara two",
			expected: "para one\n\npara two",
		},
		{
			name:     "preserves single paragraph break",
			input:    "para one\n\npara two",
			expected: "para one\n\npara two",
		},
		{
			name:     "strips control characters",
			input:    "hel\x00lo\x07 wor\x1fld",
			expected: "hello world",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  \n\ncontent\n\n  ",
			expected: "content",
		},
		{
			name:     "blank lines with trailing spaces still collapse",
			input:    "a\n   \n\t\nb",
			expected: "a\n\nb",
		},
		{
			name:     "keeps tabs as single spaces not newlines",
			input:    "first\tsecond",
			expected: "first second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preprocess(tt.input))
		})
	}
}

func TestPreprocessIdempotent(t *testing.T) {
	input := "TOPICS: Damage Control\n\npara one with   spaces\r\n\r\n\r\npara two"
	once := Preprocess(input)
	assert.Equal(t, once, Preprocess(once))
}
