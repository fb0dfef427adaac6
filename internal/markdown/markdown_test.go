package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "single line",
			input:    "Adds two numbers.",
			expected: "Adds two numbers.",
		},
		{
			name:     "leading stars stripped",
			input:    "\n\t * Adds two numbers.\n\t * Returns the sum.\n",
			expected: "Adds two numbers.\nReturns the sum.",
		},
		{
			name:     "param tag formatted",
			input:    "Runs the callback.\n@param cb the callback to run",
			expected: "Runs the callback.\n*@param* `cb` the callback to run",
		},
		{
			name:     "common indent removed",
			input:    "    first\n    second",
			expected: "first\nsecond",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n  hello  \n  ",
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
