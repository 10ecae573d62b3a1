package tours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "paris", "paris"},
		{"mixed case", "Paris", "paris"},
		{"leading and trailing whitespace", "  Paris  ", "paris"},
		{"inner whitespace collapsed", "New   York", "new york"},
		{"tabs and newlines", "\tRio de\nJaneiro ", "rio de janeiro"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestNormalizeKey_EquivalentDestinations(t *testing.T) {
	// every variant a user might type for the same place must map to the
	// same cache key, otherwise the dedupe guarantee breaks
	variants := []string{"Paris", "paris", " PARIS ", "pArIs"}

	for _, v := range variants {
		assert.Equal(t, "paris", NormalizeKey(v))
	}
}
