package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	tests := []struct {
		name           string
		limit, offset  int
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults applied", 0, 0, 10, 0},
		{"negative limit", -5, 0, 10, 0},
		{"limit capped at max", 500, 0, 100, 0},
		{"negative offset clamped", 20, -3, 20, 0},
		{"values within range kept", 25, 50, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams(tt.limit, tt.offset, 10, 100)

			assert.Equal(t, tt.expectedLimit, params.Limit)
			assert.Equal(t, tt.expectedOffset, params.Offset)
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name            string
		params          Params
		total           int
		expectedHasMore bool
	}{
		{"more pages remain", Params{Limit: 10, Offset: 0}, 25, true},
		{"exactly at end", Params{Limit: 10, Offset: 15}, 25, false},
		{"last partial page", Params{Limit: 10, Offset: 20}, 25, false},
		{"empty result set", Params{Limit: 10, Offset: 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.params, tt.total)

			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.expectedHasMore, meta.HasMore)
		})
	}
}
