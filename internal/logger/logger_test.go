package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	attached := With("request_id", "abc-123")

	ctx := WithContext(context.Background(), attached)

	got := FromContext(ctx)
	assert.Same(t, attached, got)
}

func TestFromContext_FallsBackToBase(t *testing.T) {
	got := FromContext(context.Background())
	require.NotNil(t, got)
	assert.Same(t, base, got)
}

func TestFromContext_NilContext(t *testing.T) {
	got := FromContext(nil) //nolint:staticcheck // nil context is the case under test
	require.NotNil(t, got)
	assert.Same(t, base, got)
}
