package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok, "empty context carries no renderer")

	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeJSON)
	ctx := NewContext(context.Background(), r)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, r, got)
}
