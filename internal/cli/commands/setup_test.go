package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/cli/config"
	"github.com/dustinanglin/StrikeGen/internal/cli/output"
)

func TestNewCommandContextWithoutStore_UsesContextRenderer(t *testing.T) {
	config.ResetConfig()
	t.Setenv("STRIKEGEN_HOMEBREW_DIR", filepath.Join(t.TempDir(), "homebrew"))

	r := output.NewRenderer(new(bytes.Buffer), new(bytes.Buffer), output.ModeJSON)
	cmd := &cobra.Command{}
	cmd.SetContext(output.NewContext(context.Background(), r))

	cmdCtx, err := NewCommandContextWithoutStore(cmd)
	require.NoError(t, err)
	assert.Same(t, r, cmdCtx.Renderer, "the renderer the root command stored must be reused")
}

func TestNewCommandContextWithoutStore_BuildsRendererWhenAbsent(t *testing.T) {
	config.ResetConfig()
	t.Setenv("STRIKEGEN_HOMEBREW_DIR", filepath.Join(t.TempDir(), "homebrew"))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	cmdCtx, err := NewCommandContextWithoutStore(cmd)
	require.NoError(t, err)
	require.NotNil(t, cmdCtx.Renderer)
}
