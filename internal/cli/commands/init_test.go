package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		force     bool
		wantErr   bool
		wantFiles []string
	}{
		{
			name: "init empty directory",
			wantFiles: []string{
				"strikegen.yaml",
				".gitignore",
				filepath.Join("homebrew", "example.yaml"),
			},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "strikegen.yaml"), []byte("existing"), 0600)
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "strikegen.yaml"), []byte("existing"), 0600)
			},
			force: true,
			wantFiles: []string{
				"strikegen.yaml",
				".gitignore",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			args := []string{dir}
			if tt.force {
				args = append(args, "--force")
			}
			cmd.SetArgs(args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, statErr := os.Stat(filepath.Join(dir, f))
				assert.NoError(t, statErr, "expected %s to exist", f)
			}
		})
	}
}

func TestInitOverwritesWithForce(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "strikegen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("old"), 0600))

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{dir, "--force"})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "homebrew_dir", "config should be replaced by the template")
}
