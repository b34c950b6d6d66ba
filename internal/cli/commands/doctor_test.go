package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/cli/config"
	"github.com/dustinanglin/StrikeGen/internal/store"
)

// setupTestStore points the command environment at a temp store and seeds it.
func setupTestStore(t *testing.T, seed map[string]map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.db")

	config.ResetConfig()
	t.Setenv("STRIKEGEN_STORE_PATH", path)
	t.Setenv("STRIKEGEN_HOMEBREW_DIR", filepath.Join(dir, "homebrew"))
	t.Setenv("STRIKEGEN_OUTPUT", "json")

	st := store.NewSQLiteStore()
	require.NoError(t, st.Open(path))
	require.NoError(t, st.Migrate())
	for name, responses := range seed {
		_, err := st.Create(context.Background(), name, responses)
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())
	return path
}

func TestDoctor_ReportsMissingAnswers(t *testing.T) {
	setupTestStore(t, map[string]map[string]string{
		"Brambles": {
			"name":  "Brambles",
			"level": "3",
			// background, origin, class, role unanswered
		},
	})

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	var reports []CharacterReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Brambles", reports[0].Name)
	assert.NotEmpty(t, reports[0].Issues)
}

func TestDoctor_EmptyStore(t *testing.T) {
	setupTestStore(t, nil)

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	var reports []CharacterReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	assert.Empty(t, reports)
}
