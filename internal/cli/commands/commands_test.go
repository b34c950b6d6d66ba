// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/store"
)

func TestNewNewCommand(t *testing.T) {
	cmd := NewNewCommand()

	assert.Equal(t, "new", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Verify flags exist (output is a global flag on root, not local)
	flags := []string{"watch", "blank"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewEditCommand(t *testing.T) {
	cmd := NewEditCommand()

	assert.Equal(t, "edit <character>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("watch"), "flag watch should exist")
}

func TestNewSetCommand(t *testing.T) {
	cmd := NewSetCommand()

	assert.Equal(t, "set <character> <key=value>...", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewUnsetCommand(t *testing.T) {
	cmd := NewUnsetCommand()

	assert.Equal(t, "unset <character> <key>...", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewShowCommand(t *testing.T) {
	cmd := NewShowCommand()

	assert.Equal(t, "show <character>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewDeleteCommand(t *testing.T) {
	cmd := NewDeleteCommand()

	assert.Equal(t, "delete <character>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("force"), "flag force should exist")

	// Verify alias exists
	assert.NotEmpty(t, cmd.Aliases, "delete command should have aliases")
	assert.Equal(t, "rm", cmd.Aliases[0])
}

func TestNewExportCommand(t *testing.T) {
	cmd := NewExportCommand()

	assert.Equal(t, "export [character]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"format", "all", "stdout"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewImportCommand(t *testing.T) {
	cmd := NewImportCommand()

	assert.Equal(t, "import <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewRulebookCommand(t *testing.T) {
	cmd := NewRulebookCommand()

	assert.Equal(t, "rulebook", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// One subcommand per entry type
	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"backgrounds", "origins", "classes", "roles", "feats", "kits"} {
		assert.True(t, subs[want], "subcommand %q should exist", want)
	}
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()

	assert.Equal(t, "query [SQL]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"format", "input"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewDoctorCommand(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"Brambles", "markdown", "brambles.md"},
		{"Sir Reginald III", "json", "sir-reginald-iii.json"},
		{"", "markdown", "unnamed.md"},
		{"???", "markdown", "unnamed.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exportFileName(tt.name, tt.format), "name %q", tt.name)
	}
}

func TestExportFileNames_DisambiguatesCollidingNames(t *testing.T) {
	summaries := []store.Summary{
		{ID: "aaaa1111-0000-0000-0000-000000000000", Name: "Brambles"},
		{ID: "bbbb2222-0000-0000-0000-000000000000", Name: "brambles"},
		{ID: "cccc3333-0000-0000-0000-000000000000", Name: "Pike"},
	}

	names := exportFileNames(summaries, "markdown")
	require.Len(t, names, 3)
	assert.Equal(t, "brambles-aaaa1111.md", names[0])
	assert.Equal(t, "brambles-bbbb2222.md", names[1])
	assert.Equal(t, "pike.md", names[2], "a unique name keeps its plain slug")
	assert.NotEqual(t, names[0], names[1])
}
