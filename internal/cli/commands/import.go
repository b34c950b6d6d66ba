package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a character from a JSON export",
		Long: `Import a character from a JSON file into the store.

The file may be a full sheet export (the "responses" section is used) or
a flat JSON object of responses. Responses that no longer match the
current rulebook are dropped, and any remaining gaps are reported.`,
		Example: `  strikegen import sheets/brambles.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0])
		},
	}

	return cmd
}

func runImport(cmd *cobra.Command, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	responses, err := readResponses(path)
	if err != nil {
		return err
	}

	ch := character.FromResponses(responses)
	// Drop choices the current rulebook no longer offers
	builder.Reconcile(ch, cmdCtx.Rulebook)

	name, _ := ch.Get(builder.KeyName)
	if name == "" {
		return fmt.Errorf("import file has no character name")
	}

	rec, err := cmdCtx.Store.Create(cmd.Context(), name, ch.Responses())
	if err != nil {
		return fmt.Errorf("save character: %w", err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Imported %s (%s)", name, rec.ID))
	warnIssues(cmdCtx, ch)
	return nil
}

// readResponses extracts the raw responses from an import file. Both full
// sheet exports and flat response maps are accepted.
func readResponses(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var wrapped struct {
		Responses map[string]string `json:"responses"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Responses) > 0 {
		return wrapped.Responses, nil
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil || len(flat) == 0 {
		return nil, fmt.Errorf("%s: not a character export", path)
	}
	return flat, nil
}
