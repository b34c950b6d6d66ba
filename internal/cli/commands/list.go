package commands

import (
	"fmt"
	"time"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/dustinanglin/StrikeGen/internal/store"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved characters",
		Long: `List all characters in the store with their level and last update time.

Output adapts to environment:
  - Terminal: Styled table output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all characters
  strikegen list

  # List characters as JSON
  strikegen list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

// characterRow is one list entry with values derived from the stored
// responses.
type characterRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, err := cmdCtx.Store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}

	rows := make([]characterRow, 0, len(summaries))
	for _, s := range summaries {
		row := characterRow{ID: s.ID, Name: s.Name, UpdatedAt: s.UpdatedAt, Level: 1}
		if rec, err := cmdCtx.Store.Get(cmd.Context(), s.ID); err == nil {
			row.Level = character.FromResponses(rec.Responses).Level()
		}
		rows = append(rows, row)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rows)
	case output.ModeMarkdown:
		return listMarkdown(r, rows)
	default:
		return listText(r, rows)
	}
}

func listText(r *output.Renderer, rows []characterRow) error {
	r.Header(1, fmt.Sprintf("Characters (%d total)", len(rows)))

	if len(rows) == 0 {
		r.Println("No characters yet. Run 'strikegen new' to create one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Level", "Updated", "ID"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Name, row.Level, row.UpdatedAt.Format("2006-01-02 15:04"), row.ID})
	}
	t.Render()
	return nil
}

func listMarkdown(r *output.Renderer, rows []characterRow) error {
	r.Header(1, fmt.Sprintf("Characters (%d total)", len(rows)))
	r.Println("")

	if len(rows) == 0 {
		r.Println("No characters yet.")
		return nil
	}

	r.Println("| Name | Level | Updated | ID |")
	r.Println("| --- | --- | --- | --- |")
	for _, row := range rows {
		r.Printf("| %s | %d | %s | %s |\n", row.Name, row.Level, row.UpdatedAt.Format(time.RFC3339), row.ID)
	}
	return nil
}

// findCharacter resolves a character reference (id or name) against the store.
func findCharacter(cmd *cobra.Command, st *store.SQLiteStore, ref string) (*store.Record, error) {
	rec, err := st.Find(cmd.Context(), ref)
	if err != nil {
		return nil, fmt.Errorf("find character %q: %w", ref, err)
	}
	return rec, nil
}
