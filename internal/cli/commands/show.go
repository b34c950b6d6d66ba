package commands

import (
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/dustinanglin/StrikeGen/internal/sheet"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <character>",
		Short: "Show a character sheet",
		Long: `Render the full character sheet for a saved character.

The character may be referenced by id or by name. Derived values (skills,
complications, tricks, kit powers, wealth) are computed fresh from the
current rulebook, so homebrew changes show up immediately.`,
		Example: `  # Show by name
  strikegen show Brambles

  # Show as JSON for scripting
  strikegen show Brambles --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}

	return cmd
}

func runShow(cmd *cobra.Command, ref string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := findCharacter(cmd, cmdCtx.Store, ref)
	if err != nil {
		return err
	}

	ch := character.FromResponses(rec.Responses)
	s := sheet.Build(ch, cmdCtx.Rulebook)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return sheet.RenderJSON(r.Out(), s)
	case output.ModeMarkdown:
		return sheet.RenderMarkdown(r.Out(), s)
	default:
		return sheet.RenderText(r.Out(), s)
	}
}
