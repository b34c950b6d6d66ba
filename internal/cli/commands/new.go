package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
	"github.com/dustinanglin/StrikeGen/internal/tui"
)

// NewNewCommand creates the new command.
func NewNewCommand() *cobra.Command {
	var watch bool
	var blank string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a new character interactively",
		Long: `Start the interactive character builder.

The builder walks through the questions one at a time. Questions adapt to
the answers: a complex background opens its skill choices, a class
unlocks kits and feats, and reaching level 5 opens a second kit slot.
The finished character is saved to the store.

With --watch, homebrew rulebook changes are picked up while the builder
is running.`,
		Example: `  # Interactive builder
  strikegen new

  # Pick up homebrew edits live
  strikegen new --watch

  # Create an empty character without the TUI
  strikegen new --blank Brambles`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if blank != "" {
				return runNewBlank(cmd, blank)
			}
			return runWizard(cmd, character.New(), "", watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload homebrew content on change")
	cmd.Flags().StringVar(&blank, "blank", "", "Create an empty character with this name and exit")

	return cmd
}

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "edit <character>",
		Short: "Edit a saved character interactively",
		Long: `Reopen a saved character in the interactive builder.

Saved answers are kept; the builder starts at the first unanswered
question. Saving overwrites the stored character.`,
		Example: `  strikegen edit Brambles`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload homebrew content on change")

	return cmd
}

func runNewBlank(cmd *cobra.Command, name string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ch := character.New()
	if err := builder.Apply(ch, cmdCtx.Rulebook, builder.KeyName, name); err != nil {
		return err
	}

	rec, err := cmdCtx.Store.Create(cmd.Context(), name, ch.Responses())
	if err != nil {
		return fmt.Errorf("save character: %w", err)
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Created %s (%s)", name, rec.ID))
	return nil
}

func runEdit(cmd *cobra.Command, ref string, watch bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	rec, err := findCharacter(cmd, cmdCtx.Store, ref)
	cleanup()
	if err != nil {
		return err
	}

	return runWizard(cmd, character.FromResponses(rec.Responses), rec.ID, watch)
}

// runWizard opens the TUI for a character and saves on demand. When id is
// empty a new record is created on the first save.
func runWizard(cmd *cobra.Command, ch *character.Character, id string, watch bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	save := func(c *character.Character) error {
		name, _ := c.Get(builder.KeyName)
		if id == "" {
			rec, err := cmdCtx.Store.Create(cmd.Context(), name, c.Responses())
			if err != nil {
				return err
			}
			id = rec.ID
			return nil
		}
		return cmdCtx.Store.Update(cmd.Context(), id, name, c.Responses())
	}

	p := tui.NewProgram(ch, cmdCtx.Rulebook, save)

	// Watch mode feeds homebrew reloads into the running wizard.
	var cancelWatch context.CancelFunc
	if watch {
		w, err := rulebook.NewWatcher(cmdCtx.Cfg.HomebrewDir, cmdCtx.Logger)
		if err != nil {
			cmdCtx.Logger.Warn("homebrew watch unavailable", "error", err)
		} else {
			var ctx context.Context
			ctx, cancelWatch = context.WithCancel(cmd.Context())
			w.OnReload(func(rb *rulebook.Rulebook) {
				p.Send(tui.RulebookReloadedMsg{Rulebook: rb})
			})
			go func() { _ = w.Watch(ctx) }()
		}
	}
	if cancelWatch != nil {
		defer cancelWatch()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	return nil
}
