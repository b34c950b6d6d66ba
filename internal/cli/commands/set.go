package commands

import (
	"fmt"
	"strings"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/spf13/cobra"
)

// NewSetCommand creates the set command.
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <character> <key=value>...",
		Short: "Answer questions on a saved character",
		Long: `Set one or more responses on a saved character.

Only questions currently offered to the character can be answered: a kit
cannot be chosen before a class, and a background skill slot only exists
for complex backgrounds. Changing an answer that other choices depended
on (origin, background, level, class) clears the choices that are no
longer offered.`,
		Example: `  # Pick a background
  strikegen set Brambles background="Caravan Guard"

  # Level up and pick the new feat
  strikegen set Brambles level=4 feat-4="Second Wind"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1:])
		},
	}

	return cmd
}

// NewUnsetCommand creates the unset command.
func NewUnsetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <character> <key>...",
		Short: "Clear optional responses on a saved character",
		Long: `Clear one or more optional responses on a saved character.

Required questions (name, level, background, origin, class, role) cannot
be cleared this way.`,
		Example: `  strikegen unset Brambles kit-2 notes`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnset(cmd, args[0], args[1:])
		},
	}

	return cmd
}

func runSet(cmd *cobra.Command, ref string, pairs []string) error {
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
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		if err := builder.Apply(ch, cmdCtx.Rulebook, key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	name, _ := ch.Get(builder.KeyName)
	if err := cmdCtx.Store.Update(cmd.Context(), rec.ID, name, ch.Responses()); err != nil {
		return fmt.Errorf("save character: %w", err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Updated %s (%d responses)", name, ch.Len()))
	warnIssues(cmdCtx, ch)
	return nil
}

func runUnset(cmd *cobra.Command, ref string, keys []string) error {
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
	for _, key := range keys {
		if err := builder.Unset(ch, cmdCtx.Rulebook, key); err != nil {
			return fmt.Errorf("unset %s: %w", key, err)
		}
	}

	name, _ := ch.Get(builder.KeyName)
	if err := cmdCtx.Store.Update(cmd.Context(), rec.ID, name, ch.Responses()); err != nil {
		return fmt.Errorf("save character: %w", err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Updated %s (%d responses)", name, ch.Len()))
	return nil
}

// warnIssues prints outstanding validation issues after an edit so the user
// knows what is still missing.
func warnIssues(cmdCtx *CommandContext, ch *character.Character) {
	issues := builder.Validate(ch, cmdCtx.Rulebook)
	for _, issue := range issues {
		cmdCtx.Renderer.Warn(issue.String())
	}
}
