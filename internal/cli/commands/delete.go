package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <character>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved character",
		Example: `  strikegen delete Brambles --force`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, ref string, force bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := findCharacter(cmd, cmdCtx.Store, ref)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %s (%s)? [y/N] ", rec.Name, rec.ID)
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			cmdCtx.Renderer.Println("Aborted.")
			return nil
		}
	}

	if err := cmdCtx.Store.Delete(cmd.Context(), rec.ID); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Deleted %s", rec.Name))
	return nil
}
