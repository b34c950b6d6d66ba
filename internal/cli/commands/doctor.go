package commands

import (
	"fmt"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check saved characters against the rulebook",
		Long: `Validate every saved character against the current rulebook.

Reports unanswered required questions, answers the rulebook no longer
offers (for example after homebrew content changed), duplicate picks,
and orphaned responses. Characters are not modified; use 'strikegen set'
to fix reported issues.`,
		Example: `  # Check all characters
  strikegen doctor

  # Machine-readable report
  strikegen doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}

	return cmd
}

// CharacterReport is the doctor result for one character.
type CharacterReport struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Issues []string `json:"issues,omitempty"`
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, err := cmdCtx.Store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}

	reports := make([]CharacterReport, 0, len(summaries))
	broken := 0
	for _, s := range summaries {
		rec, err := cmdCtx.Store.Get(cmd.Context(), s.ID)
		if err != nil {
			return fmt.Errorf("load %s: %w", s.Name, err)
		}

		ch := character.FromResponses(rec.Responses)
		issues := builder.Validate(ch, cmdCtx.Rulebook)

		report := CharacterReport{ID: s.ID, Name: s.Name}
		for _, issue := range issues {
			report.Issues = append(report.Issues, issue.String())
		}
		if len(report.Issues) > 0 {
			broken++
		}
		reports = append(reports, report)
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(reports)
	}

	r.Header(1, fmt.Sprintf("Checked %d characters", len(reports)))
	for _, report := range reports {
		if len(report.Issues) == 0 {
			r.StatusLine(report.Name, "success", "ok")
			continue
		}
		r.StatusLine(report.Name, "warning", fmt.Sprintf("%d issues", len(report.Issues)))
		for _, issue := range report.Issues {
			r.Println("      " + issue)
		}
	}

	if broken > 0 {
		r.Println("")
		r.Warn(fmt.Sprintf("%d of %d characters need attention", broken, len(reports)))
		return nil
	}
	r.Println("")
	r.Success("All characters are consistent with the rulebook.")
	return nil
}
