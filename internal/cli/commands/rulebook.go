package commands

import (
	"fmt"
	"strings"

	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRulebookCommand creates the rulebook command.
func NewRulebookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rulebook",
		Aliases: []string{"rb"},
		Short:   "Browse the rulebook",
		Long: `Browse the reference database the builder draws from.

Without arguments, prints a summary of the loaded rulebook including any
homebrew content. Subcommands list each entry type; pass a name to see
the full entry.`,
		Example: `  # Summary of everything loaded
  strikegen rulebook

  # All backgrounds
  strikegen rulebook backgrounds

  # One background in detail
  strikegen rulebook backgrounds "Disgraced Scholar"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRulebookSummary(cmd)
		},
	}

	cmd.AddCommand(newRulebookSection("backgrounds", listBackgrounds, showBackground))
	cmd.AddCommand(newRulebookSection("origins", listOrigins, showOrigin))
	cmd.AddCommand(newRulebookSection("classes", listClasses, showClass))
	cmd.AddCommand(newRulebookSection("roles", listRoles, showRole))
	cmd.AddCommand(newRulebookSection("feats", listFeats, showFeat))
	cmd.AddCommand(newRulebookSection("kits", listKits, showKit))

	return cmd
}

// newRulebookSection builds one subcommand with a shared list/detail shape.
func newRulebookSection(
	name string,
	list func(*output.Renderer, *rulebook.Rulebook) error,
	show func(*output.Renderer, *rulebook.Rulebook, string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [name]",
		Short: "List " + name + " or show one by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContextWithoutStore(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return show(cmdCtx.Renderer, cmdCtx.Rulebook, args[0])
			}
			return list(cmdCtx.Renderer, cmdCtx.Rulebook)
		},
	}
}

func runRulebookSummary(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContextWithoutStore(cmd)
	if err != nil {
		return err
	}
	rb := cmdCtx.Rulebook
	r := cmdCtx.Renderer

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]int{
			"backgrounds": len(rb.BackgroundNames()),
			"origins":     len(rb.OriginNames()),
			"classes":     len(rb.ClassNames()),
			"roles":       len(rb.RoleNames()),
			"feats":       len(rb.FeatNames()),
			"kits":        len(rb.KitNames()),
		})
	}

	r.Header(1, "Rulebook")
	r.StatusLine("backgrounds", "success", fmt.Sprintf("%d", len(rb.BackgroundNames())))
	r.StatusLine("origins", "success", fmt.Sprintf("%d", len(rb.OriginNames())))
	r.StatusLine("classes", "success", fmt.Sprintf("%d", len(rb.ClassNames())))
	r.StatusLine("roles", "success", fmt.Sprintf("%d", len(rb.RoleNames())))
	r.StatusLine("feats", "success", fmt.Sprintf("%d", len(rb.FeatNames())))
	r.StatusLine("kits", "success", fmt.Sprintf("%d", len(rb.KitNames())))
	return nil
}

func renderNameTable(r *output.Renderer, header string, rows [][]string) error {
	cols := strings.Split(header, "|")

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("| " + strings.Join(cols, " | ") + " |")
		seps := make([]string, len(cols))
		for i := range seps {
			seps[i] = "---"
		}
		r.Println("| " + strings.Join(seps, " | ") + " |")
		for _, row := range rows {
			r.Println("| " + strings.Join(row, " | ") + " |")
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	headerRow := make(table.Row, len(cols))
	for i, c := range cols {
		headerRow[i] = c
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}
	t.Render()
	return nil
}

func describeChoiceSet(set rulebook.ChoiceSet) string {
	if set.RequiresChoice() {
		return fmt.Sprintf("choose %d of %d", set.Slots, len(set.Options))
	}
	return strings.Join(set.Options, ", ")
}

func listBackgrounds(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.BackgroundNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.BackgroundNames() {
		bg, _ := rb.Background(name)
		rows = append(rows, []string{name, describeChoiceSet(bg.Skills), fmt.Sprintf("%d", bg.Wealth)})
	}
	return renderNameTable(r, "Background|Skills|Wealth", rows)
}

func showBackground(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	bg, ok := rb.Background(name)
	if !ok {
		return fmt.Errorf("unknown background %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(bg)
	}
	r.Header(1, bg.Name)
	r.Printf("Skills: %s\n", describeChoiceSet(bg.Skills))
	if bg.Trick != "" {
		r.Printf("Trick: %s\n", bg.Trick)
	}
	if bg.Complication != "" {
		r.Printf("Complication: %s\n", bg.Complication)
	}
	r.Printf("Wealth: %d\n", bg.Wealth)
	return nil
}

func listOrigins(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.OriginNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.OriginNames() {
		o, _ := rb.Origin(name)
		rows = append(rows, []string{
			name,
			describeChoiceSet(o.Skills),
			describeChoiceSet(o.Complications),
			fmt.Sprintf("%+d", o.WealthBonus),
		})
	}
	return renderNameTable(r, "Origin|Skills|Complications|Wealth", rows)
}

func showOrigin(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	o, ok := rb.Origin(name)
	if !ok {
		return fmt.Errorf("unknown origin %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(o)
	}
	r.Header(1, o.Name)
	r.Printf("Skills: %s\n", describeChoiceSet(o.Skills))
	r.Printf("Complications: %s\n", describeChoiceSet(o.Complications))
	if o.WealthBonus != 0 {
		r.Printf("Wealth: %+d\n", o.WealthBonus)
	}
	return nil
}

func listClasses(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.ClassNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.ClassNames() {
		c, _ := rb.Class(name)
		rows = append(rows, []string{name, c.Trick})
	}
	return renderNameTable(r, "Class|Trick", rows)
}

func showClass(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	c, ok := rb.Class(name)
	if !ok {
		return fmt.Errorf("unknown class %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(c)
	}
	r.Header(1, c.Name)
	if c.Trick != "" {
		r.Printf("Trick: %s\n", c.Trick)
	}
	return nil
}

func listRoles(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.RoleNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.RoleNames() {
		role, _ := rb.Role(name)
		rows = append(rows, []string{name, role.Description})
	}
	return renderNameTable(r, "Role|Description", rows)
}

func showRole(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	role, ok := rb.Role(name)
	if !ok {
		return fmt.Errorf("unknown role %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(role)
	}
	r.Header(1, role.Name)
	r.Println(role.Description)
	return nil
}

func listFeats(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.FeatNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.FeatNames() {
		f, _ := rb.Feat(name)
		rows = append(rows, []string{name, f.Trick})
	}
	return renderNameTable(r, "Feat|Trick", rows)
}

func showFeat(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	f, ok := rb.Feat(name)
	if !ok {
		return fmt.Errorf("unknown feat %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(f)
	}
	r.Header(1, f.Name)
	if f.Trick != "" {
		r.Printf("Trick: %s\n", f.Trick)
	}
	return nil
}

func listKits(r *output.Renderer, rb *rulebook.Rulebook) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rb.KitNames())
	}
	rows := make([][]string, 0)
	for _, name := range rb.KitNames() {
		k, _ := rb.Kit(name)
		powers := make([]string, 0, len(k.Powers))
		for _, p := range k.Powers {
			powers = append(powers, fmt.Sprintf("%s (L%d)", p.Name, p.Level))
		}
		rows = append(rows, []string{name, strings.Join(powers, ", ")})
	}
	return renderNameTable(r, "Kit|Powers", rows)
}

func showKit(r *output.Renderer, rb *rulebook.Rulebook, name string) error {
	k, ok := rb.Kit(name)
	if !ok {
		return fmt.Errorf("unknown kit %q", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(k)
	}
	r.Header(1, k.Name)
	for _, p := range k.Powers {
		r.Printf("  L%d  %s\n", p.Level, p.Name)
	}
	return nil
}
