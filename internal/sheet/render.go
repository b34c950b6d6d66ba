package sheet

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// RenderJSON writes the sheet as indented JSON, the import/export format.
func RenderJSON(w io.Writer, s *Sheet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// RenderMarkdown writes the sheet as a Markdown document.
func RenderMarkdown(w io.Writer, s *Sheet) error {
	name := s.Name
	if name == "" {
		name = "Unnamed Character"
	}
	fmt.Fprintf(w, "# %s\n\n", name)
	if s.Player != "" {
		fmt.Fprintf(w, "Played by %s.\n\n", s.Player)
	}

	fmt.Fprintf(w, "| | |\n|---|---|\n")
	fmt.Fprintf(w, "| Level | %d |\n", s.Level)
	for _, row := range [][2]string{
		{"Background", s.Background},
		{"Origin", s.Origin},
		{"Class", s.Class},
		{"Role", s.Role},
	} {
		if row[1] != "" {
			fmt.Fprintf(w, "| %s | %s |\n", row[0], row[1])
		}
	}
	fmt.Fprintf(w, "| Wealth | %d |\n\n", s.Wealth)

	if len(s.Skills) > 0 {
		fmt.Fprintf(w, "## Skills\n\n")
		for _, e := range s.Skills {
			fmt.Fprintf(w, "- %s (%s)\n", e.Name, e.Source)
		}
		fmt.Fprintln(w)
	}
	if len(s.Complications) > 0 {
		fmt.Fprintf(w, "## Complications\n\n")
		for _, e := range s.Complications {
			fmt.Fprintf(w, "- %s (%s)\n", e.Name, e.Source)
		}
		fmt.Fprintln(w)
	}
	if len(s.Tricks) > 0 {
		fmt.Fprintf(w, "## Tricks\n\n")
		for _, trick := range s.Tricks {
			fmt.Fprintf(w, "- %s\n", trick)
		}
		fmt.Fprintln(w)
	}
	for _, kit := range s.Kits {
		fmt.Fprintf(w, "## Kit: %s\n\n", kit.Kit)
		for _, power := range kit.Powers {
			fmt.Fprintf(w, "- %s\n", power)
		}
		fmt.Fprintln(w)
	}
	if s.Notes != "" {
		fmt.Fprintf(w, "## Notes\n\n%s\n", s.Notes)
	}
	return nil
}

// RenderText writes the sheet as terminal tables.
func RenderText(w io.Writer, s *Sheet) error {
	name := s.Name
	if name == "" {
		name = "Unnamed Character"
	}
	fmt.Fprintln(w, name)
	fmt.Fprintln(w, strings.Repeat("=", len(name)))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Level", s.Level})
	for _, row := range [][2]string{
		{"Player", s.Player},
		{"Background", s.Background},
		{"Origin", s.Origin},
		{"Class", s.Class},
		{"Role", s.Role},
	} {
		if row[1] != "" {
			t.AppendRow(table.Row{row[0], row[1]})
		}
	}
	t.AppendRow(table.Row{"Wealth", s.Wealth})
	t.Render()

	renderEntries(w, "Skills", s.Skills)
	renderEntries(w, "Complications", s.Complications)

	if len(s.Tricks) > 0 {
		fmt.Fprintf(w, "\nTricks\n")
		for _, trick := range s.Tricks {
			fmt.Fprintf(w, "  - %s\n", trick)
		}
	}
	for _, kit := range s.Kits {
		fmt.Fprintf(w, "\nKit: %s\n", kit.Kit)
		for _, power := range kit.Powers {
			fmt.Fprintf(w, "  - %s\n", power)
		}
	}
	if s.Notes != "" {
		fmt.Fprintf(w, "\nNotes: %s\n", s.Notes)
	}
	return nil
}

func renderEntries(w io.Writer, title string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Source"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, titleCaser.String(e.Source)})
	}
	t.Render()
}
