package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
	"github.com/dustinanglin/StrikeGen/internal/sheet"
	"github.com/dustinanglin/StrikeGen/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportConcurrency bounds parallel sheet builds during --all.
const exportConcurrency = 4

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Format string
	All    bool
	Stdout bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [character]",
		Short: "Export character sheets to files",
		Long: `Export rendered character sheets into the export directory.

The file name is derived from the character name. Use --all to export
every saved character, or --stdout to write a single sheet to standard
output instead of a file.`,
		Example: `  # Export one character as markdown
  strikegen export Brambles

  # Export everything as JSON
  strikegen export --all --format json

  # Write to stdout for piping
  strikegen export Brambles --stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.All {
				if len(args) > 0 {
					return fmt.Errorf("cannot combine --all with a character reference")
				}
				return runExportAll(cmd, opts)
			}
			if len(args) == 0 {
				return fmt.Errorf("character reference required (or use --all)")
			}
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "markdown", "Export format: markdown, json")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Export every saved character")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Write to stdout instead of a file")

	return cmd
}

func runExport(cmd *cobra.Command, ref string, opts *ExportOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := findCharacter(cmd, cmdCtx.Store, ref)
	if err != nil {
		return err
	}

	if opts.Stdout {
		return renderSheet(cmd.OutOrStdout(), rec, cmdCtx.Rulebook, opts.Format)
	}

	path, err := exportRecord(rec, cmdCtx.Rulebook, cmdCtx.Cfg.ExportDir, exportFileName(rec.Name, opts.Format), opts.Format)
	if err != nil {
		return err
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Exported %s to %s", rec.Name, path))
	return nil
}

func runExportAll(cmd *cobra.Command, opts *ExportOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, err := cmdCtx.Store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}
	if len(summaries) == 0 {
		cmdCtx.Renderer.Println("No characters to export.")
		return nil
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(exportConcurrency)

	fileNames := exportFileNames(summaries, opts.Format)
	paths := make([]string, len(summaries))
	for i, s := range summaries {
		g.Go(func() error {
			rec, err := cmdCtx.Store.Get(ctx, s.ID)
			if err != nil {
				return fmt.Errorf("load %s: %w", s.Name, err)
			}
			path, err := exportRecord(rec, cmdCtx.Rulebook, cmdCtx.Cfg.ExportDir, fileNames[i], opts.Format)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range summaries {
		cmdCtx.Renderer.StatusLine(s.Name, "success", paths[i])
	}
	cmdCtx.Renderer.Println("")
	cmdCtx.Renderer.Success(fmt.Sprintf("Exported %d characters to %s", len(summaries), cmdCtx.Cfg.ExportDir))
	return nil
}

// exportRecord renders one character and writes it into dir under
// fileName. Returns the written path.
func exportRecord(rec *store.Record, rb *rulebook.Rulebook, dir, fileName, format string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := renderSheet(&buf, rec, rb, format); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write sheet: %w", err)
	}
	return path, nil
}

func renderSheet(w io.Writer, rec *store.Record, rb *rulebook.Rulebook, format string) error {
	s := sheet.Build(character.FromResponses(rec.Responses), rb)
	switch format {
	case "json":
		return sheet.RenderJSON(w, s)
	case "md", "markdown":
		return sheet.RenderMarkdown(w, s)
	default:
		return fmt.Errorf("unknown export format %q (want markdown or json)", format)
	}
}

// exportFileNames derives one file name per summary. Names that slug
// identically get a fragment of the record id appended, so exporting
// everything never writes two characters to the same file.
func exportFileNames(summaries []store.Summary, format string) []string {
	counts := make(map[string]int, len(summaries))
	for _, s := range summaries {
		counts[exportFileName(s.Name, format)]++
	}

	names := make([]string, len(summaries))
	for i, s := range summaries {
		name := exportFileName(s.Name, format)
		if counts[name] > 1 {
			id := s.ID
			if len(id) > 8 {
				id = id[:8]
			}
			name = exportFileName(s.Name+"-"+id, format)
		}
		names[i] = name
	}
	return names
}

// exportFileName derives a safe file name from a character name.
func exportFileName(name, format string) string {
	if name == "" {
		name = "unnamed"
	}
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "unnamed"
	}

	ext := ".md"
	if format == "json" {
		ext = ".json"
	}
	return slug + ext
}
