// Package output provides the CLI renderer. Output adapts to the
// environment: styled text on a terminal, Markdown when piped, JSON when
// asked for a machine-readable format.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown when piped.
	ModeAuto Mode = "auto"
	// ModeText is styled terminal output.
	ModeText Mode = "text"
	// ModeMarkdown is plain Markdown.
	ModeMarkdown Mode = "markdown"
	// ModeJSON is machine-readable JSON.
	ModeJSON Mode = "json"
)

// defaultWidth is used when the terminal width cannot be determined.
const defaultWidth = 80

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out   io.Writer
	errW  io.Writer
	mode  Mode
	isTTY bool
	width int
}

// NewRenderer creates a renderer. ModeAuto resolves against the actual
// output stream.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	r := &Renderer{out: out, errW: errW, mode: mode, width: defaultWidth}

	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			r.isTTY = true
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				r.width = w
			}
		}
	}
	// Respect NO_COLOR and dumb terminals even when stdout is a TTY.
	if termenv.EnvColorProfile() == termenv.Ascii {
		r.isTTY = false
	}
	return r
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Out returns the underlying output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Width returns the usable output width in cells.
func (r *Renderer) Width() int { return r.width }

// Println writes a plain line.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header writes a section heading at the given level.
func (r *Renderer) Header(level int, s string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		prefix := ""
		for i := 0; i < level; i++ {
			prefix += "#"
		}
		fmt.Fprintf(r.out, "%s %s\n", prefix, s)
	default:
		fmt.Fprintln(r.out, r.style(headerStyle, s))
	}
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	fmt.Fprintln(r.out, r.style(successStyle, s))
}

// Warn writes a warning line to the error stream.
func (r *Renderer) Warn(s string) {
	fmt.Fprintln(r.errW, r.style(warnStyle, s))
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(s string) {
	fmt.Fprintln(r.errW, r.style(errorStyle, s))
}

// StatusLine writes an item with a status marker.
func (r *Renderer) StatusLine(item, status, detail string) {
	marker := "-"
	style := headerStyle
	switch status {
	case "success":
		marker = "+"
		style = successStyle
	case "warning":
		marker = "!"
		style = warnStyle
	case "error":
		marker = "x"
		style = errorStyle
	}
	line := fmt.Sprintf("  %s %s", marker, item)
	if detail != "" {
		line += "  " + detail
	}
	fmt.Fprintln(r.out, r.style(style, line))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.isTTY || r.EffectiveMode() != ModeText {
		return text
	}
	return s.Render(text)
}
