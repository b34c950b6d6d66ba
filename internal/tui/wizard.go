// Package tui implements the interactive character builder.
//
// The wizard walks the questions one at a time. Because the question set
// depends on the answers so far, the forms are recomputed after every
// answer: picking a complex background opens its skill slots on the spot,
// and choosing a class unlocks the kit and feat questions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
	"github.com/dustinanglin/StrikeGen/internal/sheet"
)

type screen int

const (
	screenQuestion screen = iota
	screenSummary
	screenDone
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// SaveFunc persists the finished character.
type SaveFunc func(*character.Character) error

// RulebookReloadedMsg swaps in a freshly loaded rulebook, typically sent by
// a homebrew directory watcher.
type RulebookReloadedMsg struct {
	Rulebook *rulebook.Rulebook
}

// position addresses one field in the current form set.
type position struct {
	form  int
	field int
}

// Model is the wizard state.
type Model struct {
	ch    *character.Character
	rb    *rulebook.Rulebook
	forms []builder.Form
	pos   position

	screen    screen
	input     textinput.Model
	optionIdx int
	status    string
	saved     bool
	save      SaveFunc

	w, h int
}

// NewModel creates a wizard for the given character. The character may
// already have responses; the wizard starts at the first unanswered
// question.
func NewModel(ch *character.Character, rb *rulebook.Rulebook, save SaveFunc) Model {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Focus()

	m := Model{
		ch:    ch,
		rb:    rb,
		input: ti,
		save:  save,
	}
	m.refresh()
	m.pos = m.firstUnanswered()
	m.syncField()
	return m
}

// Run starts the wizard and blocks until it exits. The returned program is
// exposed through RunProgram for callers that need to send messages (for
// example rulebook reloads).
func Run(ch *character.Character, rb *rulebook.Rulebook, save SaveFunc) error {
	p := NewProgram(ch, rb, save)
	_, err := p.Run()
	return err
}

// NewProgram builds the bubbletea program without starting it.
func NewProgram(ch *character.Character, rb *rulebook.Rulebook, save SaveFunc) *tea.Program {
	return tea.NewProgram(NewModel(ch, rb, save), tea.WithAltScreen())
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// refresh recomputes the visible forms from the current responses.
func (m *Model) refresh() {
	m.forms = builder.Forms(m.ch, m.rb)
}

// clampPos moves the position back into range after the form set changed.
func (m *Model) clampPos() {
	if m.pos.form >= len(m.forms) {
		m.pos.form = len(m.forms) - 1
	}
	if m.pos.form < 0 {
		m.pos.form = 0
	}
	fields := m.forms[m.pos.form].Fields
	if m.pos.field >= len(fields) {
		m.pos.field = len(fields) - 1
	}
	if m.pos.field < 0 {
		m.pos.field = 0
	}
}

// current returns the field under the cursor.
func (m *Model) current() builder.Field {
	m.clampPos()
	return m.forms[m.pos.form].Fields[m.pos.field]
}

// firstUnanswered finds the first required question without a response.
func (m *Model) firstUnanswered() position {
	for fi, form := range m.forms {
		for gi, f := range form.Fields {
			if !f.Deletable && !m.ch.Has(f.Key) {
				return position{form: fi, field: gi}
			}
		}
	}
	return position{}
}

// next advances to the following field, or the summary after the last one.
func (m *Model) next() {
	m.clampPos()
	if m.pos.field+1 < len(m.forms[m.pos.form].Fields) {
		m.pos.field++
	} else if m.pos.form+1 < len(m.forms) {
		m.pos.form++
		m.pos.field = 0
	} else {
		m.screen = screenSummary
		return
	}
	m.syncField()
}

// prev moves back one field.
func (m *Model) prev() {
	m.clampPos()
	if m.pos.field > 0 {
		m.pos.field--
	} else if m.pos.form > 0 {
		m.pos.form--
		m.pos.field = len(m.forms[m.pos.form].Fields) - 1
	}
	m.syncField()
}

// syncField prepares the input widgets for the field under the cursor.
func (m *Model) syncField() {
	f := m.current()
	value, _ := m.ch.Get(f.Key)

	switch f.Kind {
	case builder.KindDropdown:
		m.optionIdx = 0
		for i, opt := range f.Options {
			if opt == value {
				m.optionIdx = i
				break
			}
		}
	default:
		m.input.SetValue(value)
		m.input.CursorEnd()
	}
}

// answer applies a value to the current field and advances on success.
func (m *Model) answer(value string) {
	f := m.current()
	if value == "" && f.Deletable {
		m.status = ""
		m.next()
		return
	}
	if err := builder.Apply(m.ch, m.rb, f.Key, value); err != nil {
		m.status = errStyle.Render(err.Error())
		return
	}
	m.status = ""
	key := f.Key
	m.refresh()
	// Answers can open or close later questions, so find the field again
	// before moving on.
	m.seek(key)
	m.next()
}

// seek positions the cursor on the field with the given key.
func (m *Model) seek(key string) {
	for fi, form := range m.forms {
		for gi, f := range form.Fields {
			if f.Key == key {
				m.pos = position{form: fi, field: gi}
				return
			}
		}
	}
	m.clampPos()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		return m, nil

	case RulebookReloadedMsg:
		m.rb = msg.Rulebook
		builder.Reconcile(m.ch, m.rb)
		m.refresh()
		m.clampPos()
		m.syncField()
		m.status = okStyle.Render("Rulebook reloaded")
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenSummary:
			return m.updateSummary(msg)
		case screenDone:
			return m, tea.Quit
		default:
			return m.updateQuestion(msg)
		}
	}

	return m, nil
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.current()

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.screen = screenSummary
		return m, nil
	case "shift+tab":
		m.prev()
		return m, nil
	}

	if f.Kind == builder.KindDropdown {
		switch msg.String() {
		case "up", "k":
			if m.optionIdx > 0 {
				m.optionIdx--
			}
			return m, nil
		case "down", "j":
			if m.optionIdx < len(f.Options)-1 {
				m.optionIdx++
			}
			return m, nil
		case "enter":
			if len(f.Options) == 0 {
				m.next()
				return m, nil
			}
			m.answer(f.Options[m.optionIdx])
			return m, nil
		case "delete", "backspace":
			if f.Deletable && m.ch.Has(f.Key) {
				if err := builder.Unset(m.ch, m.rb, f.Key); err == nil {
					m.refresh()
					m.clampPos()
					m.status = ""
				}
			}
			return m, nil
		}
		return m, nil
	}

	// Text and number fields go through the textinput widget.
	switch msg.String() {
	case "enter":
		m.answer(strings.TrimSpace(m.input.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "e", "shift+tab":
		m.screen = screenQuestion
		m.pos = m.firstUnanswered()
		m.syncField()
		return m, nil
	case "s", "enter":
		if m.save == nil {
			return m, tea.Quit
		}
		if err := m.save(m.ch); err != nil {
			m.status = errStyle.Render(fmt.Sprintf("save failed: %v", err))
			return m, nil
		}
		m.saved = true
		m.screen = screenDone
		return m, tea.Quit
	}
	return m, nil
}

// Saved reports whether the character was persisted before exit.
func (m Model) Saved() bool { return m.saved }

// Character returns the character being edited.
func (m Model) Character() *character.Character { return m.ch }

func (m Model) View() string {
	if m.screen == screenSummary || m.screen == screenDone {
		return m.viewSummary()
	}
	return m.viewQuestion()
}

func (m Model) viewQuestion() string {
	form := m.forms[m.pos.form]
	f := m.current()

	var b strings.Builder
	b.WriteString(titleStyle.Render(form.Title))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(f.Label))
	if f.Deletable {
		b.WriteString(dimStyle.Render("  (optional, enter to skip)"))
	}
	b.WriteString("\n\n")

	switch f.Kind {
	case builder.KindDropdown:
		for i, opt := range f.Options {
			cursor := "  "
			line := opt
			if i == m.optionIdx {
				cursor = "> "
				line = selectedStyle.Render(opt)
			}
			if chosen, _ := m.ch.Get(f.Key); chosen == opt {
				line += dimStyle.Render("  (current)")
			}
			b.WriteString(cursor + line + "\n")
		}
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if f.Kind == builder.KindNumber {
			b.WriteString(dimStyle.Render(fmt.Sprintf("%d-%d", f.Min, f.Max)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: confirm · shift+tab: back · tab: summary · esc: quit"))
	return b.String()
}

func (m Model) viewSummary() string {
	s := sheet.Build(m.ch, m.rb)

	var b strings.Builder
	name := s.Name
	if name == "" {
		name = "Unnamed Character"
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Level %d", s.Level))
	if s.Class != "" {
		b.WriteString(" · " + s.Class)
	}
	if s.Role != "" {
		b.WriteString(" · " + s.Role)
	}
	b.WriteString("\n\n")

	writeEntries := func(title string, entries []sheet.Entry) {
		if len(entries) == 0 {
			return
		}
		b.WriteString(labelStyle.Render(title))
		b.WriteString("\n")
		for _, e := range entries {
			b.WriteString(fmt.Sprintf("  %s %s\n", e.Name, dimStyle.Render("("+e.Source+")")))
		}
	}
	writeEntries("Skills", s.Skills)
	writeEntries("Complications", s.Complications)

	if len(s.Tricks) > 0 {
		b.WriteString(labelStyle.Render("Tricks"))
		b.WriteString("\n")
		for _, t := range s.Tricks {
			b.WriteString("  " + t + "\n")
		}
	}
	for _, kit := range s.Kits {
		b.WriteString(labelStyle.Render("Kit: " + kit.Kit))
		b.WriteString("\n")
		for _, p := range kit.Powers {
			b.WriteString("  " + p + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nWealth: %d\n", s.Wealth))

	issues := builder.Validate(m.ch, m.rb)
	if len(issues) > 0 {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(fmt.Sprintf("%d open issues", len(issues))))
		b.WriteString("\n")
		for _, issue := range issues {
			b.WriteString("  " + issue.String() + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.screen == screenDone {
		b.WriteString(okStyle.Render("Saved."))
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render("s: save · e: keep editing · q: quit without saving"))
	}
	return b.String()
}
