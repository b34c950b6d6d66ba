// Package sheet assembles a character's responses and derived values into
// a complete, displayable character sheet, and renders it as terminal
// tables, Markdown, or JSON.
package sheet

import (
	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

// Entry is a single derived value with its provenance label.
type Entry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// KitSection is a chosen kit with the powers attained at the sheet's
// level.
type KitSection struct {
	Kit    string   `json:"kit"`
	Powers []string `json:"powers"`
}

// Sheet is the fully derived character sheet.
type Sheet struct {
	Name          string            `json:"name"`
	Player        string            `json:"player,omitempty"`
	Level         int               `json:"level"`
	Background    string            `json:"background,omitempty"`
	Origin        string            `json:"origin,omitempty"`
	Class         string            `json:"class,omitempty"`
	Role          string            `json:"role,omitempty"`
	Wealth        int               `json:"wealth"`
	Skills        []Entry           `json:"skills,omitempty"`
	Complications []Entry           `json:"complications,omitempty"`
	Tricks        []string          `json:"tricks,omitempty"`
	Kits          []KitSection      `json:"kits,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Responses     map[string]string `json:"responses"`
}

// Build derives a sheet from a character against the rulebook. Derived
// values are computed fresh; the raw responses ride along so a sheet file
// can be imported back without loss.
func Build(ch *character.Character, rb *rulebook.Rulebook) *Sheet {
	s := &Sheet{
		Level:     ch.Level(),
		Wealth:    builder.Wealth(ch, rb),
		Tricks:    builder.Tricks(ch, rb),
		Responses: ch.Responses(),
	}
	s.Name, _ = ch.Get(builder.KeyName)
	s.Player, _ = ch.Get(builder.KeyPlayer)
	s.Background, _ = ch.Get(builder.KeyBackground)
	s.Origin, _ = ch.Get(builder.KeyOrigin)
	s.Class, _ = ch.Get(builder.KeyClass)
	s.Role, _ = ch.Get(builder.KeyRole)
	s.Notes, _ = ch.Get(builder.KeyNotes)

	for _, v := range builder.Skills(ch, rb) {
		s.Skills = append(s.Skills, Entry{Name: v.Name, Source: v.Source.String()})
	}
	for _, v := range builder.Complications(ch, rb) {
		s.Complications = append(s.Complications, Entry{Name: v.Name, Source: v.Source.String()})
	}
	for _, grant := range builder.KitPowers(ch, rb) {
		s.Kits = append(s.Kits, KitSection{Kit: grant.Kit, Powers: grant.Powers})
	}
	return s
}
