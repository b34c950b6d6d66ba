package builder

import (
	"fmt"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

// Forms derives the currently visible form set for a character. Visibility
// reacts to the character's own answers: choice slots open only while the
// selected background/origin is complex, kit and feat forms only once a
// class is chosen, and per-level fields track the current level. Field
// keys are unique across the returned set.
func Forms(ch *character.Character, rb *rulebook.Rulebook) []Form {
	forms := []Form{
		identityForm(),
		backgroundForm(ch, rb),
		originForm(ch, rb),
		classForm(rb),
	}

	if _, ok := ch.Get(KeyClass); ok {
		forms = append(forms, kitForm(ch, rb))
		if feats := featForm(ch, rb); len(feats.Fields) > 0 {
			forms = append(forms, feats)
		}
	}

	forms = append(forms, extrasForm())
	return forms
}

func identityForm() Form {
	return Form{
		Title: "Identity",
		Fields: []Field{
			{Key: KeyName, Label: "Character name", Kind: KindText},
			{Key: KeyPlayer, Label: "Player", Kind: KindText, Deletable: true},
			{Key: KeyLevel, Label: "Level", Kind: KindNumber, Min: character.MinLevel, Max: character.MaxLevel},
		},
	}
}

func backgroundForm(ch *character.Character, rb *rulebook.Rulebook) Form {
	form := Form{
		Title: "Background",
		Fields: []Field{
			{Key: KeyBackground, Label: "Background", Kind: KindDropdown, Options: rb.BackgroundNames()},
		},
	}

	name, ok := ch.Get(KeyBackground)
	if !ok {
		return form
	}
	bg, ok := rb.Background(name)
	if !ok || !bg.Complex() {
		return form
	}

	for slot := 1; slot <= bg.Skills.Slots; slot++ {
		form.Fields = append(form.Fields, Field{
			Key:       backgroundSkillKey(slot),
			Label:     fmt.Sprintf("Background skill %d", slot),
			Kind:      KindDropdown,
			Deletable: true,
			Options:   bg.Skills.Options,
		})
	}
	return form
}

func originForm(ch *character.Character, rb *rulebook.Rulebook) Form {
	form := Form{
		Title: "Origin",
		Fields: []Field{
			{Key: KeyOrigin, Label: "Origin", Kind: KindDropdown, Options: rb.OriginNames()},
		},
	}

	name, ok := ch.Get(KeyOrigin)
	if !ok {
		return form
	}
	origin, ok := rb.Origin(name)
	if !ok {
		return form
	}

	if origin.Skills.RequiresChoice() {
		for slot := 1; slot <= origin.Skills.Slots; slot++ {
			form.Fields = append(form.Fields, Field{
				Key:       originSkillKey(slot),
				Label:     fmt.Sprintf("Origin skill %d", slot),
				Kind:      KindDropdown,
				Deletable: true,
				Options:   origin.Skills.Options,
			})
		}
	}
	if origin.Complications.RequiresChoice() {
		for slot := 1; slot <= origin.Complications.Slots; slot++ {
			form.Fields = append(form.Fields, Field{
				Key:       originComplicationKey(slot),
				Label:     fmt.Sprintf("Origin complication %d", slot),
				Kind:      KindDropdown,
				Deletable: true,
				Options:   origin.Complications.Options,
			})
		}
	}
	return form
}

func classForm(rb *rulebook.Rulebook) Form {
	return Form{
		Title: "Class & Role",
		Fields: []Field{
			{Key: KeyClass, Label: "Class", Kind: KindDropdown, Options: rb.ClassNames()},
			{Key: KeyRole, Label: "Role", Kind: KindDropdown, Options: rb.RoleNames()},
		},
	}
}

func kitForm(ch *character.Character, rb *rulebook.Rulebook) Form {
	form := Form{
		Title: "Kits",
		Fields: []Field{
			{Key: KeyKitFirst, Label: "Kit", Kind: KindDropdown, Options: rb.KitNames()},
		},
	}
	if ch.Level() >= SecondKitLevel {
		form.Fields = append(form.Fields, Field{
			Key:       KeyKitSecond,
			Label:     "Second kit",
			Kind:      KindDropdown,
			Deletable: true,
			Options:   rb.KitNames(),
		})
	}
	return form
}

func featForm(ch *character.Character, rb *rulebook.Rulebook) Form {
	form := Form{Title: "Feats"}
	for _, level := range featLevels(ch.Level()) {
		form.Fields = append(form.Fields, Field{
			Key:       featKey(level),
			Label:     fmt.Sprintf("Feat (level %d)", level),
			Kind:      KindDropdown,
			Deletable: true,
			Options:   rb.FeatNames(),
		})
	}
	return form
}

func extrasForm() Form {
	return Form{
		Title: "Extras",
		Fields: []Field{
			{Key: KeyExtraSkill, Label: "Extra skill", Kind: KindText, Deletable: true},
			{Key: KeyExtraComp, Label: "Extra complication", Kind: KindText, Deletable: true},
			{Key: KeyNotes, Label: "Notes", Kind: KindText, Deletable: true},
		},
	}
}
