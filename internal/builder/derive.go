package builder

import (
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

// Skills derives the character's skill list, tagged by provenance:
// background grants first, then origin grants, then free additions.
// Complex pools contribute only the answered slots.
func Skills(ch *character.Character, rb *rulebook.Rulebook) []character.Sourced {
	var out []character.Sourced

	if bg, ok := chosenBackground(ch, rb); ok {
		if bg.Complex() {
			out = append(out, chosenSlots(ch, backgroundSkillKey, bg.Skills.Slots, character.SourceBackground)...)
		} else {
			out = append(out, granted(bg.Skills, character.SourceBackground)...)
		}
	}

	if origin, ok := chosenOrigin(ch, rb); ok {
		if origin.Skills.RequiresChoice() {
			out = append(out, chosenSlots(ch, originSkillKey, origin.Skills.Slots, character.SourceOrigin)...)
		} else {
			out = append(out, granted(origin.Skills, character.SourceOrigin)...)
		}
	}

	if v, ok := ch.Get(KeyExtraSkill); ok {
		out = append(out, character.Sourced{Name: v, Source: character.SourceFree})
	}
	return out
}

// Complications derives the character's complications with provenance.
func Complications(ch *character.Character, rb *rulebook.Rulebook) []character.Sourced {
	var out []character.Sourced

	if bg, ok := chosenBackground(ch, rb); ok && bg.Complication != "" {
		out = append(out, character.Sourced{Name: bg.Complication, Source: character.SourceBackground})
	}

	if origin, ok := chosenOrigin(ch, rb); ok {
		if origin.Complications.RequiresChoice() {
			out = append(out, chosenSlots(ch, originComplicationKey, origin.Complications.Slots, character.SourceOrigin)...)
		} else {
			out = append(out, granted(origin.Complications, character.SourceOrigin)...)
		}
	}

	if v, ok := ch.Get(KeyExtraComp); ok {
		out = append(out, character.Sourced{Name: v, Source: character.SourceFree})
	}
	return out
}

// Tricks collects the trick texts the character has earned: background
// trick, class trick, then feats in level order.
func Tricks(ch *character.Character, rb *rulebook.Rulebook) []string {
	var out []string

	if bg, ok := chosenBackground(ch, rb); ok && bg.Trick != "" {
		out = append(out, bg.Trick)
	}
	if name, ok := ch.Get(KeyClass); ok {
		if class, ok := rb.Class(name); ok && class.Trick != "" {
			out = append(out, class.Trick)
		}
	}
	for _, level := range featLevels(ch.Level()) {
		name, ok := ch.Get(featKey(level))
		if !ok {
			continue
		}
		if feat, ok := rb.Feat(name); ok && feat.Trick != "" {
			out = append(out, feat.Trick)
		}
	}
	return out
}

// Wealth derives the wealth score: background base plus origin modifier.
func Wealth(ch *character.Character, rb *rulebook.Rulebook) int {
	wealth := 0
	if bg, ok := chosenBackground(ch, rb); ok {
		wealth += bg.Wealth
	}
	if origin, ok := chosenOrigin(ch, rb); ok {
		wealth += origin.WealthBonus
	}
	return wealth
}

// KitGrant is a chosen kit with the powers attained at the current level.
type KitGrant struct {
	Kit    string
	Powers []string
}

// KitPowers derives the powers granted by each chosen kit at the current
// level, in slot order.
func KitPowers(ch *character.Character, rb *rulebook.Rulebook) []KitGrant {
	level := ch.Level()
	var out []KitGrant
	for _, key := range []string{KeyKitFirst, KeyKitSecond} {
		name, ok := ch.Get(key)
		if !ok {
			continue
		}
		kit, ok := rb.Kit(name)
		if !ok {
			continue
		}
		out = append(out, KitGrant{Kit: kit.Name, Powers: kit.PowersAtLevel(level)})
	}
	return out
}

func chosenBackground(ch *character.Character, rb *rulebook.Rulebook) (rulebook.Background, bool) {
	name, ok := ch.Get(KeyBackground)
	if !ok {
		return rulebook.Background{}, false
	}
	return rb.Background(name)
}

func chosenOrigin(ch *character.Character, rb *rulebook.Rulebook) (rulebook.Origin, bool) {
	name, ok := ch.Get(KeyOrigin)
	if !ok {
		return rulebook.Origin{}, false
	}
	return rb.Origin(name)
}

func granted(set rulebook.ChoiceSet, source character.Source) []character.Sourced {
	var out []character.Sourced
	for _, name := range set.Granted() {
		out = append(out, character.Sourced{Name: name, Source: source})
	}
	return out
}

func chosenSlots(ch *character.Character, keyFn func(int) string, slots int, source character.Source) []character.Sourced {
	var out []character.Sourced
	for slot := 1; slot <= slots; slot++ {
		if v, ok := ch.Get(keyFn(slot)); ok {
			out = append(out, character.Sourced{Name: v, Source: source})
		}
	}
	return out
}
