package builder

import (
	"fmt"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

// Issue is a single validation finding, keyed to the field it concerns.
type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

// Validate runs cross-field validation over the whole character and
// returns every problem found. A sheet with no issues is complete and
// consistent with the rulebook; doctor and the wizard summary both report
// from here.
func Validate(ch *character.Character, rb *rulebook.Rulebook) []Issue {
	var issues []Issue
	forms := Forms(ch, rb)

	// Required fields must be answered, and every answer must still pass
	// its field's own validation. Answers can go stale when homebrew
	// content changes underneath a saved sheet.
	for _, form := range forms {
		for _, field := range form.Fields {
			value, answered := ch.Get(field.Key)
			if !answered {
				if !field.Deletable {
					issues = append(issues, Issue{Key: field.Key, Message: "required field is unanswered"})
				}
				continue
			}
			if err := field.Check(value); err != nil {
				issues = append(issues, Issue{Key: field.Key, Message: fmt.Sprintf("response %q is no longer valid", value)})
			}
		}
	}

	// Responses that match no visible field are orphans, usually imported
	// from an older rulebook.
	for _, key := range ch.Keys() {
		if _, visible := Lookup(forms, key); !visible {
			issues = append(issues, Issue{Key: key, Message: "response does not match any visible field"})
		}
	}

	issues = append(issues, duplicateIssues(ch, rb)...)
	return issues
}

// duplicateIssues flags the same pick landing in two slots, and the same
// kit taken twice. Skills share one namespace: a pick that repeats another
// slot's answer is flagged no matter which of background or origin opened
// the slot, and so is a pick that merely repeats a granted skill.
func duplicateIssues(ch *character.Character, rb *rulebook.Rulebook) []Issue {
	var issues []Issue

	check := func(seen map[string]string, keys []string, what string) {
		for _, key := range keys {
			v, ok := ch.Get(key)
			if !ok {
				continue
			}
			if prev, dup := seen[v]; dup {
				issues = append(issues, Issue{Key: key, Message: fmt.Sprintf("%s %q already picked by %s", what, v, prev)})
				continue
			}
			seen[v] = key
		}
	}

	skillSeen := make(map[string]string)
	var skillKeys []string
	if bg, ok := chosenBackground(ch, rb); ok {
		if bg.Complex() {
			skillKeys = append(skillKeys, slotKeys(backgroundSkillKey, bg.Skills.Slots)...)
		} else {
			for _, name := range bg.Skills.Granted() {
				skillSeen[name] = fmt.Sprintf("the %s background", bg.Name)
			}
		}
	}
	if origin, ok := chosenOrigin(ch, rb); ok {
		if origin.Skills.RequiresChoice() {
			skillKeys = append(skillKeys, slotKeys(originSkillKey, origin.Skills.Slots)...)
		} else {
			for _, name := range origin.Skills.Granted() {
				skillSeen[name] = fmt.Sprintf("the %s origin", origin.Name)
			}
		}
		if origin.Complications.RequiresChoice() {
			check(make(map[string]string), slotKeys(originComplicationKey, origin.Complications.Slots), "complication")
		}
	}
	check(skillSeen, skillKeys, "skill")

	check(make(map[string]string), []string{KeyKitFirst, KeyKitSecond}, "kit")

	featKeys := make([]string, 0, 5)
	for _, level := range featLevels(ch.Level()) {
		featKeys = append(featKeys, featKey(level))
	}
	check(make(map[string]string), featKeys, "feat")

	return issues
}

func slotKeys(keyFn func(int) string, slots int) []string {
	keys := make([]string, 0, slots)
	for slot := 1; slot <= slots; slot++ {
		keys = append(keys, keyFn(slot))
	}
	return keys
}
