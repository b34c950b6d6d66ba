package builder

import (
	"fmt"

	"github.com/dustinanglin/StrikeGen/internal/character"
)

// Stable field keys. Saved sheets depend on these never changing.
const (
	KeyName       = "name"
	KeyPlayer     = "player"
	KeyLevel      = character.KeyLevel
	KeyBackground = "background"
	KeyOrigin     = "origin"
	KeyClass      = "class"
	KeyRole       = "role"
	KeyKitFirst   = "kit-1"
	KeyKitSecond  = "kit-2"
	KeyExtraSkill = "extra-skill"
	KeyExtraComp  = "extra-complication"
	KeyNotes      = "notes"
)

// SecondKitLevel is the level at which the second kit slot opens.
const SecondKitLevel = 5

func backgroundSkillKey(slot int) string {
	return fmt.Sprintf("background-skill-%d", slot)
}

func originSkillKey(slot int) string {
	return fmt.Sprintf("origin-skill-%d", slot)
}

func originComplicationKey(slot int) string {
	return fmt.Sprintf("origin-complication-%d", slot)
}

func featKey(level int) string {
	return fmt.Sprintf("feat-%d", level)
}

// featLevels returns the even levels at or below level, each granting a
// feat pick.
func featLevels(level int) []int {
	var levels []int
	for l := 2; l <= level; l += 2 {
		levels = append(levels, l)
	}
	return levels
}
