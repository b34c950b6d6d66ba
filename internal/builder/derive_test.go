package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/character"
)

func TestSkills_GrantedAndChosenAndFree(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()

	// Simple background grants its whole pool.
	require.NoError(t, Apply(ch, rb, KeyBackground, "Caravan Guard"))
	// Complex origin contributes only answered slots.
	require.NoError(t, Apply(ch, rb, KeyOrigin, "Fey Changeling"))
	require.NoError(t, Apply(ch, rb, "origin-skill-1", "Glamour"))
	// Free addition.
	require.NoError(t, Apply(ch, rb, KeyExtraSkill, "Juggling"))

	groups := character.BySource(Skills(ch, rb))
	assert.Equal(t, []string{"Endurance", "Haggling", "Spear Fighting"}, groups[character.SourceBackground])
	assert.Equal(t, []string{"Glamour"}, groups[character.SourceOrigin])
	assert.Equal(t, []string{"Juggling"}, groups[character.SourceFree])
}

func TestSkills_ComplexBackgroundUsesChosenSlots(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	require.NoError(t, Apply(ch, rb, KeyBackground, "Disgraced Scholar"))
	require.NoError(t, Apply(ch, rb, "background-skill-1", "Forgery"))
	require.NoError(t, Apply(ch, rb, "background-skill-2", "Libraries"))

	groups := character.BySource(Skills(ch, rb))
	assert.Equal(t, []string{"Forgery", "Libraries"}, groups[character.SourceBackground],
		"complex background must contribute picks, not the whole pool")
}

func TestComplications(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	require.NoError(t, Apply(ch, rb, KeyBackground, "Disgraced Scholar"))
	require.NoError(t, Apply(ch, rb, KeyOrigin, "Fey Changeling"))
	require.NoError(t, Apply(ch, rb, "origin-complication-1", "Iron Burns"))
	require.NoError(t, Apply(ch, rb, KeyExtraComp, "Afraid of Heights"))

	groups := character.BySource(Complications(ch, rb))
	assert.Equal(t, []string{"Barred from the Grand Academy"}, groups[character.SourceBackground])
	assert.Equal(t, []string{"Iron Burns"}, groups[character.SourceOrigin])
	assert.Equal(t, []string{"Afraid of Heights"}, groups[character.SourceFree])
}

func TestComplications_SimpleOriginGrantsAll(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	require.NoError(t, Apply(ch, rb, KeyOrigin, "Human"))

	groups := character.BySource(Complications(ch, rb))
	assert.Equal(t, []string{"Short-Lived"}, groups[character.SourceOrigin])
}

func TestTricks(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	require.NoError(t, Apply(ch, rb, KeyBackground, "Caravan Guard"))
	require.NoError(t, Apply(ch, rb, KeyClass, "Archer"))
	require.NoError(t, Apply(ch, rb, KeyLevel, "4"))
	require.NoError(t, Apply(ch, rb, "feat-2", "Silver Tongue"))

	tricks := Tricks(ch, rb)
	require.Len(t, tricks, 3, "background, class, and one feat trick")
	assert.Contains(t, tricks[0], "Road Sense")
	assert.Contains(t, tricks[1], "Pinning Shot")
	assert.Contains(t, tricks[2], "social check")
}

func TestTricks_IgnoresFeatsAboveLevel(t *testing.T) {
	rb := testRulebook(t)
	ch := character.FromResponses(map[string]string{
		KeyClass: "Archer",
		KeyLevel: "2",
		"feat-2": "Trapsense",
		"feat-4": "Second Wind", // stale, above level
	})

	tricks := Tricks(ch, rb)
	require.Len(t, tricks, 2, "class trick plus the level-2 feat only")
}

func TestWealth(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	assert.Equal(t, 0, Wealth(ch, rb), "no background, no wealth")

	require.NoError(t, Apply(ch, rb, KeyBackground, "Wealthy Dilettante"))
	assert.Equal(t, 5, Wealth(ch, rb))

	require.NoError(t, Apply(ch, rb, KeyOrigin, "Gutter Goblin"))
	assert.Equal(t, 4, Wealth(ch, rb), "origin modifier applies")
}

func TestKitPowers(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	require.NoError(t, Apply(ch, rb, KeyClass, "Magician"))
	require.NoError(t, Apply(ch, rb, KeyLevel, "5"))
	require.NoError(t, Apply(ch, rb, KeyKitFirst, "Flight"))
	require.NoError(t, Apply(ch, rb, KeyKitSecond, "Shadowstep"))

	grants := KitPowers(ch, rb)
	require.Len(t, grants, 2)
	assert.Equal(t, "Flight", grants[0].Kit)
	assert.Equal(t, []string{"Hover", "Soar"}, grants[0].Powers)
	assert.Equal(t, "Shadowstep", grants[1].Kit)
	assert.Equal(t, []string{"Step Between Shadows", "Carry a Passenger"}, grants[1].Powers)
}
