package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

func testRulebook(t *testing.T) *rulebook.Rulebook {
	t.Helper()
	rb, err := rulebook.Load("")
	require.NoError(t, err)
	return rb
}

func TestForms_KeysAreUnique(t *testing.T) {
	rb := testRulebook(t)

	// Exercise the widest form set: complex background and origin, class
	// chosen, max level.
	ch := character.New()
	ch.Set(KeyBackground, "Disgraced Scholar")
	ch.Set(KeyOrigin, "Fey Changeling")
	ch.Set(KeyClass, "Archer")
	ch.Set(KeyLevel, "10")

	seen := make(map[string]bool)
	for _, form := range Forms(ch, rb) {
		for _, field := range form.Fields {
			assert.False(t, seen[field.Key], "duplicate field key %q", field.Key)
			seen[field.Key] = true
		}
	}
}

func TestForms_SimpleOriginHasNoChoiceSlots(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	ch.Set(KeyOrigin, "Human")

	forms := Forms(ch, rb)
	_, ok := Lookup(forms, "origin-skill-1")
	assert.False(t, ok, "simple origin must not open skill slots")
	_, ok = Lookup(forms, "origin-complication-1")
	assert.False(t, ok)
}

func TestForms_ComplexOriginOpensSlots(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	ch.Set(KeyOrigin, "Fey Changeling")

	forms := Forms(ch, rb)

	f, ok := Lookup(forms, "origin-skill-1")
	require.True(t, ok)
	assert.Equal(t, KindDropdown, f.Kind)
	assert.True(t, f.Deletable)
	assert.Contains(t, f.Options, "Glamour")

	_, ok = Lookup(forms, "origin-skill-2")
	assert.True(t, ok, "two skill slots for a two-slot pool")
	_, ok = Lookup(forms, "origin-skill-3")
	assert.False(t, ok, "no slot beyond the pool's slot count")

	_, ok = Lookup(forms, "origin-complication-1")
	assert.True(t, ok)
}

func TestForms_ComplexBackgroundOpensSlots(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	ch.Set(KeyBackground, "Disgraced Scholar")

	forms := Forms(ch, rb)
	for _, key := range []string{"background-skill-1", "background-skill-2", "background-skill-3"} {
		_, ok := Lookup(forms, key)
		assert.True(t, ok, "expected slot %s", key)
	}
	_, ok := Lookup(forms, "background-skill-4")
	assert.False(t, ok)
}

func TestForms_KitsAndFeatsGatedOnClass(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	ch.Set(KeyLevel, "6")

	forms := Forms(ch, rb)
	_, ok := Lookup(forms, KeyKitFirst)
	assert.False(t, ok, "kit slots hidden before a class is chosen")
	_, ok = Lookup(forms, "feat-2")
	assert.False(t, ok)

	ch.Set(KeyClass, "Archer")
	forms = Forms(ch, rb)
	_, ok = Lookup(forms, KeyKitFirst)
	assert.True(t, ok)
	for _, key := range []string{"feat-2", "feat-4", "feat-6"} {
		_, ok = Lookup(forms, key)
		assert.True(t, ok, "expected %s at level 6", key)
	}
	_, ok = Lookup(forms, "feat-8")
	assert.False(t, ok, "no feat slot beyond the current level")
}

func TestForms_SecondKitOpensAtLevelFive(t *testing.T) {
	rb := testRulebook(t)
	ch := character.New()
	ch.Set(KeyClass, "Magician")

	_, ok := Lookup(Forms(ch, rb), KeyKitSecond)
	assert.False(t, ok, "second kit closed at level 1")

	ch.Set(KeyLevel, "5")
	_, ok = Lookup(Forms(ch, rb), KeyKitSecond)
	assert.True(t, ok)
}

func TestField_Check(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr bool
	}{
		{name: "text ok", field: Field{Key: "name", Kind: KindText}, value: "Pike"},
		{name: "text blank", field: Field{Key: "name", Kind: KindText}, value: "  ", wantErr: true},
		{name: "dropdown ok", field: Field{Key: "class", Kind: KindDropdown, Options: []string{"Archer"}}, value: "Archer"},
		{name: "dropdown miss", field: Field{Key: "class", Kind: KindDropdown, Options: []string{"Archer"}}, value: "Pirate", wantErr: true},
		{name: "number ok", field: Field{Key: "level", Kind: KindNumber, Min: 1, Max: 10}, value: "10"},
		{name: "number low", field: Field{Key: "level", Kind: KindNumber, Min: 1, Max: 10}, value: "0", wantErr: true},
		{name: "number high", field: Field{Key: "level", Kind: KindNumber, Min: 1, Max: 10}, value: "11", wantErr: true},
		{name: "number garbage", field: Field{Key: "level", Kind: KindNumber, Min: 1, Max: 10}, value: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Check(tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
		})
	}
}
