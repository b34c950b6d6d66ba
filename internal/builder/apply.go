package builder

import (
	"fmt"
	"strings"

	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

// Apply validates value against the currently visible field for key and
// records it. Keys outside the visible form set are rejected, so a caller
// cannot answer a choice slot its origin does not offer. After a
// successful edit the engine clears any choice responses the edit made
// stale: changing origin drops picks the new origin no longer offers, and
// lowering level drops feats and the second kit above the new level.
func Apply(ch *character.Character, rb *rulebook.Rulebook, key, value string) error {
	field, ok := Lookup(Forms(ch, rb), key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if err := field.Check(value); err != nil {
		return err
	}
	if field.Kind == KindNumber {
		// Store the canonical form so readers parse the same number
		// Check accepted.
		value = strings.TrimSpace(value)
	}

	ch.Set(key, value)
	reconcile(ch, rb)
	return nil
}

// Unset removes a response. Only deletable fields may be unset; required
// fields can be re-answered but never removed except by a full reset.
func Unset(ch *character.Character, rb *rulebook.Rulebook, key string) error {
	field, ok := Lookup(Forms(ch, rb), key)
	if !ok {
		// The key may be a leftover answer whose field is no longer
		// visible; allow clearing those.
		if ch.Has(key) {
			ch.Delete(key)
			reconcile(ch, rb)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if !field.Deletable {
		return fmt.Errorf("%w: %s", ErrNotDeletable, key)
	}
	ch.Delete(key)
	reconcile(ch, rb)
	return nil
}

// Reconcile clears stale engine-owned responses after external changes,
// such as a homebrew rulebook reload or an imported sheet.
func Reconcile(ch *character.Character, rb *rulebook.Rulebook) {
	reconcile(ch, rb)
}

// reconcile sweeps the choice-slot and level-dependent keys, deleting any
// whose field is no longer visible or whose value is no longer offered.
// Freeform responses are never touched.
func reconcile(ch *character.Character, rb *rulebook.Rulebook) {
	forms := Forms(ch, rb)
	for _, key := range ch.Keys() {
		if !engineOwned(key) {
			continue
		}
		field, visible := Lookup(forms, key)
		if !visible {
			ch.Delete(key)
			continue
		}
		if field.Kind != KindDropdown {
			continue
		}
		value, _ := ch.Get(key)
		if field.Check(value) != nil {
			ch.Delete(key)
		}
	}
}

// engineOwned reports whether the engine may clear the key on its own.
// These are exactly the generated choice slots and level-gated picks.
func engineOwned(key string) bool {
	switch key {
	case KeyKitSecond:
		return true
	}
	for _, prefix := range []string{"background-skill-", "origin-skill-", "origin-complication-", "feat-"} {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
