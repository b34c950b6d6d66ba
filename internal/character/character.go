// Package character holds the flat response model a character sheet is
// built from. A character is nothing more than the answers a player has
// given so far, keyed by stable field keys; everything displayable is
// derived from it against the rulebook.
package character

import (
	"sort"
	"strconv"
	"strings"
)

// Level bounds for all characters.
const (
	MinLevel = 1
	MaxLevel = 10
)

// KeyLevel is the field key holding the character level.
const KeyLevel = "level"

// Character maps field keys to the player's responses. It grows by key as
// forms are filled; keys are only removed by the builder's stale-choice
// clearing or by Reset.
type Character struct {
	responses map[string]string
}

// New returns an empty character.
func New() *Character {
	return &Character{responses: make(map[string]string)}
}

// FromResponses builds a character from an existing response map. The map
// is copied.
func FromResponses(responses map[string]string) *Character {
	ch := New()
	for k, v := range responses {
		ch.responses[k] = v
	}
	return ch
}

// Get returns the response for key and whether it has been answered.
func (c *Character) Get(key string) (string, bool) {
	v, ok := c.responses[key]
	return v, ok
}

// GetInt returns the response for key parsed as an integer. Surrounding
// whitespace is tolerated so imported sheets parse the same way typed
// answers do.
func (c *Character) GetInt(key string) (int, bool) {
	v, ok := c.responses[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set records a response. Validation belongs to the builder; Set itself
// never rejects a value.
func (c *Character) Set(key, value string) {
	c.responses[key] = value
}

// Delete removes a response if present.
func (c *Character) Delete(key string) {
	delete(c.responses, key)
}

// Has reports whether key has been answered.
func (c *Character) Has(key string) bool {
	_, ok := c.responses[key]
	return ok
}

// Len returns the number of answered keys.
func (c *Character) Len() int {
	return len(c.responses)
}

// Keys returns all answered keys in sorted order.
func (c *Character) Keys() []string {
	keys := make([]string, 0, len(c.responses))
	for k := range c.responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Responses returns a copy of the full response map, for persistence and
// export.
func (c *Character) Responses() map[string]string {
	out := make(map[string]string, len(c.responses))
	for k, v := range c.responses {
		out[k] = v
	}
	return out
}

// Level returns the character level, clamped to [MinLevel, MaxLevel]. A
// missing or unparseable level reads as MinLevel.
func (c *Character) Level() int {
	n, ok := c.GetInt(KeyLevel)
	if !ok {
		return MinLevel
	}
	if n < MinLevel {
		return MinLevel
	}
	if n > MaxLevel {
		return MaxLevel
	}
	return n
}

// Reset removes every response.
func (c *Character) Reset() {
	c.responses = make(map[string]string)
}
