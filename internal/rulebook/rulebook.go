// Package rulebook provides the static reference database the builder
// derives character sheets from: backgrounds, origins, classes, roles,
// feats, and kits, each mapping a name to its attribute bundle.
package rulebook

import (
	"fmt"
	"sort"
)

// ChoiceSet is a pool of options with a slot count. Slots == 0 grants the
// whole pool outright; Slots > 0 with a larger pool requires the player to
// pick, which is what makes an origin or background "complex".
type ChoiceSet struct {
	Options []string `yaml:"options"`
	Slots   int      `yaml:"slots"`
}

// Granted returns the options granted without player choice, or nil when
// the set requires picking.
func (c ChoiceSet) Granted() []string {
	if c.RequiresChoice() {
		return nil
	}
	return c.Options
}

// RequiresChoice reports whether the pool offers more options than slots.
func (c ChoiceSet) RequiresChoice() bool {
	return c.Slots > 0 && len(c.Options) > c.Slots
}

// Contains reports whether name is one of the pool's options.
func (c ChoiceSet) Contains(name string) bool {
	for _, opt := range c.Options {
		if opt == name {
			return true
		}
	}
	return false
}

// Background is a character's life before adventuring. It supplies
// starting skills, a trick, and the starting wealth score.
type Background struct {
	Name         string    `yaml:"name"`
	Skills       ChoiceSet `yaml:"skills"`
	Trick        string    `yaml:"trick"`
	Complication string    `yaml:"complication"`
	Wealth       int       `yaml:"wealth"`
}

// Complex reports whether the background forces a skill choice.
func (b Background) Complex() bool {
	return b.Skills.RequiresChoice()
}

// Origin is where a character comes from. It supplies skills and
// complications, and may adjust wealth.
type Origin struct {
	Name          string    `yaml:"name"`
	Skills        ChoiceSet `yaml:"skills"`
	Complications ChoiceSet `yaml:"complications"`
	WealthBonus   int       `yaml:"wealth_bonus"`
}

// Complex reports whether the origin offers more skill or complication
// options than slots, requiring user choice.
func (o Origin) Complex() bool {
	return o.Skills.RequiresChoice() || o.Complications.RequiresChoice()
}

// Class is a combat class. Its trick is the class feature text shown on
// the sheet.
type Class struct {
	Name  string `yaml:"name"`
	Trick string `yaml:"trick"`
}

// Role is a party combat role.
type Role struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Feat is a levelled pick contributing its trick text to the sheet.
type Feat struct {
	Name  string `yaml:"name"`
	Trick string `yaml:"trick"`
}

// KitPower is a single power a kit grants at a level.
type KitPower struct {
	Level int    `yaml:"level"`
	Name  string `yaml:"name"`
}

// Kit is a non-combat advancement track granting powers by level.
type Kit struct {
	Name   string     `yaml:"name"`
	Powers []KitPower `yaml:"powers"`
}

// PowersAtLevel returns the kit powers attained at or below level.
func (k Kit) PowersAtLevel(level int) []string {
	var out []string
	for _, p := range k.Powers {
		if p.Level <= level {
			out = append(out, p.Name)
		}
	}
	return out
}

// Rulebook is the assembled reference database. Lookups are by exact name;
// listings are sorted for stable form rendering.
type Rulebook struct {
	backgrounds map[string]Background
	origins     map[string]Origin
	classes     map[string]Class
	roles       map[string]Role
	feats       map[string]Feat
	kits        map[string]Kit
}

// New returns an empty rulebook.
func New() *Rulebook {
	return &Rulebook{
		backgrounds: make(map[string]Background),
		origins:     make(map[string]Origin),
		classes:     make(map[string]Class),
		roles:       make(map[string]Role),
		feats:       make(map[string]Feat),
		kits:        make(map[string]Kit),
	}
}

// Background looks up a background by name.
func (r *Rulebook) Background(name string) (Background, bool) {
	b, ok := r.backgrounds[name]
	return b, ok
}

// Origin looks up an origin by name.
func (r *Rulebook) Origin(name string) (Origin, bool) {
	o, ok := r.origins[name]
	return o, ok
}

// Class looks up a class by name.
func (r *Rulebook) Class(name string) (Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Role looks up a role by name.
func (r *Rulebook) Role(name string) (Role, bool) {
	ro, ok := r.roles[name]
	return ro, ok
}

// Feat looks up a feat by name.
func (r *Rulebook) Feat(name string) (Feat, bool) {
	f, ok := r.feats[name]
	return f, ok
}

// Kit looks up a kit by name.
func (r *Rulebook) Kit(name string) (Kit, bool) {
	k, ok := r.kits[name]
	return k, ok
}

// BackgroundNames returns all background names, sorted.
func (r *Rulebook) BackgroundNames() []string { return sortedKeys(r.backgrounds) }

// OriginNames returns all origin names, sorted.
func (r *Rulebook) OriginNames() []string { return sortedKeys(r.origins) }

// ClassNames returns all class names, sorted.
func (r *Rulebook) ClassNames() []string { return sortedKeys(r.classes) }

// RoleNames returns all role names, sorted.
func (r *Rulebook) RoleNames() []string { return sortedKeys(r.roles) }

// FeatNames returns all feat names, sorted.
func (r *Rulebook) FeatNames() []string { return sortedKeys(r.feats) }

// KitNames returns all kit names, sorted.
func (r *Rulebook) KitNames() []string { return sortedKeys(r.kits) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// merge folds the entries of a parsed document into the rulebook. Later
// documents override earlier ones by name, which is how homebrew overlays
// shipped content.
func (r *Rulebook) merge(doc *document) error {
	for _, b := range doc.Backgrounds {
		if b.Name == "" {
			return fmt.Errorf("background with empty name")
		}
		r.backgrounds[b.Name] = b
	}
	for _, o := range doc.Origins {
		if o.Name == "" {
			return fmt.Errorf("origin with empty name")
		}
		r.origins[o.Name] = o
	}
	for _, c := range doc.Classes {
		if c.Name == "" {
			return fmt.Errorf("class with empty name")
		}
		r.classes[c.Name] = c
	}
	for _, ro := range doc.Roles {
		if ro.Name == "" {
			return fmt.Errorf("role with empty name")
		}
		r.roles[ro.Name] = ro
	}
	for _, f := range doc.Feats {
		if f.Name == "" {
			return fmt.Errorf("feat with empty name")
		}
		r.feats[f.Name] = f
	}
	for _, k := range doc.Kits {
		if k.Name == "" {
			return fmt.Errorf("kit with empty name")
		}
		r.kits[k.Name] = k
	}
	return nil
}
