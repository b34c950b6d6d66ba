// Package builder is the derivation and validation engine. It turns a
// character's flat responses plus the rulebook into the currently visible
// form set and the computed sheet attributes, and guards every edit so the
// responses stay consistent with what the forms offer.
package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField indicates the key names no currently visible field.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue indicates the value fails the field's validation.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotDeletable indicates an attempt to unset a required field.
	ErrNotDeletable = errors.New("field is not deletable")
)

// Kind discriminates the field variants a form can carry.
type Kind int

const (
	// KindText is a freeform text field.
	KindText Kind = iota
	// KindDropdown restricts the response to one of Options.
	KindDropdown
	// KindNumber restricts the response to an integer in [Min, Max].
	KindNumber
)

// Field is a single entry in a rendered form, tagged with a stable key and
// a deletability flag. Options applies to dropdowns, Min/Max to numbers.
type Field struct {
	Key       string
	Label     string
	Kind      Kind
	Deletable bool
	Options   []string
	Min, Max  int
}

// Check validates a candidate response against the field variant.
func (f Field) Check(value string) error {
	switch f.Kind {
	case KindText:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be blank", ErrInvalidValue, f.Key)
		}
		return nil
	case KindDropdown:
		for _, opt := range f.Options {
			if opt == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %q is not an option for %s", ErrInvalidValue, value, f.Key)
	case KindNumber:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s expects a number", ErrInvalidValue, f.Key)
		}
		if n < f.Min || n > f.Max {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidValue, f.Key, f.Min, f.Max)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s has unknown kind", ErrInvalidValue, f.Key)
	}
}

// Form is an ordered sequence of fields under a title.
type Form struct {
	Title  string
	Fields []Field
}

// Lookup finds a field by key across a form set.
func Lookup(forms []Form, key string) (Field, bool) {
	for _, form := range forms {
		for _, f := range form.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}
