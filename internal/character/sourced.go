package character

// Source identifies which character-creation stage produced a derived
// value. Display grouping follows source order.
type Source int

const (
	// SourceBackground marks values granted by the chosen background.
	SourceBackground Source = iota
	// SourceOrigin marks values granted or chosen via the origin.
	SourceOrigin
	// SourceFree marks values the player wrote in freely.
	SourceFree
)

// String returns the display label for the source tier.
func (s Source) String() string {
	switch s {
	case SourceBackground:
		return "background"
	case SourceOrigin:
		return "origin"
	case SourceFree:
		return "free"
	default:
		return "unknown"
	}
}

// Sourced is a derived value tagged with the stage that produced it.
type Sourced struct {
	Name   string
	Source Source
}

// BySource groups sourced values preserving their relative order.
func BySource(values []Sourced) map[Source][]string {
	groups := make(map[Source][]string)
	for _, v := range values {
		groups[v.Source] = append(groups[v.Source], v.Name)
	}
	return groups
}
