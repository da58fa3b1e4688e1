package ast

// Accessibility classifies the visibility of a declared name.
// The order reflects visibility intent: Public is the most visible.
type Accessibility uint8

const (
	AccPublic Accessibility = iota
	AccFrozen
	AccPrivate
)

func (a Accessibility) String() string {
	switch a {
	case AccPublic:
		return "public export"
	case AccFrozen:
		return "export"
	default:
		return "private"
	}
}
