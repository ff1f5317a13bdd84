package domain

import "fmt"

// Level is the minimum registry state a command requires. Each level
// includes the requirements of the one before it.
type Level int

const (
	LevelPublic Level = iota
	LevelRegistered
	LevelPremium
	LevelOwner
)

func (l Level) String() string {
	switch l {
	case LevelRegistered:
		return "registered"
	case LevelPremium:
		return "premium"
	case LevelOwner:
		return "owner"
	default:
		return "public"
	}
}

type Denial int

const (
	DenialNone Denial = iota
	DenialNotRegistered
	DenialPremiumRequired
	DenialOwnerRequired
)

// TemplateKey names the reply template the transport renders for a denial.
func (d Denial) TemplateKey() string {
	switch d {
	case DenialNotRegistered:
		return "not_registered"
	case DenialPremiumRequired:
		return "premium_required"
	case DenialOwnerRequired:
		return "owner_required"
	default:
		return ""
	}
}

type PermissionDeniedError struct {
	Required Level
	Denial   Denial
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s level required (%s)", e.Required, e.Denial.TemplateKey())
}

type Arity int

const (
	ArityNone Arity = iota
	ArityOptional
	ArityRequired
)
