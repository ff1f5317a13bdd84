package service

import (
	"ciesta/internal/core/domain"
)

type Decision struct {
	Required domain.Level
	Denial   domain.Denial
	User     domain.User
}

func (d Decision) Allowed() bool {
	return d.Denial == domain.DenialNone
}

// Err is nil when allowed, otherwise a *domain.PermissionDeniedError.
func (d Decision) Err() error {
	if d.Allowed() {
		return nil
	}

	return &domain.PermissionDeniedError{Required: d.Required, Denial: d.Denial}
}

// Evaluate checks a sender against a level. It has no side effects: denials
// are rendered by the caller.
func Evaluate(level domain.Level, user domain.User, found bool) Decision {
	d := Decision{Required: level, User: user}

	if level == domain.LevelPublic {
		return d
	}

	if !found {
		d.Denial = domain.DenialNotRegistered
		return d
	}

	switch level {
	case domain.LevelPremium:
		if user.Role != domain.RolePremium && user.Role != domain.RoleOwner {
			d.Denial = domain.DenialPremiumRequired
		}
	case domain.LevelOwner:
		if user.Role != domain.RoleOwner {
			d.Denial = domain.DenialOwnerRequired
		}
	}

	return d
}

type Gate struct {
	registry Registry
}

func NewGate(registry Registry) *Gate {
	return &Gate{registry: registry}
}

func (g *Gate) Check(identity string, level domain.Level) Decision {
	user, found := g.registry.FindByIdentity(identity)
	return Evaluate(level, user, found)
}
