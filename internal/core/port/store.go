package port

import (
	"ciesta/internal/core/domain"
	"context"
)

// UserStore persists the whole registry document. Load on an empty backend
// returns an empty state, not an error.
type UserStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}
