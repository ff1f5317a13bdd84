package service

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

type UpsertResult int

const (
	Added UpsertResult = iota + 1
	Updated
)

func (r UpsertResult) String() string {
	switch r {
	case Added:
		return "added"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

type Registration struct {
	Identity       string
	Handle         string
	DisplayName    string
	ExternalHandle string
}

// StorageError wraps a failed load or flush. It matches domain.ErrStorage with errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{domain.ErrStorage, e.Err}
}

// Registry is the read/write surface handlers use.
type Registry interface {
	Upsert(ctx context.Context, reg Registration) (UpsertResult, error)
	FindByIdentity(identity string) (domain.User, bool)
	FindByHandle(handle string) (domain.User, bool)
	SetRole(ctx context.Context, handle string, role domain.Role) error
	ListAll() []domain.User
}

type UserRegistry struct {
	store  port.UserStore
	owners map[string]struct{}
	now    func() time.Time

	mutex *sync.RWMutex
	users []domain.User
	// byIdentity and byHandle hold indices into users; handles are keyed lowercased.
	byIdentity map[string]int
	byHandle   map[string]int
}

type RegistryOption func(*UserRegistry)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *UserRegistry) {
		r.now = now
	}
}

// NewUserRegistry loads the persisted state once. owners is the fixed set of
// identities that receive the owner role on first registration.
func NewUserRegistry(ctx context.Context, store port.UserStore, owners []string,
	opts ...RegistryOption) (*UserRegistry, error) {
	r := &UserRegistry{
		store:  store,
		owners: make(map[string]struct{}, len(owners)),
		now:    time.Now,
		mutex:  &sync.RWMutex{},
	}

	for _, o := range owners {
		if o = strings.TrimSpace(o); o != "" {
			r.owners[o] = struct{}{}
		}
	}

	for _, opt := range opts {
		opt(r)
	}

	state, err := store.Load(ctx)
	if err != nil {
		err = &StorageError{Op: "load", Err: err}
		log.Error().Err(err).Msg("failed to load user registry")
		return nil, err
	}

	r.apply(normalize(state))

	log.Info().Int("users", len(r.users)).Int("owners", len(r.owners)).Msg("user registry loaded")

	return r, nil
}

func normalize(state domain.State) domain.State {
	out := state.Clone()
	for i := range out.Users {
		u := &out.Users[i]
		if !u.Role.Valid() {
			u.Role = domain.RoleRegular
		}
		if u.UpdatedAt.Before(u.RegisteredAt) {
			u.UpdatedAt = u.RegisteredAt
		}
	}

	return out
}

func (r *UserRegistry) apply(state domain.State) {
	r.users = state.Users
	r.byIdentity = make(map[string]int, len(r.users))
	r.byHandle = make(map[string]int, len(r.users))

	for i, u := range r.users {
		r.byIdentity[u.Identity] = i
		r.byHandle[strings.ToLower(u.Handle)] = i
	}
}

// commit flushes next to the store and only then swaps it in.
func (r *UserRegistry) commit(ctx context.Context, next domain.State) error {
	if err := r.store.Save(ctx, next); err != nil {
		err = &StorageError{Op: "save", Err: err}
		log.Error().Err(err).Msg("failed to flush user registry")
		return err
	}

	r.apply(next)

	return nil
}

func (r *UserRegistry) isOwner(identity string) bool {
	_, ok := r.owners[identity]
	return ok
}

func (r *UserRegistry) timestamp(since time.Time) time.Time {
	now := r.now().UTC()
	if now.Before(since) {
		return since
	}

	return now
}

func (r *UserRegistry) Upsert(ctx context.Context, reg Registration) (UpsertResult, error) {
	identity := strings.TrimSpace(reg.Identity)
	handle := strings.TrimSpace(reg.Handle)

	if identity == "" {
		return 0, domain.ErrMissingIdentity
	}

	if utf8.RuneCountInString(handle) < domain.MinHandleLength {
		return 0, domain.ErrHandleTooShort
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if idx, ok := r.byHandle[strings.ToLower(handle)]; ok && r.users[idx].Identity != identity {
		return 0, domain.ErrHandleTaken
	}

	next := domain.State{Users: make([]domain.User, len(r.users))}
	copy(next.Users, r.users)

	if idx, ok := r.byIdentity[identity]; ok {
		u := &next.Users[idx]
		u.Handle = handle
		u.DisplayName = reg.DisplayName
		u.ExternalHandle = reg.ExternalHandle
		u.UpdatedAt = r.timestamp(u.RegisteredAt)

		if err := r.commit(ctx, next); err != nil {
			return 0, err
		}

		log.Info().Str("identity", identity).Str("handle", handle).Msg("user updated")

		return Updated, nil
	}

	role := domain.RoleRegular
	if r.isOwner(identity) {
		role = domain.RoleOwner
	}

	now := r.now().UTC()
	next.Users = append(next.Users, domain.User{
		Identity:       identity,
		Handle:         handle,
		DisplayName:    reg.DisplayName,
		ExternalHandle: reg.ExternalHandle,
		Role:           role,
		RegisteredAt:   now,
		UpdatedAt:      now,
	})

	if err := r.commit(ctx, next); err != nil {
		return 0, err
	}

	log.Info().Str("identity", identity).Str("handle", handle).Str("role", string(role)).Msg("user added")

	return Added, nil
}

func (r *UserRegistry) FindByIdentity(identity string) (domain.User, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx, ok := r.byIdentity[identity]
	if !ok {
		return domain.User{}, false
	}

	return r.users[idx], true
}

func (r *UserRegistry) FindByHandle(handle string) (domain.User, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx, ok := r.byHandle[strings.ToLower(strings.TrimSpace(handle))]
	if !ok {
		return domain.User{}, false
	}

	return r.users[idx], true
}

// SetRole changes the role of the user holding handle. The owner role is
// reserved for configured identities, so it can neither be granted nor taken
// away here.
func (r *UserRegistry) SetRole(ctx context.Context, handle string, role domain.Role) error {
	if !role.Valid() || role == domain.RoleOwner {
		return domain.ErrInvalidRole
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	idx, ok := r.byHandle[strings.ToLower(strings.TrimSpace(handle))]
	if !ok {
		return domain.ErrUserNotFound
	}

	if r.users[idx].Role == domain.RoleOwner {
		return domain.ErrOwnerRoleLocked
	}

	next := domain.State{Users: make([]domain.User, len(r.users))}
	copy(next.Users, r.users)

	u := &next.Users[idx]
	u.Role = role
	u.UpdatedAt = r.timestamp(u.RegisteredAt)

	if err := r.commit(ctx, next); err != nil {
		return err
	}

	log.Info().Str("identity", u.Identity).Str("handle", u.Handle).Str("role", string(role)).Msg("role changed")

	return nil
}

func (r *UserRegistry) ListAll() []domain.User {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]domain.User, len(r.users))
	copy(users, r.users)

	return users
}
