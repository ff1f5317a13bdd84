package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, identity string, text string, format domain.Format) error {
	args := m.Called(ctx, identity, text, format)
	return args.Error(0)
}

func (m *MockSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	args := m.Called(ctx, message, text)
	return args.Int(0), args.Error(1)
}

func (m *MockSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {
	// mocked
}

func (m *MockSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	return err
}

type MockImageSender struct {
	mock.Mock
}

func (m *MockImageSender) SendImageURL(ctx context.Context, identity string, url string) error {
	args := m.Called(ctx, identity, url)
	return args.Error(0)
}

type memStore struct {
	state   domain.State
	saveErr error
}

func (s *memStore) Load(_ context.Context) (domain.State, error) {
	return s.state.Clone(), nil
}

func (s *memStore) Save(_ context.Context, state domain.State) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.state = state.Clone()
	return nil
}

var registeredAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// newRegistry returns a registry holding owner "1" (boss), regular "2" (kenny)
// and premium "3" (suki).
func newRegistry(t *testing.T, store *memStore) *service.UserRegistry {
	t.Helper()

	if store == nil {
		store = &memStore{}
	}

	store.state = domain.State{Users: []domain.User{
		{Identity: "1", Handle: "boss", DisplayName: "The Boss", Role: domain.RoleOwner,
			RegisteredAt: registeredAt, UpdatedAt: registeredAt},
		{Identity: "2", Handle: "kenny", DisplayName: "Ken Dev", ExternalHandle: "ken_dev",
			Role: domain.RoleRegular, RegisteredAt: registeredAt, UpdatedAt: registeredAt},
		{Identity: "3", Handle: "suki", DisplayName: "Suki", Role: domain.RolePremium,
			RegisteredAt: registeredAt, UpdatedAt: registeredAt},
	}}

	registry, err := service.NewUserRegistry(t.Context(), store, []string{"1"},
		service.WithClock(func() time.Time { return registeredAt.Add(time.Hour) }))
	require.NoError(t, err)

	return registry
}

var errBoom = errors.New("boom")
