package command

import (
	"ciesta/internal/core/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	meta
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *domain.Message) error {
	return nil
}

func newMockResponder(command string) *MockResponder {
	return &MockResponder{meta: meta{command: command, level: domain.LevelRegistered}}
}

func TestRegister(t *testing.T) {
	cr := &Registry{}
	mr := newMockResponder("/test")

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)
}

func TestGetNotRegistered(t *testing.T) {
	cr := &Registry{}

	_, err := cr.Get("test")
	require.EqualError(t, err, "can't fetch command, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &Registry{}
	cr.Register(newMockResponder("/test"))

	_, err := cr.Get("/foo")
	require.EqualError(t, err, "command not found")
}

func TestGetIsCaseSensitive(t *testing.T) {
	cr := &Registry{}
	cr.Register(newMockResponder("/test"))

	_, err := cr.Get("/TEST")
	require.Error(t, err)
}

func TestGetCommandFound(t *testing.T) {
	cr := &Registry{}
	cr.Register(newMockResponder("/test"))

	cmd, err := cr.Get("/test")
	require.NoError(t, err)
	assert.NotNil(t, cmd)

	assert.Equal(t, "/test", cmd.GetCommand())
	assert.Equal(t, domain.LevelRegistered, cmd.RequiredLevel())
	assert.Equal(t, domain.ArityNone, cmd.Arity())
}

func TestListCommands(t *testing.T) {
	cr := &Registry{}
	cr.Register(newMockResponder("/foo"))
	cr.Register(newMockResponder("/bar"))

	assert.Equal(t, []string{"/bar", "/foo"}, cr.ListCommands())
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "ken\\_dev \\*bold\\* \\`code\\` \\[link]", escape("ken_dev *bold* `code` [link]"))
}

func TestReplyWrapsSendFailure(t *testing.T) {
	mockSender := new(MockSender)
	msg := &domain.Message{ChatID: 5}

	mockSender.On("SendMessageReply", mock.Anything, msg, "hi").Return(0, errBoom)
	mockSender.On("Send", mock.Anything, "5", "hi", domain.Markdown).Return(errBoom)

	err := reply(t.Context(), mockSender, msg, "hi")
	require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
	require.ErrorIs(t, err, errBoom)

	err = sendMarkdown(t.Context(), mockSender, msg, "hi")
	require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
}
