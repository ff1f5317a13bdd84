package service

import (
	"ciesta/internal/core/domain"
	"context"
	"errors"
	"sync"
)

type sentMessage struct {
	identity string
	text     string
	format   domain.Format
}

type mockTextSender struct {
	mutex   sync.Mutex
	sent    []sentMessage
	replies []string
	failFor map[string]bool
}

func (m *mockTextSender) Send(_ context.Context, identity string, text string, format domain.Format) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.failFor[identity] {
		return errors.New("blocked by user")
	}

	m.sent = append(m.sent, sentMessage{identity: identity, text: text, format: format})

	return nil
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.replies = append(m.replies, text)

	return len(m.replies), nil
}

func (m *mockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (m *mockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	return err
}
