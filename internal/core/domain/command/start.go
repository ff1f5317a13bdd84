package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"fmt"
	"time"
)

type Start struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewStart(registry service.Registry, textSender port.TextSender, command string) *Start {
	return &Start{
		meta:       meta{command: command, level: domain.LevelPublic},
		registry:   registry,
		textSender: textSender,
	}
}

const (
	startGreeting = "Hello! I am Ciesta, a simple bot made by Ken Developer. 🤖\n\n"
	startWelcome  = "Welcome back, %s! Use /listmenu to see the available commands."
	startSignup   = "To start using Ciesta, please register with /register [username]."
)

func (s *Start) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := startGreeting + startSignup
	if user, ok := s.registry.FindByIdentity(message.Identity()); ok {
		text = startGreeting + fmt.Sprintf(startWelcome, user.Handle)
	}

	return reply(ctx, s.textSender, message, text)
}
