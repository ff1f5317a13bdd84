package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Register struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewRegister(registry service.Registry, textSender port.TextSender, command string) *Register {
	return &Register{
		meta: meta{
			command: command,
			level:   domain.LevelPublic,
			arity:   domain.ArityRequired,
			usage:   fmt.Sprintf("Username can not be empty! Example: %s Ciesta", command),
		},
		registry:   registry,
		textSender: textSender,
	}
}

const (
	registerAdded   = "Registration successful! Welcome, %s! 🎉\n\nUse /listmenu to see the available commands."
	registerUpdated = "Your data has been updated, %s! ✅\n\nUse /listmenu to see the available commands."
	registerTaken   = "Username \"%s\" is already taken. Please choose another username."
	registerShort   = "Username must be at least %d characters long."
	registerFailed  = "Sorry, something went wrong while registering your account. Please try again later."
)

func (r *Register) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", r.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	handle := strings.TrimSpace(message.Argument)

	result, err := r.registry.Upsert(ctx, service.Registration{
		Identity:       message.Identity(),
		Handle:         handle,
		DisplayName:    message.DisplayName(),
		ExternalHandle: message.Username,
	})

	switch {
	case errors.Is(err, domain.ErrHandleTooShort):
		return reply(ctx, r.textSender, message, fmt.Sprintf(registerShort, domain.MinHandleLength))
	case errors.Is(err, domain.ErrHandleTaken):
		return reply(ctx, r.textSender, message, fmt.Sprintf(registerTaken, handle))
	case err != nil:
		l.Error().Err(err).Msg("registration failed")
		if sendErr := reply(ctx, r.textSender, message, registerFailed); sendErr != nil {
			l.Warn().Err(sendErr).Msg("failed to report registration failure")
		}
		return err
	}

	l.Debug().Str("result", result.String()).Msg("registered")

	if result == service.Added {
		return reply(ctx, r.textSender, message, fmt.Sprintf(registerAdded, handle))
	}

	return reply(ctx, r.textSender, message, fmt.Sprintf(registerUpdated, handle))
}
