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

type roleChange struct {
	role    domain.Role
	success string
	notice  string
}

// SetRole moves a user identified by handle to a fixed role and tells them about it.
type SetRole struct {
	meta
	change     roleChange
	registry   service.Registry
	textSender port.TextSender
}

func NewSetPremium(registry service.Registry, textSender port.TextSender, command string) *SetRole {
	return newSetRole(registry, textSender, command, roleChange{
		role:    domain.RolePremium,
		success: "✅ Successfully made \"%s\" a premium user.",
		notice: "🎉 *Congratulations!* You now have premium access! " +
			"Use /listmenu to see the available premium features.",
	})
}

func NewRevokePremium(registry service.Registry, textSender port.TextSender, command string) *SetRole {
	return newSetRole(registry, textSender, command, roleChange{
		role:    domain.RoleRegular,
		success: "✅ Successfully revoked premium access from \"%s\".",
		notice:  "⚠️ Your premium status has ended or was revoked. Contact the owner for more information.",
	})
}

func newSetRole(registry service.Registry, textSender port.TextSender, command string, change roleChange) *SetRole {
	return &SetRole{
		meta: meta{
			command: command,
			level:   domain.LevelOwner,
			arity:   domain.ArityRequired,
			usage:   fmt.Sprintf("Wrong format. Use: %s [username]", command),
		},
		change:     change,
		registry:   registry,
		textSender: textSender,
	}
}

const (
	roleNotFound = "❌ User with username \"%s\" was not found."
	roleLocked   = "❌ The role of an owner can not be changed."
	roleFailed   = "❌ Something went wrong while updating the user status."
)

func (s *SetRole) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	handle := strings.TrimSpace(message.Argument)

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Str("target", handle).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.registry.SetRole(ctx, handle, s.change.role)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return reply(ctx, s.textSender, message, fmt.Sprintf(roleNotFound, handle))
	case errors.Is(err, domain.ErrOwnerRoleLocked):
		return reply(ctx, s.textSender, message, roleLocked)
	case err != nil:
		l.Error().Err(err).Msg("failed to change role")
		if sendErr := reply(ctx, s.textSender, message, roleFailed); sendErr != nil {
			l.Warn().Err(sendErr).Msg("failed to report role change failure")
		}
		return err
	}

	if err := reply(ctx, s.textSender, message, fmt.Sprintf(s.change.success, handle)); err != nil {
		return err
	}

	target, ok := s.registry.FindByHandle(handle)
	if !ok {
		return nil
	}

	if err := s.textSender.Send(ctx, target.Identity, s.change.notice, domain.Markdown); err != nil {
		l.Warn().Err(err).Str("identity", target.Identity).Msg("failed to notify user about role change")
	}

	return nil
}
