package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Status reports the bot state together with the sender's account.
type Status struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewStatus(registry service.Registry, textSender port.TextSender, command string) *Status {
	return &Status{
		meta:       meta{command: command, level: domain.LevelRegistered},
		registry:   registry,
		textSender: textSender,
	}
}

const statusTemplate = `🤖 *Ciesta Bot Status*

✅ Bot is active and connected
👤 Username: %s
🌟 Status: %s
📅 Registered at: %s`

func (s *Status) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, ok := s.registry.FindByIdentity(message.Identity())
	if !ok {
		return reply(ctx, s.textSender, message, service.DenialText(domain.DenialNotRegistered))
	}

	return sendMarkdown(ctx, s.textSender, message, fmt.Sprintf(statusTemplate,
		escape(user.Handle), user.Role.Title(), user.RegisteredAt.Format(dateLayout)))
}

// Stats lists everything the registry stores about the sender.
type Stats struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewStats(registry service.Registry, textSender port.TextSender, command string) *Stats {
	return &Stats{
		meta:       meta{command: command, level: domain.LevelRegistered},
		registry:   registry,
		textSender: textSender,
	}
}

const statsTemplate = `🤖 Statistics %s

👤 | Username : %s
📌 | User Id : %s
🌟 | Status : %s
🖇️ | Telegram Name : %s
📅 | Register Date : %s`

var roleBadges = map[domain.Role]string{
	domain.RoleRegular: "Regular🧸",
	domain.RolePremium: "Premium💸",
	domain.RoleOwner:   "Owner👑",
}

func (s *Stats) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, ok := s.registry.FindByIdentity(message.Identity())
	if !ok {
		return reply(ctx, s.textSender, message, service.DenialText(domain.DenialNotRegistered))
	}

	external := "-"
	if user.ExternalHandle != "" {
		external = "@" + user.ExternalHandle
	}

	log.Debug().Str("identity", user.Identity).Msg("sending stats")

	handle := escape(user.Handle)

	return sendMarkdown(ctx, s.textSender, message, fmt.Sprintf(statsTemplate,
		handle, handle, user.Identity, roleBadges[user.Role], escape(external),
		user.RegisteredAt.Format(dateLayout)))
}
