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

type Broadcaster interface {
	Broadcast(ctx context.Context, text string, recipients []string) service.BroadcastReport
}

type Broadcast struct {
	meta
	registry    service.Registry
	broadcaster Broadcaster
	textSender  port.TextSender
}

func NewBroadcast(registry service.Registry, broadcaster Broadcaster, textSender port.TextSender,
	command string) *Broadcast {
	return &Broadcast{
		meta: meta{
			command: command,
			level:   domain.LevelOwner,
			arity:   domain.ArityRequired,
			usage:   fmt.Sprintf("Wrong format. Use: %s [message]", command),
		},
		registry:    registry,
		broadcaster: broadcaster,
		textSender:  textSender,
	}
}

const (
	broadcastAnnouncement = "📣 *ANNOUNCEMENT*\n\n%s"
	broadcastStarting     = "📣 Starting broadcast to %d users..."
	broadcastFinished     = "✅ Broadcast finished!\n✅ Sent: %d\n❌ Failed: %d"
)

// Respond runs the whole broadcast before returning. The handler timeout only
// bounds the status replies, never the fan-out itself.
func (b *Broadcast) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", b.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	users := b.registry.ListAll()
	recipients := make([]string, len(users))
	for i, u := range users {
		recipients[i] = u.Identity
	}

	if err := b.status(ctx, timeout, message, fmt.Sprintf(broadcastStarting, len(recipients))); err != nil {
		l.Warn().Err(err).Msg("failed to send broadcast start notice")
	}

	report := b.broadcaster.Broadcast(context.WithoutCancel(ctx),
		fmt.Sprintf(broadcastAnnouncement, escape(message.Argument)), recipients)

	l.Info().Int("sent", report.Sent).Int("failed", report.Failed).Msg("broadcast done")

	return b.status(ctx, timeout, message, fmt.Sprintf(broadcastFinished, report.Sent, report.Failed))
}

func (b *Broadcast) status(ctx context.Context, timeout time.Duration, message *domain.Message, text string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return reply(ctx, b.textSender, message, text)
}
