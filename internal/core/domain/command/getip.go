package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type GetIP struct {
	meta
	ipFetcher  port.IPFetcher
	textSender port.TextSender
}

func NewGetIP(ipFetcher port.IPFetcher, textSender port.TextSender, command string) *GetIP {
	return &GetIP{
		meta:       meta{command: command, level: domain.LevelRegistered},
		ipFetcher:  ipFetcher,
		textSender: textSender,
	}
}

const (
	ipTemplate = "Your IP: %s"
	ipFailed   = "Sorry, could not fetch IP information right now."
)

func (g *GetIP) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", g.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go g.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	ip, err := g.ipFetcher.PublicIP(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch public ip")
		return reply(ctx, g.textSender, message, ipFailed)
	}

	l.Debug().Str("ip", ip).Msg("fetched public ip")

	return reply(ctx, g.textSender, message, fmt.Sprintf(ipTemplate, ip))
}
