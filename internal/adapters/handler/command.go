package handler

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/service"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, message *domain.Message) service.Outcome
}

type Command struct {
	dispatcher Dispatcher
}

func NewCommand(dispatcher Dispatcher) *Command {
	return &Command{dispatcher: dispatcher}
}

// Handle turns a Telegram update into a domain message and hands it to the router.
func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	message := toMessage(update)
	if message == nil {
		return
	}

	log.Debug().Str("message", message.Text).Int64("chatId", message.ChatID).Msg("received message")

	outcome := c.dispatcher.Dispatch(ctx, message)

	log.Debug().Int("messageId", message.ID).Str("outcome", outcome.String()).Msg("message routed")
}

func toMessage(update *models.Update) *domain.Message {
	if update == nil || update.Message == nil {
		return nil
	}

	m := update.Message

	text := m.Text
	if text == "" && len(m.Photo) > 0 {
		text = m.Caption
	}

	if text == "" {
		return nil
	}

	message := &domain.Message{
		ID:     m.ID,
		ChatID: m.Chat.ID,
		Text:   text,
	}

	if m.From != nil {
		message.Username = m.From.Username
		message.FirstName = m.From.FirstName
		message.LastName = m.From.LastName
	}

	return message
}
