package sender

import (
	"ciesta/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// TelegramMessageLimit is the maximum number of characters in a single message.
const TelegramMessageLimit = 4096

const ChatActionRepeatSeconds = 5

type Telegram struct {
	bot            TelegramBot
	actionInterval time.Duration
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot, actionInterval: ChatActionRepeatSeconds * time.Second}
}

// chatID keeps numeric identities numeric and passes anything else, like @channel names, through.
func chatID(identity string) any {
	if id, err := strconv.ParseInt(identity, 10, 64); err == nil {
		return id
	}

	return identity
}

// chunk splits text into messages Telegram accepts. Cuts land after the last line
// break that fits, so Markdown entities on a single line stay intact.
func chunk(text string) []string {
	runes := []rune(text)
	if len(runes) <= TelegramMessageLimit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/TelegramMessageLimit+1)
	for len(runes) > TelegramMessageLimit {
		n := TelegramMessageLimit
		if nl := lastNewline(runes[:n]); nl > 0 {
			n = nl + 1
		}

		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}

	return -1
}

func (s *Telegram) Send(ctx context.Context, identity string, text string, format domain.Format) error {
	var parseMode models.ParseMode
	if format == domain.Markdown {
		parseMode = models.ParseModeMarkdownV1
	}

	for _, part := range chunk(text) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID(identity),
			Text:      part,
			ParseMode: parseMode,
		})
		if err != nil {
			log.Warn().Err(err).Str("identity", identity).Msg("failed to send message")
			return err
		}
	}

	return nil
}

// SendMessageReply answers message in plain text and returns the ID of the last sent chunk.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var lastID int

	for _, part := range chunk(text) {
		msg, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   part,
			ReplyParameters: &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			},
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send reply")
			return 0, err
		}

		lastID = msg.ID
	}

	return lastID, nil
}

func (s *Telegram) SendImageURL(ctx context.Context, identity string, url string) error {
	_, err := s.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID(identity),
		Photo:  &models.InputFileString{Data: url},
	})
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to send photo")
		return err
	}

	return nil
}

const errorReply = "⚠️ Sorry, something went wrong: %s"

// NotifyAndReturnError tells the sender that their command failed and hands err back.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	if _, sendErr := s.SendMessageReply(ctx, message, fmt.Sprintf(errorReply, err)); sendErr != nil {
		return errors.Join(err, fmt.Errorf("failed to send error notification: %w", sendErr))
	}

	return err
}

// SendChatAction repeats action until ctx is done, since Telegram clears it after a few seconds.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	chatAction := models.ChatActionTyping
	if action == domain.SendingPhoto {
		chatAction = models.ChatActionUploadPhoto
	}

	ticker := time.NewTicker(s.actionInterval)
	defer ticker.Stop()

	log.Debug().Int64("chatID", chatID).Msg("starting action routine")
	for {
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			log.Debug().Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}
