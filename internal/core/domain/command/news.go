package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type TopNews struct {
	meta
	fetcher    port.NewsFetcher
	textSender port.TextSender
}

func NewTopNews(fetcher port.NewsFetcher, textSender port.TextSender, command string) *TopNews {
	return &TopNews{
		meta:       meta{command: command, level: domain.LevelPremium},
		fetcher:    fetcher,
		textSender: textSender,
	}
}

const (
	newsHeader  = "📰 *Top %d latest headlines from BBC News:*"
	newsArticle = "%d. *%s*\n%s\nURL: %s"
	newsEmpty   = "There is no recent news right now."
	newsFailed  = "Sorry, could not fetch the latest news right now."
)

func (n *TopNews) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", n.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go n.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	articles, err := n.fetcher.TopHeadlines(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch news")
		return reply(ctx, n.textSender, message, newsFailed)
	}

	if len(articles) == 0 {
		return reply(ctx, n.textSender, message, newsEmpty)
	}

	if err := sendMarkdown(ctx, n.textSender, message, fmt.Sprintf(newsHeader, len(articles))); err != nil {
		return err
	}

	for i, a := range articles {
		err := sendMarkdown(ctx, n.textSender, message,
			fmt.Sprintf(newsArticle, i+1, escape(a.Title), escape(a.Description), a.URL))
		if err != nil {
			return err
		}
	}

	return nil
}
