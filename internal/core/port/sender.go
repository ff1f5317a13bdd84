package port

import (
	"ciesta/internal/core/domain"
	"context"
)

type TextSender interface {
	// Send delivers text to the chat behind identity. Fire-and-forget for most callers, the error only
	// matters for broadcast accounting.
	Send(ctx context.Context, identity string, text string, format domain.Format) error
	// SendMessageReply sends a reply to a specified message with the given text and returns the sent message ID and
	// an error if any.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
	// SendChatAction sends a specified chat action (e.g., typing, sending photo) to indicate activity in a given chat
	// until ctx is done.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
	// NotifyAndReturnError sends an error notification based on the provided message context and returns the error.
	NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error
}

type ImageSender interface {
	// SendImageURL sends an image by URL to the chat behind identity.
	SendImageURL(ctx context.Context, identity string, url string) error
}
