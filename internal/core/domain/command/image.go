package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Image sends a fixed picture.
type Image struct {
	meta
	url         string
	imageSender port.ImageSender
	textSender  port.TextSender
}

func NewImage(url string, imageSender port.ImageSender, textSender port.TextSender, command string) *Image {
	return &Image{
		meta:        meta{command: command, level: domain.LevelPremium},
		url:         url,
		imageSender: imageSender,
		textSender:  textSender,
	}
}

func (i *Image) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go i.textSender.SendChatAction(ctx, message.ChatID, domain.SendingPhoto)

	if err := i.imageSender.SendImageURL(ctx, message.Identity(), i.url); err != nil {
		err = fmt.Errorf("error sending image: %w", err)
		return i.textSender.NotifyAndReturnError(ctx, err, message)
	}

	return nil
}

// RandomImage sends a random picture from a named collection.
type RandomImage struct {
	meta
	collection  string
	picker      port.ImagePicker
	imageSender port.ImageSender
	textSender  port.TextSender
}

func NewRandomImage(collection string, picker port.ImagePicker, imageSender port.ImageSender,
	textSender port.TextSender, command string) *RandomImage {
	return &RandomImage{
		meta:        meta{command: command, level: domain.LevelPremium},
		collection:  collection,
		picker:      picker,
		imageSender: imageSender,
		textSender:  textSender,
	}
}

func (r *RandomImage) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", r.GetCommand()).
		Str("collection", r.collection).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go r.textSender.SendChatAction(ctx, message.ChatID, domain.SendingPhoto)

	url, err := r.picker.Random(ctx, r.collection)
	if err != nil {
		err = fmt.Errorf("error picking image: %w", err)
		return r.textSender.NotifyAndReturnError(ctx, err, message)
	}

	if err := r.imageSender.SendImageURL(ctx, message.Identity(), url); err != nil {
		err = fmt.Errorf("error sending image: %w", err)
		return r.textSender.NotifyAndReturnError(ctx, err, message)
	}

	l.Info().Str("url", url).Msg("sent random image")

	return nil
}
