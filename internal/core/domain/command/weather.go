package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Weather struct {
	meta
	fetcher     port.WeatherFetcher
	textSender  port.TextSender
	imageSender port.ImageSender
	defaultCity string
}

func NewWeather(fetcher port.WeatherFetcher, textSender port.TextSender, imageSender port.ImageSender,
	defaultCity string, command string) *Weather {
	return &Weather{
		meta:        meta{command: command, level: domain.LevelPremium, arity: domain.ArityOptional},
		fetcher:     fetcher,
		textSender:  textSender,
		imageSender: imageSender,
		defaultCity: defaultCity,
	}
}

const (
	weatherTemplate = `🌦️ *Weather for %s, %s*

📍 Region: %s
🕒 Time zone: %s
⏰ Local time: %s

🌡️ Temperature: %.1f°C / %.1f°F
💧 Humidity: %d%%
💨 Wind: %.1f km/h, direction %s
☁️ Condition: %s`
	weatherFailed = "Sorry, could not find weather information for \"%s\"."
)

func (w *Weather) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	city := strings.TrimSpace(message.Argument)
	if city == "" {
		city = w.defaultCity
	}

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", w.GetCommand()).
		Str("city", city).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go w.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	report, err := w.fetcher.Current(ctx, city)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch weather")
		return reply(ctx, w.textSender, message, fmt.Sprintf(weatherFailed, city))
	}

	err = sendMarkdown(ctx, w.textSender, message, fmt.Sprintf(weatherTemplate,
		escape(report.City), escape(report.Country), escape(report.Region), escape(report.TimeZone),
		report.LocalTime, report.TempC, report.TempF, report.Humidity, report.WindKph,
		report.WindDir, escape(report.Condition)))
	if err != nil {
		return err
	}

	if report.ConditionIcon == "" {
		return nil
	}

	if err := w.imageSender.SendImageURL(ctx, message.Identity(), report.ConditionIcon); err != nil {
		return fmt.Errorf("error sending weather icon: %w", err)
	}

	return nil
}
