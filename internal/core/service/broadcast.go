package service

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBroadcastDelay  = 100 * time.Millisecond
	DefaultDeliveryTimeout = 10 * time.Second
)

// Pacer waits between two deliveries.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

type timerPacer struct{}

func (timerPacer) Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type BroadcastReport struct {
	Sent   int
	Failed int
}

type Broadcaster struct {
	sender          port.TextSender
	pacer           Pacer
	delay           time.Duration
	deliveryTimeout time.Duration
}

type BroadcastOption func(*Broadcaster)

func WithPacer(p Pacer) BroadcastOption {
	return func(b *Broadcaster) {
		b.pacer = p
	}
}

func WithDelay(d time.Duration) BroadcastOption {
	return func(b *Broadcaster) {
		b.delay = d
	}
}

func WithDeliveryTimeout(d time.Duration) BroadcastOption {
	return func(b *Broadcaster) {
		b.deliveryTimeout = d
	}
}

func NewBroadcaster(sender port.TextSender, opts ...BroadcastOption) *Broadcaster {
	b := &Broadcaster{
		sender:          sender,
		pacer:           timerPacer{},
		delay:           DefaultBroadcastDelay,
		deliveryTimeout: DefaultDeliveryTimeout,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Broadcast delivers text to every recipient one after another, pausing
// between deliveries. Failures are counted and skipped. The report is only
// returned once the whole list has been processed.
func (b *Broadcaster) Broadcast(ctx context.Context, text string, recipients []string) BroadcastReport {
	var report BroadcastReport

	for i, identity := range recipients {
		if i > 0 && b.delay > 0 {
			if err := b.pacer.Wait(ctx, b.delay); err != nil {
				log.Warn().Err(err).Msg("broadcast pacing interrupted")
			}
		}

		if err := b.deliver(ctx, identity, text); err != nil {
			log.Warn().Err(err).Str("identity", identity).Msg("broadcast delivery failed")
			report.Failed++
			continue
		}

		report.Sent++
	}

	log.Info().Int("sent", report.Sent).Int("failed", report.Failed).Msg("broadcast finished")

	return report
}

func (b *Broadcaster) deliver(ctx context.Context, identity, text string) error {
	ctx, cancel := context.WithTimeout(ctx, b.deliveryTimeout)
	defer cancel()

	return b.sender.Send(ctx, identity, text, domain.Markdown)
}
