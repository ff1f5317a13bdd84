package service

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeUnknown
	OutcomeDenied
	OutcomeInvalid
	OutcomeDispatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnknown:
		return "unknown"
	case OutcomeDenied:
		return "denied"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDispatched:
		return "dispatched"
	default:
		return "ignored"
	}
}

const unknownCommand = "⚠️ Command \"%s\" is not recognized. Use /listmenu to see the available commands."

var denialTemplates = map[string]string{
	domain.DenialNotRegistered.TemplateKey(): "⚠️ You are not registered yet! " +
		"Use /register [username] to sign up first.",
	domain.DenialPremiumRequired.TemplateKey(): "🔒 This feature is only available for premium users!\n" +
		"Use /premium for more information.",
	domain.DenialOwnerRequired.TemplateKey(): "⛔ This command can only be used by the bot owner.",
}

// DenialText renders the reply for a denied decision.
func DenialText(d domain.Denial) string {
	return denialTemplates[d.TemplateKey()]
}

type Router struct {
	commands port.CommandRegistry
	gate     *Gate
	sender   port.TextSender
	prefix   string
	botName  string
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewRouter builds a router. botName is the bot's own username, used to accept
// commands written as /command@botName in group chats.
func NewRouter(commands port.CommandRegistry, gate *Gate, sender port.TextSender,
	prefix string, botName string, timeout time.Duration) *Router {
	return &Router{
		commands: commands,
		gate:     gate,
		sender:   sender,
		prefix:   prefix,
		botName:  botName,
		timeout:  timeout,
	}
}

// Dispatch resolves the command in message.Text, gates it and starts the
// handler in its own goroutine. It never waits for the handler.
func (r *Router) Dispatch(ctx context.Context, message *domain.Message) Outcome {
	text := message.Text
	if !strings.HasPrefix(text, r.prefix) {
		return OutcomeIgnored
	}

	inv := domain.ParseInvocation(text)

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", inv.Name).
		Logger()

	if !inv.AddressedTo(r.botName) {
		l.Debug().Str("mention", inv.Mention).Msg("ignoring command for another bot")
		return OutcomeIgnored
	}

	cmd, err := r.commands.Get(inv.Name)
	if err != nil {
		if inv.Mention == "" && !domain.LooksLikeCommand(text, r.prefix) {
			l.Debug().Msg("ignoring message addressed elsewhere")
			return OutcomeIgnored
		}

		l.Debug().Err(err).Msg("unknown command")
		r.reply(ctx, message, fmt.Sprintf(unknownCommand, inv.Name))

		return OutcomeUnknown
	}

	decision := r.gate.Check(message.Identity(), cmd.RequiredLevel())
	if !decision.Allowed() {
		l.Info().Err(decision.Err()).Msg("command denied")
		r.reply(ctx, message, DenialText(decision.Denial))

		return OutcomeDenied
	}

	if cmd.Arity() == domain.ArityRequired && strings.TrimSpace(inv.Argument) == "" {
		l.Debug().Err(domain.ErrMissingArgument).Msg("invalid invocation")
		r.reply(ctx, message, cmd.Usage())

		return OutcomeInvalid
	}

	message.Command = inv.Name
	message.Argument = inv.Argument
	message.HasArgument = inv.HasArgument

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				l.Error().Interface("panic", p).Msg("command handler panicked")
			}
		}()

		err := cmd.Respond(context.WithoutCancel(ctx), r.timeout, message)
		if err != nil {
			l.Err(err).Msg("failed to respond to command")
		}
	}()

	return OutcomeDispatched
}

// Wait blocks until every dispatched handler has returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) reply(ctx context.Context, message *domain.Message, text string) {
	_, err := r.sender.SendMessageReply(ctx, message, text)
	if err != nil {
		log.Warn().Err(err).Int64("chatId", message.ChatID).Msg("failed to send reply")
	}
}
