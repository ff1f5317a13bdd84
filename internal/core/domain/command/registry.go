package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).
		Str("level", handler.RequiredLevel().String()).
		Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

// Get looks a command up by its exact, case-sensitive name.
func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// meta carries the routing attributes every handler exposes.
type meta struct {
	command string
	level   domain.Level
	arity   domain.Arity
	usage   string
}

func (m meta) GetCommand() string {
	return m.command
}

func (m meta) RequiredLevel() domain.Level {
	return m.level
}

func (m meta) Arity() domain.Arity {
	return m.arity
}

func (m meta) Usage() string {
	return m.usage
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escape protects user supplied text inside legacy Markdown messages.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

const dateLayout = "2006-01-02 15:04 MST"

func sendMarkdown(ctx context.Context, ts port.TextSender, message *domain.Message, text string) error {
	if err := ts.Send(ctx, message.Identity(), text, domain.Markdown); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func reply(ctx context.Context, ts port.TextSender, message *domain.Message, text string) error {
	if _, err := ts.SendMessageReply(ctx, message, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
