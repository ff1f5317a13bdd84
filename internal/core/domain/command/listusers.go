package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"fmt"
	"strings"
	"time"
)

type ListUsers struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewListUsers(registry service.Registry, textSender port.TextSender, command string) *ListUsers {
	return &ListUsers{
		meta:       meta{command: command, level: domain.LevelOwner},
		registry:   registry,
		textSender: textSender,
	}
}

const (
	listUsersEmpty  = "There are no registered users."
	listUsersHeader = "👥 *REGISTERED USERS (%d)*\n\n"
	listUsersEntry  = "%d. %s *%s*\n   ID: %s\n   Name: %s\n   Status: %s\n   Registered: %s\n\n"
)

var roleEmoji = map[domain.Role]string{
	domain.RoleRegular: "👤",
	domain.RolePremium: "🌟",
	domain.RoleOwner:   "👑",
}

func (l *ListUsers) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	users := l.registry.ListAll()
	if len(users) == 0 {
		return reply(ctx, l.textSender, message, listUsersEmpty)
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, listUsersHeader, len(users))

	for i, u := range users {
		fmt.Fprintf(sb, listUsersEntry, i+1, roleEmoji[u.Role], escape(u.Handle), u.Identity,
			escape(u.DisplayName), u.Role, u.RegisteredAt.Format(dateLayout))
	}

	return sendMarkdown(ctx, l.textSender, message, sb.String())
}
