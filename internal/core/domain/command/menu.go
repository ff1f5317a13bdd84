package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"strings"
	"time"
)

// ListMenu shows the commands the sender can use, grouped by role.
type ListMenu struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewListMenu(registry service.Registry, textSender port.TextSender, command string) *ListMenu {
	return &ListMenu{
		meta:       meta{command: command, level: domain.LevelPublic},
		registry:   registry,
		textSender: textSender,
	}
}

const (
	menuGeneral = `🤖 *CIESTA BOT COMMANDS* 🤖

*General Commands:*
/start - Start interacting with the bot
/register [username] - Register as a user
/status - Check bot and account status
/getip - Get the public IP
/owner - Bot owner contact
/premium - Premium feature info
/stats - Show your statistics
/listmenu - Show this command list
`
	menuPremium = `
*Premium Commands:*
/weather [city] - Check the weather for a city
/eunsoo - Show a photo of Shin Eun-soo
/randomwaifu - Show a random waifu picture
/randomanime - Show a random anime picture
/topnews - Get the latest BBC headlines
`
	menuOwner = `
*Owner Commands:*
/setpremium [username] - Grant premium to a user
/revokepremium [username] - Revoke premium from a user
/listusers - Show all users
/broadcast [message] - Send a message to all users
`
	menuUnregistered = "\n⚠️ You are not registered yet! Use /register [username] to sign up first."
)

func (m *ListMenu) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, ok := m.registry.FindByIdentity(message.Identity())

	sb := &strings.Builder{}
	sb.WriteString(menuGeneral)

	if ok && service.Evaluate(domain.LevelPremium, user, ok).Allowed() {
		sb.WriteString(menuPremium)
	}

	if ok && service.Evaluate(domain.LevelOwner, user, ok).Allowed() {
		sb.WriteString(menuOwner)
	}

	if !ok {
		sb.WriteString(menuUnregistered)
	}

	return sendMarkdown(ctx, m.textSender, message, sb.String())
}

// Premium describes the premium tier relative to the sender's role.
type Premium struct {
	meta
	registry   service.Registry
	textSender port.TextSender
}

func NewPremium(registry service.Registry, textSender port.TextSender, command string) *Premium {
	return &Premium{
		meta:       meta{command: command, level: domain.LevelPublic},
		registry:   registry,
		textSender: textSender,
	}
}

const (
	premiumInfo = `🌟 *CIESTA BOT PREMIUM FEATURES* 🌟

Get access to exclusive features by becoming a premium user!

*Premium Benefits:*
✅ Exclusive access to upcoming features
✅ Priority on feature updates
✅ Priority support
`
	premiumAlready = "\n🎉 You are already a premium user! Enjoy all exclusive features."
	premiumOwner   = "\n👑 As the owner, you have access to every premium feature."
	premiumContact = "\nTo become a premium user, please contact the bot owner: /owner"
)

func (p *Premium) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := premiumInfo

	user, ok := p.registry.FindByIdentity(message.Identity())
	switch {
	case !ok:
		text += menuUnregistered
	case user.Role == domain.RolePremium:
		text += premiumAlready
	case user.Role == domain.RoleOwner:
		text += premiumOwner
	default:
		text += premiumContact
	}

	return sendMarkdown(ctx, p.textSender, message, text)
}

type Owner struct {
	meta
	contact    string
	textSender port.TextSender
}

func NewOwner(contact string, textSender port.TextSender, command string) *Owner {
	return &Owner{
		meta:       meta{command: command, level: domain.LevelRegistered},
		contact:    contact,
		textSender: textSender,
	}
}

func (o *Owner) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return reply(ctx, o.textSender, message, o.contact)
}
