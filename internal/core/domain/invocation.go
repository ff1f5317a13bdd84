package domain

import (
	"strings"
	"unicode"
)

type Invocation struct {
	Name        string
	Argument    string
	HasArgument bool
	// Mention is the bot name after "@" in a token like /status@CiestaBot.
	Mention string
}

// ParseInvocation splits raw text into the command token and everything after
// the first whitespace run following it. A bare token has no argument, while a
// token followed only by whitespace has an empty one.
func ParseInvocation(text string) Invocation {
	var inv Invocation

	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		inv.Name = text
	} else {
		inv.Name = text[:idx]
		inv.Argument = strings.TrimLeftFunc(text[idx:], unicode.IsSpace)
		inv.HasArgument = true
	}

	if at := strings.IndexByte(inv.Name, '@'); at > 0 {
		inv.Name, inv.Mention = inv.Name[:at], inv.Name[at+1:]
	}

	return inv
}

// AddressedTo reports whether the invocation is meant for the bot called botName.
// Commands without a mention are addressed to every bot in the chat.
func (i Invocation) AddressedTo(botName string) bool {
	return i.Mention == "" || strings.EqualFold(i.Mention, botName)
}

// LooksLikeCommand reports whether text should be answered with an unknown
// command reply: it starts with the prefix and mentions no other bot.
func LooksLikeCommand(text, prefix string) bool {
	return prefix != "" && strings.HasPrefix(text, prefix) && !strings.Contains(text, "@")
}
