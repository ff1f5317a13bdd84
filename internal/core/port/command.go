package port

import (
	"ciesta/internal/core/domain"
	"context"
	"time"
)

type Command interface {
	// Respond processes a given message within a specified timeout and responds to the originating context.
	Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// RequiredLevel is the minimum registry state the sender must be in before Respond is called.
	RequiredLevel() domain.Level
	// Arity declares whether the command takes a trailing argument.
	Arity() domain.Arity
	// Usage is shown to the sender when a required argument is missing.
	Usage() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}
