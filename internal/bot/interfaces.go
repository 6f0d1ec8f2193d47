package bot

import (
	"context"

	"github.com/Houeta/scoperival/internal/models"
	"gopkg.in/telebot.v4"
)

// API is the subset of *telebot.Bot used by Bot.
type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TokenVerifier resolves an API access token to its account.
type TokenVerifier interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}
