package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Houeta/scoperival/internal/auth"
	"github.com/Houeta/scoperival/internal/models"
	"gopkg.in/telebot.v4"
)

const (
	msgGreeting = "Hello! I report significant changes on your competitors' pages. " +
		"Send /subscribe <access token> to receive alerts for your account."
	msgSubscribeUsage    = "Usage: /subscribe <access token>. Get a token by logging in to the API."
	msgInvalidToken      = "This access token is invalid or expired. Log in again and retry."
	msgSubscribed        = "You are subscribed to competitor change alerts."
	msgAlreadySubscribed = "You are already subscribed."
	msgUnsubscribed      = "You will no longer receive change alerts."
	msgNotSubscribed     = "You are not subscribed."
	msgFailure           = "Something went wrong, please try again later."
)

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send(msgGreeting); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	if err := ctx.Send(b.subscribe(context.Background(), ctx.Chat().ID, ctx.Args())); err != nil {
		return fmt.Errorf("failed to send subscribe reply: %w", err)
	}

	return nil
}

func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	if err := ctx.Send(b.unsubscribe(context.Background(), ctx.Chat().ID)); err != nil {
		return fmt.Errorf("failed to send unsubscribe reply: %w", err)
	}

	return nil
}

// subscribe links chatID to the account owning the token in args and returns the reply text.
func (b *Bot) subscribe(ctx context.Context, chatID int64, args []string) string {
	if len(args) != 1 {
		return msgSubscribeUsage
	}

	user, err := b.verifier.Authenticate(ctx, args[0])
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return msgInvalidToken
		}
		b.log.ErrorContext(ctx, "Failed to verify access token", "chat_id", chatID, "error", err)
		return msgFailure
	}

	added, err := b.subs.SubscribeChat(ctx, chatID, user.ID)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to subscribe chat", "chat_id", chatID, "error", err)
		return msgFailure
	}
	if !added {
		return msgAlreadySubscribed
	}

	b.log.InfoContext(ctx, "Chat subscribed", "chat_id", chatID, "user_id", user.ID)

	return msgSubscribed
}

// unsubscribe removes chatID and returns the reply text.
func (b *Bot) unsubscribe(ctx context.Context, chatID int64) string {
	removed, err := b.subs.UnsubscribeChat(ctx, chatID)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to unsubscribe chat", "chat_id", chatID, "error", err)
		return msgFailure
	}
	if !removed {
		return msgNotSubscribed
	}

	b.log.InfoContext(ctx, "Chat unsubscribed", "chat_id", chatID)

	return msgUnsubscribed
}

// FormatNotification renders one change as a plain-text alert.
func FormatNotification(competitor *models.Competitor, change models.ChangeRecord) string {
	var bld strings.Builder

	fmt.Fprintf(&bld, "[%s] significance %d/5\n\n", competitor.CompanyName, change.SignificanceScore)
	bld.WriteString(change.ChangeSummary)
	if change.StrategicImplications != "" {
		bld.WriteString("\n\n")
		bld.WriteString(change.StrategicImplications)
	}
	if len(change.SuggestedActions) > 0 {
		bld.WriteString("\n\nSuggested actions:")
		for _, action := range change.SuggestedActions {
			bld.WriteString("\n- ")
			bld.WriteString(action)
		}
	}

	return bld.String()
}
