package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
	"gopkg.in/telebot.v4"
)

// Bot contains the bot API instance and other information.
type Bot struct {
	bot      API
	log      *slog.Logger
	subs     repository.SubscriptionRepository
	verifier TokenVerifier
}

func NewBot(
	log *slog.Logger,
	token string,
	poller time.Duration,
	subs repository.SubscriptionRepository,
	verifier TokenVerifier,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, subs: subs, verifier: verifier}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
}

// NotifyChanges sends one message per change to the chats linked to the competitor's owner.
// Delivery continues past failed chats; the joined error reports all of them.
func (b *Bot) NotifyChanges(ctx context.Context, competitor *models.Competitor, changes []models.ChangeRecord) error {
	const opn = "bot.NotifyChanges"

	chats, err := b.subs.GetSubscribedChats(ctx, competitor.UserID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	var errs []error
	for _, chatID := range chats {
		for _, change := range changes {
			if _, err = b.bot.Send(&telebot.Chat{ID: chatID}, FormatNotification(competitor, change)); err != nil {
				b.log.WarnContext(ctx, "Failed to deliver change alert", "op", opn, "chat_id", chatID, "error", err)
				errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(errs...))
	}

	b.log.InfoContext(ctx, "Change alerts delivered", "op", opn, "chats", len(chats), "changes", len(changes))

	return nil
}
