package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/scoperival/internal/api"
	"github.com/Houeta/scoperival/internal/auth"
	"github.com/Houeta/scoperival/internal/bot"
	"github.com/Houeta/scoperival/internal/config"
	"github.com/spf13/cobra"
)

var ErrEmptyJWTSecret = errors.New("SR_JWT_SECRET must be set to serve the API")

const shutdownTimeout = 15 * time.Second

// NewServeCmd creates the command running the HTTP API and the optional Telegram bot.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoad()
			if cfg.Auth.Secret == "" {
				return ErrEmptyJWTSecret
			}

			return runServe(cmd.Context(), cfg, setupLogger(cfg.Env, cmd.ErrOrStderr()))
		},
	}
}

func runServe(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	authSvc := auth.NewService(logger, application.repo, cfg.Auth.Secret, cfg.Auth.TokenTTL)

	if cfg.Tg.Token != "" {
		alerts, botErr := bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, application.repo, authSvc)
		if botErr != nil {
			return fmt.Errorf("failed to init bot: %w", botErr)
		}
		application.competitors.SetNotifier(alerts, cfg.Tg.MinSignificance)

		// Start the bot in a goroutine to allow serve to listen for signals.
		go alerts.Start()
		defer alerts.Stop()
	} else {
		logger.InfoContext(ctx, "SR_TELEGRAM_TOKEN is not set, change alerts are disabled")
	}

	srv := api.NewHTTPServer(cfg.HTTP.Addr, api.NewServer(logger, authSvc, application.competitors, cfg.HTTP.CORSOrigins))

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server is starting", "addr", cfg.HTTP.Addr)
		if listenErr := srv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serveErr <- listenErr
		}
		close(serveErr)
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C) or for the listener to fail.
	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")

	return nil
}
