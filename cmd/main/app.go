package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Houeta/scoperival/internal/analyzer"
	"github.com/Houeta/scoperival/internal/config"
	"github.com/Houeta/scoperival/internal/parser"
	"github.com/Houeta/scoperival/internal/repository/sqlite"
	"github.com/Houeta/scoperival/internal/services/checker"
	"github.com/Houeta/scoperival/internal/services/competitors"
	"github.com/Houeta/scoperival/internal/services/discovery"
)

// app holds the wired services shared by the commands.
type app struct {
	cfg         *config.Config
	log         *slog.Logger
	repo        *sqlite.Repository
	competitors *competitors.Service
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	repo, err := sqlite.NewRepository(ctx, log, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	var llm analyzer.Client
	if cfg.Analyzer.APIKey != "" {
		llm = analyzer.NewClient(cfg.Analyzer.APIKey)
	} else {
		log.WarnContext(ctx, "SR_ANTHROPIC_API_KEY is not set, every change gets the fallback verdict")
	}

	chk := checker.NewChecker(
		log,
		parser.NewParser(log, cfg.Scraper.FetchTimeout),
		analyzer.New(log, llm, cfg.Analyzer.Model, cfg.Analyzer.Timeout),
		repo,
	)
	disc := discovery.NewDiscoverer(log, cfg.Scraper.ProbeTimeout)

	return &app{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		competitors: competitors.NewService(log, repo, chk, disc),
	}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.log.Error("Failed to close storage", "error", err)
	}
}
