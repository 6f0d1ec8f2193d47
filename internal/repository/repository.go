// Package repository declares storage contracts shared by services and backends.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Houeta/scoperival/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CompetitorRepository stores competitors together with their tracked pages.
// Every lookup is scoped by the owning user.
type CompetitorRepository interface {
	CreateCompetitor(ctx context.Context, competitor *models.Competitor) error
	GetCompetitor(ctx context.Context, userID, competitorID string) (*models.Competitor, error)
	ListCompetitors(ctx context.Context, userID string, limit int) ([]models.Competitor, error)
	ReplaceTrackedPages(ctx context.Context, competitorID string, pages []models.TrackedPage) error
	// DeleteCompetitor removes the competitor, its pages and all of its change records.
	DeleteCompetitor(ctx context.Context, userID, competitorID string) error
}

// PageStateRepository advances the observed state of a tracked page.
type PageStateRepository interface {
	UpdatePageState(ctx context.Context, competitorID, pageID string, state models.PageState) error
}

// ChangeRepository is the append-only change history.
type ChangeRepository interface {
	CreateChange(ctx context.Context, change *models.ChangeRecord) error
	ListChangesByCompetitor(ctx context.Context, competitorID string, limit int) ([]models.ChangeRecord, error)
	ListChangesByUser(ctx context.Context, userID string, limit int) ([]models.ChangeRecord, error)
}

// StatsRepository aggregates dashboard counters.
type StatsRepository interface {
	GetDashboardStats(ctx context.Context, userID string, since time.Time, minSignificance int) (*models.DashboardStats, error)
}

// SubscriptionRepository stores chats receiving change alerts.
// Each chat is linked to exactly one user and only receives that user's alerts.
type SubscriptionRepository interface {
	SubscribeChat(ctx context.Context, chatID int64, userID string) (bool, error)
	UnsubscribeChat(ctx context.Context, chatID int64) (bool, error)
	GetSubscribedChats(ctx context.Context, userID string) ([]int64, error)
}
