package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Houeta/scoperival/internal/models"
)

const changeColumns = `c.id, c.competitor_id, c.page_id, c.change_summary, c.strategic_implications,
	c.significance_score, c.suggested_actions, c.previous_content, c.new_content, c.created_at`

// CreateChange appends a change record to the history.
func (r *Repository) CreateChange(ctx context.Context, change *models.ChangeRecord) error {
	const opn = "repository.sqlite.CreateChange"

	actions, err := json.Marshal(change.SuggestedActions)
	if err != nil {
		return fmt.Errorf("%s: failed to encode suggested actions: %w", opn, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO changes (id, competitor_id, page_id, change_summary, strategic_implications,
		 significance_score, suggested_actions, previous_content, new_content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		change.ID, change.CompetitorID, change.PageID, change.ChangeSummary, change.StrategicImplications,
		change.SignificanceScore, string(actions), change.PreviousContent, change.NewContent, change.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// ListChangesByCompetitor returns the newest change records of one competitor.
func (r *Repository) ListChangesByCompetitor(
	ctx context.Context,
	competitorID string,
	limit int,
) ([]models.ChangeRecord, error) {
	const opn = "repository.sqlite.ListChangesByCompetitor"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+changeColumns+` FROM changes c
		 WHERE c.competitor_id = ? ORDER BY c.created_at DESC, c.id LIMIT ?`, competitorID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	changes, err := scanChanges(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return changes, nil
}

// ListChangesByUser returns the newest change records across all competitors of userID.
func (r *Repository) ListChangesByUser(ctx context.Context, userID string, limit int) ([]models.ChangeRecord, error) {
	const opn = "repository.sqlite.ListChangesByUser"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+changeColumns+` FROM changes c
		 JOIN competitors comp ON comp.id = c.competitor_id
		 WHERE comp.user_id = ? ORDER BY c.created_at DESC, c.id LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	changes, err := scanChanges(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return changes, nil
}

// GetDashboardStats counts competitors, pages and changes visible to userID.
func (r *Repository) GetDashboardStats(
	ctx context.Context,
	userID string,
	since time.Time,
	minSignificance int,
) (*models.DashboardStats, error) {
	const opn = "repository.sqlite.GetDashboardStats"

	var stats models.DashboardStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM competitors WHERE user_id = ?1),
			(SELECT COUNT(*) FROM tracked_pages p JOIN competitors comp ON comp.id = p.competitor_id
			 WHERE comp.user_id = ?1),
			(SELECT COUNT(*) FROM changes c JOIN competitors comp ON comp.id = c.competitor_id
			 WHERE comp.user_id = ?1 AND c.created_at >= ?2),
			(SELECT COUNT(*) FROM changes c JOIN competitors comp ON comp.id = c.competitor_id
			 WHERE comp.user_id = ?1 AND c.significance_score >= ?3)`,
		userID, since.UTC(), minSignificance,
	).Scan(&stats.TotalCompetitors, &stats.TotalTrackedPages, &stats.RecentChanges, &stats.HighSignificanceChanges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return &stats, nil
}

func scanChanges(rows *sql.Rows) ([]models.ChangeRecord, error) {
	changes := []models.ChangeRecord{}
	for rows.Next() {
		var (
			change  models.ChangeRecord
			actions string
		)
		err := rows.Scan(
			&change.ID, &change.CompetitorID, &change.PageID, &change.ChangeSummary,
			&change.StrategicImplications, &change.SignificanceScore, &actions,
			&change.PreviousContent, &change.NewContent, &change.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		if err = json.Unmarshal([]byte(actions), &change.SuggestedActions); err != nil {
			return nil, fmt.Errorf("failed to decode suggested actions of %s: %w", change.ID, err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return changes, nil
}
