package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
)

// CreateCompetitor inserts a competitor without tracked pages.
func (r *Repository) CreateCompetitor(ctx context.Context, competitor *models.Competitor) error {
	const opn = "repository.sqlite.CreateCompetitor"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO competitors (id, user_id, domain, company_name, created_at) VALUES (?, ?, ?, ?, ?)",
		competitor.ID, competitor.UserID, competitor.Domain, competitor.CompanyName, competitor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// GetCompetitor returns the competitor owned by userID together with its pages in tracking order.
func (r *Repository) GetCompetitor(ctx context.Context, userID, competitorID string) (*models.Competitor, error) {
	const opn = "repository.sqlite.GetCompetitor"

	var comp models.Competitor
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, domain, company_name, created_at FROM competitors WHERE id = ? AND user_id = ?",
		competitorID, userID,
	).Scan(&comp.ID, &comp.UserID, &comp.Domain, &comp.CompanyName, &comp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", opn, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get competitor: %w", opn, err)
	}

	comp.TrackedPages, err = r.listTrackedPages(ctx, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return &comp, nil
}

// ListCompetitors returns up to limit competitors of userID, oldest first.
func (r *Repository) ListCompetitors(ctx context.Context, userID string, limit int) ([]models.Competitor, error) {
	const opn = "repository.sqlite.ListCompetitors"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, domain, company_name, created_at FROM competitors
		 WHERE user_id = ? ORDER BY created_at, id LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get competitors: %w", opn, err)
	}
	defer rows.Close()

	var competitors []models.Competitor
	for rows.Next() {
		var comp models.Competitor
		if err = rows.Scan(&comp.ID, &comp.UserID, &comp.Domain, &comp.CompanyName, &comp.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan competitor: %w", opn, err)
		}
		competitors = append(competitors, comp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	for idx := range competitors {
		competitors[idx].TrackedPages, err = r.listTrackedPages(ctx, competitors[idx].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opn, err)
		}
	}

	return competitors, nil
}

// ReplaceTrackedPages atomically swaps the tracked page list of a competitor.
func (r *Repository) ReplaceTrackedPages(ctx context.Context, competitorID string, pages []models.TrackedPage) error {
	const opn = "repository.sqlite.ReplaceTrackedPages"

	// 1. begin transaction
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit only returns sql.ErrTxDone.

	// 2. Completely clear the page list to record the new one.
	if _, err = tx.ExecContext(ctx, "DELETE FROM tracked_pages WHERE competitor_id = ?", competitorID); err != nil {
		return fmt.Errorf("%s: failed to delete old pages: %w", opn, err)
	}

	// 3. Preparing a request for the effective insertion of new pages.
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tracked_pages
		 (id, competitor_id, position, url, page_type, last_content_hash, last_scraped, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare insert statement: %w", opn, err)
	}
	defer stmt.Close()

	// 4. Insert each page keeping the caller's order.
	for pos, page := range pages {
		_, err = stmt.ExecContext(ctx,
			page.ID, competitorID, pos, page.URL, string(page.PageType),
			page.LastContentHash, page.LastScraped, page.Content,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to insert page %s: %w", opn, page.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// UpdatePageState writes content, hash and scrape time of one page in a single statement.
func (r *Repository) UpdatePageState(
	ctx context.Context,
	competitorID, pageID string,
	state models.PageState,
) error {
	const opn = "repository.sqlite.UpdatePageState"

	res, err := r.db.ExecContext(ctx,
		`UPDATE tracked_pages SET last_content_hash = ?, content = ?, last_scraped = ?
		 WHERE id = ? AND competitor_id = ?`,
		state.ContentHash, state.Content, state.ScrapedAt, pageID, competitorID,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update page state: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: page %s: %w", opn, pageID, repository.ErrNotFound)
	}

	return nil
}

// DeleteCompetitor removes a competitor owned by userID with its pages and change history.
func (r *Repository) DeleteCompetitor(ctx context.Context, userID, competitorID string) error {
	const opn = "repository.sqlite.DeleteCompetitor"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit only returns sql.ErrTxDone.

	res, err := tx.ExecContext(ctx, "DELETE FROM competitors WHERE id = ? AND user_id = ?", competitorID, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete competitor: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrNotFound)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM tracked_pages WHERE competitor_id = ?", competitorID); err != nil {
		return fmt.Errorf("%s: failed to delete tracked pages: %w", opn, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM changes WHERE competitor_id = ?", competitorID); err != nil {
		return fmt.Errorf("%s: failed to delete changes: %w", opn, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

func (r *Repository) listTrackedPages(ctx context.Context, competitorID string) ([]models.TrackedPage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, page_type, last_content_hash, last_scraped, content
		 FROM tracked_pages WHERE competitor_id = ? ORDER BY position`, competitorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked pages: %w", err)
	}
	defer rows.Close()

	pages := []models.TrackedPage{}
	for rows.Next() {
		var (
			page     models.TrackedPage
			pageType string
			hash     sql.NullString
			scraped  sql.NullTime
			content  sql.NullString
		)
		if err = rows.Scan(&page.ID, &page.URL, &pageType, &hash, &scraped, &content); err != nil {
			return nil, fmt.Errorf("failed to scan tracked page: %w", err)
		}
		page.PageType = models.PageType(pageType)
		if hash.Valid {
			page.LastContentHash = &hash.String
		}
		if scraped.Valid {
			page.LastScraped = &scraped.Time
		}
		if content.Valid {
			page.Content = &content.String
		}
		pages = append(pages, page)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pages, nil
}
