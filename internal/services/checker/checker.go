package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Houeta/scoperival/internal/analyzer"
	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/parser"
	"github.com/google/uuid"
)

// StoredContentLimit caps the page text kept on a change record, in characters.
const StoredContentLimit = analyzer.PromptContentLimit

// ChangeAnalyzer interprets a detected change.
type ChangeAnalyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) analyzer.Analysis
}

// ScanStore persists the outcome of a scan.
type ScanStore interface {
	CreateChange(ctx context.Context, change *models.ChangeRecord) error
	UpdatePageState(ctx context.Context, competitorID, pageID string, state models.PageState) error
}

// Checker is an orchestrator that performs a full verification cycle over a competitor's pages.
type Checker struct {
	log      *slog.Logger
	fetcher  parser.HTMLFetcher
	analyzer ChangeAnalyzer
	store    ScanStore
	now      func() time.Time
	newID    func() string
}

type Interface interface {
	// Scan performs the full change checking algorithm for one competitor.
	Scan(ctx context.Context, competitor *models.Competitor) *models.ScanResult
	// Observe fetches a page and returns its state without comparing or persisting anything.
	Observe(ctx context.Context, pageURL string) (models.PageState, bool)
}

// NewChecker creates a new Checker instance.
func NewChecker(log *slog.Logger, fetcher parser.HTMLFetcher, analyzer ChangeAnalyzer, store ScanStore) *Checker {
	return &Checker{
		log:      log,
		fetcher:  fetcher,
		analyzer: analyzer,
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Observe fetches pageURL and fingerprints its content.
func (c *Checker) Observe(ctx context.Context, pageURL string) (models.PageState, bool) {
	content, ok := c.fetcher.FetchContent(ctx, pageURL)
	if !ok {
		return models.PageState{}, false
	}

	return models.PageState{ContentHash: Fingerprint(content), Content: content, ScrapedAt: c.now()}, true
}

// Scan walks the tracked pages in order. Page failures are logged and never stop the scan.
func (c *Checker) Scan(ctx context.Context, competitor *models.Competitor) *models.ScanResult {
	const opn = "checker.Scan"
	log := c.log.With("op", opn, "competitor_id", competitor.ID)

	result := &models.ScanResult{Changes: []models.ChangeRecord{}}

	log.InfoContext(ctx, "Scanning tracked pages", "pages", len(competitor.TrackedPages))
	for _, page := range competitor.TrackedPages {
		change, stateSaved := c.scanPage(ctx, log.With("page_id", page.ID, "url", page.URL), competitor, page)
		// A stored change is reported even when the page state could not be advanced.
		if change != nil {
			result.Changes = append(result.Changes, *change)
		}
		if !stateSaved {
			result.PagesSkipped++
			continue
		}
		result.PagesScanned++
	}

	log.InfoContext(
		ctx,
		"Scan complete",
		"scanned", result.PagesScanned,
		"skipped", result.PagesSkipped,
		"changes", len(result.Changes),
	)

	return result
}

// scanPage runs fetch, fingerprint, detect, analyze and persist for one page.
// It returns the stored change, if any, and whether the page state was saved.
func (c *Checker) scanPage(
	ctx context.Context,
	log *slog.Logger,
	competitor *models.Competitor,
	page models.TrackedPage,
) (*models.ChangeRecord, bool) {
	// 1. Retrieving page text and calculating a new hash
	state, ok := c.Observe(ctx, page.URL)
	if !ok {
		log.WarnContext(ctx, "Page unavailable, keeping previous state")
		return nil, false
	}

	// 2. Hash comparison
	var change *models.ChangeRecord
	if HasChanged(page.LastContentHash, state.ContentHash) {
		log.InfoContext(ctx, "Page hash differs. Starting analysis...")

		change = c.analyze(ctx, competitor, page, state)
		if err := c.store.CreateChange(ctx, change); err != nil {
			// The page state stays behind so the next scan detects this change again.
			log.ErrorContext(ctx, "Failed to save change record", "error", err)
			return nil, false
		}
	} else {
		log.DebugContext(ctx, "Page hash has not changed or first observation")
	}

	// 3. Updating the page state
	if err := c.store.UpdatePageState(ctx, competitor.ID, page.ID, state); err != nil {
		log.ErrorContext(ctx, "Failed to update page state", "error", err)
		return change, false
	}

	return change, true
}

func (c *Checker) analyze(
	ctx context.Context,
	competitor *models.Competitor,
	page models.TrackedPage,
	state models.PageState,
) *models.ChangeRecord {
	var previous string
	if page.Content != nil {
		previous = *page.Content
	}

	analysis := c.analyzer.Analyze(ctx, analyzer.Request{
		PreviousContent: previous,
		NewContent:      state.Content,
		PageType:        page.PageType,
		CompetitorName:  competitor.CompanyName,
	})

	return &models.ChangeRecord{
		ID:                    c.newID(),
		CompetitorID:          competitor.ID,
		PageID:                page.ID,
		ChangeSummary:         analysis.Verdict.ChangeSummary,
		StrategicImplications: analysis.Verdict.StrategicImplications,
		SignificanceScore:     analysis.Verdict.SignificanceScore,
		SuggestedActions:      analysis.Verdict.SuggestedActions,
		PreviousContent:       parser.Truncate(previous, StoredContentLimit),
		NewContent:            parser.Truncate(state.Content, StoredContentLimit),
		CreatedAt:             state.ScrapedAt,
	}
}
