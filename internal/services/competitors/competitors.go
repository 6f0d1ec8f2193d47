// Package competitors implements the competitor monitoring use cases of one user.
package competitors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
	"github.com/Houeta/scoperival/internal/services/discovery"
	"github.com/google/uuid"
)

const (
	listLimit = 100

	// RecentWindow is the dashboard period for recent changes.
	RecentWindow = 7 * 24 * time.Hour
	// HighSignificance is the dashboard threshold for important changes.
	HighSignificance = 4
)

var ErrValidation = errors.New("validation failed")

// Store is the persistence used by the service.
type Store interface {
	repository.CompetitorRepository
	repository.ChangeRepository
	repository.StatsRepository
}

// Scanner checks tracked pages for changes.
type Scanner interface {
	Scan(ctx context.Context, competitor *models.Competitor) *models.ScanResult
	Observe(ctx context.Context, pageURL string) (models.PageState, bool)
}

// PageDiscoverer suggests pages of a domain.
type PageDiscoverer interface {
	Discover(ctx context.Context, domain string) ([]models.PageSuggestion, error)
}

// Notifier receives significant changes after a scan.
type Notifier interface {
	NotifyChanges(ctx context.Context, competitor *models.Competitor, changes []models.ChangeRecord) error
}

// PageInput is a page the user asks to track.
type PageInput struct {
	URL      string          `json:"url"`
	PageType models.PageType `json:"page_type"`
}

// Service coordinates storage, scanning and discovery for competitors.
type Service struct {
	log        *slog.Logger
	store      Store
	scanner    Scanner
	discoverer PageDiscoverer

	notifier        Notifier
	minSignificance int

	locks *keyedMutex
	now   func() time.Time
	newID func() string
}

// NewService creates a Service without notifications.
func NewService(log *slog.Logger, store Store, scanner Scanner, discoverer PageDiscoverer) *Service {
	return &Service{
		log:        log,
		store:      store,
		scanner:    scanner,
		discoverer: discoverer,
		locks:      newKeyedMutex(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// SetNotifier enables alerts for changes scored at least minSignificance.
func (s *Service) SetNotifier(notifier Notifier, minSignificance int) {
	s.notifier = notifier
	s.minSignificance = minSignificance
}

// Create registers a new competitor without tracked pages.
func (s *Service) Create(ctx context.Context, userID, domain, companyName string) (*models.Competitor, error) {
	const opn = "competitors.Create"

	domain = strings.TrimSpace(domain)
	companyName = strings.TrimSpace(companyName)
	if domain == "" || companyName == "" {
		return nil, fmt.Errorf("%s: %w: domain and company_name are required", opn, ErrValidation)
	}

	comp := &models.Competitor{
		ID:           s.newID(),
		UserID:       userID,
		Domain:       domain,
		CompanyName:  companyName,
		TrackedPages: []models.TrackedPage{},
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateCompetitor(ctx, comp); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	s.log.InfoContext(ctx, "Competitor created", "op", opn, "competitor_id", comp.ID, "domain", domain)

	return comp, nil
}

// Get returns one competitor of userID.
func (s *Service) Get(ctx context.Context, userID, competitorID string) (*models.Competitor, error) {
	comp, err := s.store.GetCompetitor(ctx, userID, competitorID)
	if err != nil {
		return nil, fmt.Errorf("competitors.Get: %w", err)
	}

	return comp, nil
}

// List returns the competitors of userID.
func (s *Service) List(ctx context.Context, userID string) ([]models.Competitor, error) {
	comps, err := s.store.ListCompetitors(ctx, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("competitors.List: %w", err)
	}
	if comps == nil {
		comps = []models.Competitor{}
	}

	return comps, nil
}

// SetPages replaces the tracked pages of a competitor and records a baseline for each page.
// Pages whose baseline fetch fails are still tracked with an empty state.
func (s *Service) SetPages(ctx context.Context, userID, competitorID string, inputs []PageInput) (int, error) {
	const opn = "competitors.SetPages"

	pages := make([]models.TrackedPage, 0, len(inputs))
	for idx, inp := range inputs {
		page, err := newTrackedPage(inp)
		if err != nil {
			return 0, fmt.Errorf("%s: page %d: %w", opn, idx, err)
		}
		page.ID = s.newID()
		pages = append(pages, page)
	}

	unlock := s.locks.Lock(competitorID)
	defer unlock()

	if _, err := s.store.GetCompetitor(ctx, userID, competitorID); err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	for idx := range pages {
		state, ok := s.scanner.Observe(ctx, pages[idx].URL)
		if !ok {
			s.log.WarnContext(ctx, "Baseline fetch failed", "op", opn, "competitor_id", competitorID, "url", pages[idx].URL)
			continue
		}
		pages[idx].LastContentHash = &state.ContentHash
		pages[idx].Content = &state.Content
		pages[idx].LastScraped = &state.ScrapedAt
	}

	if err := s.store.ReplaceTrackedPages(ctx, competitorID, pages); err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return len(pages), nil
}

// Delete removes a competitor with its pages and change history.
func (s *Service) Delete(ctx context.Context, userID, competitorID string) error {
	unlock := s.locks.Lock(competitorID)
	defer unlock()

	if err := s.store.DeleteCompetitor(ctx, userID, competitorID); err != nil {
		return fmt.Errorf("competitors.Delete: %w", err)
	}

	return nil
}

// Scan checks every tracked page of a competitor. Scans of the same competitor never overlap.
func (s *Service) Scan(ctx context.Context, userID, competitorID string) (*models.ScanResult, error) {
	const opn = "competitors.Scan"

	unlock := s.locks.Lock(competitorID)
	defer unlock()

	comp, err := s.store.GetCompetitor(ctx, userID, competitorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	result := s.scanner.Scan(ctx, comp)
	s.notify(ctx, comp, result.Changes)

	return result, nil
}

func (s *Service) notify(ctx context.Context, comp *models.Competitor, changes []models.ChangeRecord) {
	if s.notifier == nil {
		return
	}

	var significant []models.ChangeRecord
	for _, change := range changes {
		if change.SignificanceScore >= s.minSignificance {
			significant = append(significant, change)
		}
	}
	if len(significant) == 0 {
		return
	}

	if err := s.notifier.NotifyChanges(ctx, comp, significant); err != nil {
		s.log.WarnContext(ctx, "Change notification failed",
			"op", "competitors.notify", "competitor_id", comp.ID, "error", err)
	}
}

// Changes returns the history of one competitor, newest first.
func (s *Service) Changes(ctx context.Context, userID, competitorID string) ([]models.ChangeRecord, error) {
	const opn = "competitors.Changes"

	if _, err := s.store.GetCompetitor(ctx, userID, competitorID); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	changes, err := s.store.ListChangesByCompetitor(ctx, competitorID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return changes, nil
}

// RecentChanges returns the newest changes across all competitors of userID.
func (s *Service) RecentChanges(ctx context.Context, userID string) ([]models.ChangeRecord, error) {
	changes, err := s.store.ListChangesByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("competitors.RecentChanges: %w", err)
	}

	return changes, nil
}

// DashboardStats summarizes the monitoring activity of userID.
func (s *Service) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	stats, err := s.store.GetDashboardStats(ctx, userID, s.now().Add(-RecentWindow), HighSignificance)
	if err != nil {
		return nil, fmt.Errorf("competitors.DashboardStats: %w", err)
	}

	return stats, nil
}

// Discover suggests trackable pages of domain.
func (s *Service) Discover(ctx context.Context, domain string) ([]models.PageSuggestion, error) {
	const opn = "competitors.Discover"

	suggestions, err := s.discoverer.Discover(ctx, domain)
	if err != nil {
		if errors.Is(err, discovery.ErrEmptyDomain) {
			return nil, fmt.Errorf("%s: %w: %w", opn, ErrValidation, err)
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return suggestions, nil
}

func newTrackedPage(inp PageInput) (models.TrackedPage, error) {
	raw := strings.TrimSpace(inp.URL)
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return models.TrackedPage{}, fmt.Errorf("%w: url %q must be an absolute http(s) URL", ErrValidation, inp.URL)
	}
	if !inp.PageType.Valid() {
		return models.TrackedPage{}, fmt.Errorf("%w: unknown page_type %q", ErrValidation, inp.PageType)
	}

	return models.TrackedPage{URL: raw, PageType: inp.PageType}, nil
}
