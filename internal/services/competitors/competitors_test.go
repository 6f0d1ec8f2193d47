package competitors_test

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
	"github.com/Houeta/scoperival/internal/repository/sqlite"
	"github.com/Houeta/scoperival/internal/services/competitors"
	"github.com/Houeta/scoperival/internal/services/discovery"
	"github.com/Houeta/scoperival/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *competitors.Service
	repo       *sqlite.Repository
	scanner    *mocks.Scanner
	discoverer *mocks.PageDiscoverer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	repo, err := sqlite.NewRepository(t.Context(), log, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, repo.CreateUser(t.Context(), &models.User{
			ID: id, Email: id + "@example.com", HashedPassword: "x", CompanyName: "Acme", CreatedAt: time.Now().UTC(),
		}))
	}

	scanner := mocks.NewScanner(t)
	discoverer := mocks.NewPageDiscoverer(t)

	return &fixture{
		svc:        competitors.NewService(log, repo, scanner, discoverer),
		repo:       repo,
		scanner:    scanner,
		discoverer: discoverer,
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	comp, err := fx.svc.Create(t.Context(), "u1", " stripe.com ", "Stripe Inc.")
	require.NoError(t, err)
	assert.NotEmpty(t, comp.ID)
	assert.Equal(t, "stripe.com", comp.Domain)
	assert.Empty(t, comp.TrackedPages)

	_, err = fx.svc.Create(t.Context(), "u1", "", "Stripe Inc.")
	require.ErrorIs(t, err, competitors.ErrValidation)
	_, err = fx.svc.Create(t.Context(), "u1", "stripe.com", "  ")
	require.ErrorIs(t, err, competitors.ErrValidation)

	list, err := fx.svc.List(t.Context(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, comp.ID, list[0].ID)

	other, err := fx.svc.List(t.Context(), "u2")
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)

	_, err = fx.svc.Get(t.Context(), "u2", comp.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestService_SetPages(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := t.Context()
	comp, err := fx.svc.Create(ctx, "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)

	scraped := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fx.scanner.On("Observe", mock.Anything, "https://stripe.com/pricing").
		Return(models.PageState{ContentHash: "h1", Content: "Pro $49", ScrapedAt: scraped}, true).Once()
	fx.scanner.On("Observe", mock.Anything, "https://stripe.com/blog").
		Return(models.PageState{}, false).Once()

	count, err := fx.svc.SetPages(ctx, "u1", comp.ID, []competitors.PageInput{
		{URL: "https://stripe.com/pricing", PageType: models.PageTypePricing},
		{URL: "https://stripe.com/blog", PageType: models.PageTypeBlog},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := fx.svc.Get(ctx, "u1", comp.ID)
	require.NoError(t, err)
	require.Len(t, got.TrackedPages, 2)

	pricing := got.TrackedPages[0]
	assert.Equal(t, "https://stripe.com/pricing", pricing.URL)
	require.NotNil(t, pricing.LastContentHash)
	assert.Equal(t, "h1", *pricing.LastContentHash)
	assert.Equal(t, "Pro $49", *pricing.Content)
	assert.True(t, scraped.Equal(*pricing.LastScraped))

	blog := got.TrackedPages[1]
	assert.Nil(t, blog.LastContentHash)
	assert.Nil(t, blog.Content)
	assert.Nil(t, blog.LastScraped)

	// A second call replaces the list.
	fx.scanner.On("Observe", mock.Anything, "https://stripe.com/changelog").
		Return(models.PageState{ContentHash: "h2", Content: "v2", ScrapedAt: scraped}, true).Once()
	count, err = fx.svc.SetPages(ctx, "u1", comp.ID, []competitors.PageInput{
		{URL: "https://stripe.com/changelog", PageType: models.PageTypeChangelog},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err = fx.svc.Get(ctx, "u1", comp.ID)
	require.NoError(t, err)
	require.Len(t, got.TrackedPages, 1)
	assert.Equal(t, models.PageTypeChangelog, got.TrackedPages[0].PageType)
}

func TestService_SetPages_Errors(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := t.Context()
	comp, err := fx.svc.Create(ctx, "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		userID      string
		compID      string
		pages       []competitors.PageInput
		expectedErr error
	}{
		{
			name:        "Relative URL",
			userID:      "u1",
			compID:      comp.ID,
			pages:       []competitors.PageInput{{URL: "/pricing", PageType: models.PageTypePricing}},
			expectedErr: competitors.ErrValidation,
		},
		{
			name:        "Unsupported scheme",
			userID:      "u1",
			compID:      comp.ID,
			pages:       []competitors.PageInput{{URL: "ftp://stripe.com/pricing", PageType: models.PageTypePricing}},
			expectedErr: competitors.ErrValidation,
		},
		{
			name:        "Unknown page type",
			userID:      "u1",
			compID:      comp.ID,
			pages:       []competitors.PageInput{{URL: "https://stripe.com/jobs", PageType: "careers"}},
			expectedErr: competitors.ErrValidation,
		},
		{
			name:        "Competitor of another user",
			userID:      "u2",
			compID:      comp.ID,
			pages:       []competitors.PageInput{{URL: "https://stripe.com/pricing", PageType: models.PageTypePricing}},
			expectedErr: repository.ErrNotFound,
		},
		{
			name:        "Unknown competitor",
			userID:      "u1",
			compID:      "missing",
			pages:       []competitors.PageInput{},
			expectedErr: repository.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.SetPages(ctx, tc.userID, tc.compID, tc.pages)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestService_Scan(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := t.Context()
	comp, err := fx.svc.Create(ctx, "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)

	changes := []models.ChangeRecord{
		{ID: "ch1", CompetitorID: comp.ID, SignificanceScore: 5},
		{ID: "ch2", CompetitorID: comp.ID, SignificanceScore: 2},
		{ID: "ch3", CompetitorID: comp.ID, SignificanceScore: 4},
	}
	fx.scanner.On("Scan", mock.Anything, mock.MatchedBy(func(c *models.Competitor) bool {
		return c.ID == comp.ID && c.CompanyName == "Stripe Inc."
	})).Return(&models.ScanResult{Changes: changes, PagesScanned: 3}).Once()

	notifier := mocks.NewNotifier(t)
	notifier.On("NotifyChanges", mock.Anything, mock.Anything, []models.ChangeRecord{changes[0], changes[2]}).
		Return(errors.New("telegram is down")).Once()
	fx.svc.SetNotifier(notifier, 4)

	result, err := fx.svc.Scan(ctx, "u1", comp.ID)
	require.NoError(t, err)
	assert.Len(t, result.Changes, 3)

	_, err = fx.svc.Scan(ctx, "u2", comp.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestService_Scan_NothingToNotify(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	comp, err := fx.svc.Create(t.Context(), "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)

	fx.scanner.On("Scan", mock.Anything, mock.Anything).
		Return(&models.ScanResult{Changes: []models.ChangeRecord{{ID: "ch1", SignificanceScore: 1}}}).Once()
	fx.svc.SetNotifier(mocks.NewNotifier(t), 4)

	_, err = fx.svc.Scan(t.Context(), "u1", comp.ID)
	require.NoError(t, err)
}

func TestService_Scan_SameCompetitorIsSerialized(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	comp, err := fx.svc.Create(t.Context(), "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)

	var active, maxActive atomic.Int32
	fx.scanner.On("Scan", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			cur := active.Add(1)
			for {
				prev := maxActive.Load()
				if cur <= prev || maxActive.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			active.Add(-1)
		}).
		Return(&models.ScanResult{Changes: []models.ChangeRecord{}}).Times(4)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, scanErr := fx.svc.Scan(t.Context(), "u1", comp.ID)
			assert.NoError(t, scanErr)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
}

func TestService_ChangesAndStats(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := t.Context()
	comp, err := fx.svc.Create(ctx, "u1", "stripe.com", "Stripe Inc.")
	require.NoError(t, err)
	fx.scanner.On("Observe", mock.Anything, mock.Anything).Return(models.PageState{}, false)
	_, err = fx.svc.SetPages(ctx, "u1", comp.ID, []competitors.PageInput{
		{URL: "https://stripe.com/pricing", PageType: models.PageTypePricing},
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	for idx, rec := range []struct {
		age   time.Duration
		score int
	}{{time.Hour, 5}, {2 * time.Hour, 3}, {10 * 24 * time.Hour, 4}} {
		require.NoError(t, fx.repo.CreateChange(ctx, &models.ChangeRecord{
			ID:                    string(rune('a' + idx)),
			CompetitorID:          comp.ID,
			PageID:                "p",
			ChangeSummary:         "s",
			StrategicImplications: "i",
			SignificanceScore:     rec.score,
			SuggestedActions:      []string{"x"},
			CreatedAt:             now.Add(-rec.age),
		}))
	}

	byComp, err := fx.svc.Changes(ctx, "u1", comp.ID)
	require.NoError(t, err)
	require.Len(t, byComp, 3)
	assert.Equal(t, "a", byComp[0].ID)
	assert.Equal(t, "c", byComp[2].ID)

	_, err = fx.svc.Changes(ctx, "u2", comp.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	recent, err := fx.svc.RecentChanges(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	none, err := fx.svc.RecentChanges(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)

	stats, err := fx.svc.DashboardStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{
		TotalCompetitors:        1,
		TotalTrackedPages:       1,
		RecentChanges:           2,
		HighSignificanceChanges: 2,
	}, stats)

	// Deleting cascades to pages and changes.
	require.NoError(t, fx.svc.Delete(ctx, "u1", comp.ID))
	require.ErrorIs(t, fx.svc.Delete(ctx, "u1", comp.ID), repository.ErrNotFound)

	stats, err = fx.svc.DashboardStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{}, stats)
}

func TestService_Discover(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	suggestions := []models.PageSuggestion{
		{URL: "https://stripe.com/pricing", PageType: models.PageTypePricing, FoundContent: true},
	}
	fx.discoverer.On("Discover", mock.Anything, "stripe.com").Return(suggestions, nil).Once()
	fx.discoverer.On("Discover", mock.Anything, "").Return(nil, discovery.ErrEmptyDomain).Once()
	fx.discoverer.On("Discover", mock.Anything, "broken.com").Return(nil, assert.AnError).Once()

	got, err := fx.svc.Discover(t.Context(), "stripe.com")
	require.NoError(t, err)
	assert.Equal(t, suggestions, got)

	_, err = fx.svc.Discover(t.Context(), "")
	require.ErrorIs(t, err, competitors.ErrValidation)

	_, err = fx.svc.Discover(t.Context(), "broken.com")
	require.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, competitors.ErrValidation)
}
