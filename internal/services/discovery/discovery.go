// Package discovery suggests pages worth tracking on a competitor's site.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/parser"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultProbeTimeout = 10 * time.Second

	maxParallelProbes = 4
)

var ErrEmptyDomain = errors.New("domain is required")

// candidate is a conventional path and the page type it usually holds.
type candidate struct {
	path     string
	pageType models.PageType
}

var candidates = []candidate{
	{"/pricing", models.PageTypePricing},
	{"/plans", models.PageTypePricing},
	{"/features", models.PageTypeFeatures},
	{"/product", models.PageTypeFeatures},
	{"/blog", models.PageTypeBlog},
	{"/changelog", models.PageTypeChangelog},
	{"/updates", models.PageTypeChangelog},
	{"/news", models.PageTypeBlog},
}

// Discoverer probes conventional paths of a domain with HEAD requests.
type Discoverer struct {
	log     *slog.Logger
	client  *http.Client
	timeout time.Duration
}

// NewDiscoverer creates a Discoverer. Redirects are reported as-is and never followed.
func NewDiscoverer(log *slog.Logger, timeout time.Duration) *Discoverer {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Discoverer{log: log, client: client, timeout: timeout}
}

// BaseURL turns user input into the site root that paths are appended to.
func BaseURL(domain string) string {
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	lower := strings.ToLower(domain)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return domain
	}

	return "https://" + domain
}

// Discover returns the candidate pages that answered 200, in candidate order.
func (d *Discoverer) Discover(ctx context.Context, domain string) ([]models.PageSuggestion, error) {
	const opn = "discovery.Discover"

	if strings.TrimSpace(domain) == "" {
		return nil, fmt.Errorf("%s: %w", opn, ErrEmptyDomain)
	}

	base := BaseURL(domain)
	log := d.log.With("op", opn, "base", base)

	found := make([]bool, len(candidates))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxParallelProbes)
	for idx, cand := range candidates {
		grp.Go(func() error {
			found[idx] = d.probe(gctx, log, base+cand.path)
			return nil
		})
	}
	_ = grp.Wait() // probes never return errors

	suggestions := []models.PageSuggestion{}
	for idx, cand := range candidates {
		if found[idx] {
			suggestions = append(suggestions, models.PageSuggestion{
				URL:          base + cand.path,
				PageType:     cand.pageType,
				FoundContent: true,
			})
		}
	}

	log.InfoContext(ctx, "Discovery finished", "probed", len(candidates), "found", len(suggestions))

	return suggestions, nil
}

func (d *Discoverer) probe(ctx context.Context, log *slog.Logger, pageURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pageURL, nil)
	if err != nil {
		log.DebugContext(ctx, "Probe request cannot be built", "url", pageURL, "error", err)
		return false
	}
	req.Header.Set("User-Agent", parser.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		log.DebugContext(ctx, "Probe failed", "url", pageURL, "error", err)
		return false
	}
	resp.Body.Close()

	log.DebugContext(ctx, "Probe answered", "url", pageURL, "status", resp.StatusCode)

	return resp.StatusCode == http.StatusOK
}
