package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// UserAgent is sent with every outbound request so pages render their desktop variant.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultFetchTimeout = 30 * time.Second

	maxBodySize = 10 << 20
)

// HTMLFetcher retrieves the normalized text of a page.
type HTMLFetcher interface {
	// FetchContent returns the normalized text of url, or false when the page is unavailable.
	FetchContent(ctx context.Context, url string) (string, bool)
}

type Parser struct {
	log     *slog.Logger
	client  *http.Client
	timeout time.Duration
}

func NewParser(log *slog.Logger, timeout time.Duration) *Parser {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Parser{log: log, client: http.DefaultClient, timeout: timeout}
}

// FetchContent downloads pageURL and returns its normalized text.
// Any failure is logged and reported as absence so a single page never aborts a scan.
func (p *Parser) FetchContent(ctx context.Context, pageURL string) (string, bool) {
	const opn = "parser.FetchContent"
	log := p.log.With("op", opn, "url", pageURL)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.getHTMLResponse(ctx, pageURL)
	if err != nil {
		log.WarnContext(ctx, "Page fetch failed", "error", err)
		return "", false
	}
	defer resp.Body.Close()

	text, err := Normalize(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.WarnContext(ctx, "Page body cannot be normalized", "error", err)
		return "", false
	}
	log.DebugContext(ctx, "Page content normalized", "length", len([]rune(text)))

	return text, true
}

func (p *Parser) getHTMLResponse(ctx context.Context, pageURL string) (*http.Response, error) {
	reqURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL %s: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	p.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", pageURL, err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	p.log.DebugContext(ctx, "Successfully received http response", "status code", res.StatusCode)

	return res, nil
}
