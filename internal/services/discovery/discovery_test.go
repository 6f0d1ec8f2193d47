package discovery_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/services/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{"stripe.com", "https://stripe.com"},
		{"  stripe.com/ ", "https://stripe.com"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://stripe.com/", "https://stripe.com"},
		{"httpie.io", "https://httpie.io"},
		{"httptoolkit.com/", "https://httptoolkit.com"},
		{"HTTPS://Stripe.com", "HTTPS://Stripe.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, discovery.BaseURL(tc.input))
		})
	}
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodHead, r.Method)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/pricing", "/blog":
			w.WriteHeader(http.StatusOK)
		case "/plans":
			http.Redirect(w, r, "/pricing", http.StatusMovedPermanently)
		case "/features":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	disc := discovery.NewDiscoverer(slogDiscard(), time.Second)

	got, err := disc.Discover(t.Context(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []models.PageSuggestion{
		{URL: srv.URL + "/pricing", PageType: models.PageTypePricing, FoundContent: true},
		{URL: srv.URL + "/blog", PageType: models.PageTypeBlog, FoundContent: true},
	}, got)
	// Redirects are not followed, so exactly one request per candidate.
	assert.Equal(t, int32(8), requests.Load())
}

func TestDiscoverer_Discover_NothingFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	got, err := discovery.NewDiscoverer(slogDiscard(), time.Second).Discover(t.Context(), srv.URL)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDiscoverer_Discover_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	got, err := discovery.NewDiscoverer(slogDiscard(), 200*time.Millisecond).Discover(t.Context(), addr)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverer_Discover_SlowProbeTimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/changelog" {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	got, err := discovery.NewDiscoverer(slogDiscard(), 100*time.Millisecond).Discover(t.Context(), srv.URL)

	require.NoError(t, err)
	require.Len(t, got, 7)
	for _, s := range got {
		assert.NotEqual(t, srv.URL+"/changelog", s.URL)
	}
}

func TestDiscoverer_Discover_EmptyDomain(t *testing.T) {
	t.Parallel()

	got, err := discovery.NewDiscoverer(slogDiscard(), 0).Discover(t.Context(), "  ")

	require.ErrorIs(t, err, discovery.ErrEmptyDomain)
	assert.Nil(t, got)
}
