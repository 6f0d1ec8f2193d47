// Package api exposes the monitoring services over a JSON HTTP interface.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/scoperival/internal/auth"
	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/services/competitors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Authenticator registers users and resolves bearer tokens.
type Authenticator interface {
	Register(ctx context.Context, email, password, companyName string) (*auth.Token, error)
	Login(ctx context.Context, email, password string) (*auth.Token, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// CompetitorService is the competitor monitoring use case layer.
type CompetitorService interface {
	Create(ctx context.Context, userID, domain, companyName string) (*models.Competitor, error)
	List(ctx context.Context, userID string) ([]models.Competitor, error)
	SetPages(ctx context.Context, userID, competitorID string, pages []competitors.PageInput) (int, error)
	Delete(ctx context.Context, userID, competitorID string) error
	Scan(ctx context.Context, userID, competitorID string) (*models.ScanResult, error)
	Changes(ctx context.Context, userID, competitorID string) ([]models.ChangeRecord, error)
	RecentChanges(ctx context.Context, userID string) ([]models.ChangeRecord, error)
	DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error)
	Discover(ctx context.Context, domain string) ([]models.PageSuggestion, error)
}

const maxBodyBytes = 1 << 20

// Server routes API requests to the services.
type Server struct {
	log         *slog.Logger
	auth        Authenticator
	competitors CompetitorService
	router      chi.Router
}

// NewServer builds the router. An empty origins list allows every origin.
func NewServer(log *slog.Logger, authSvc Authenticator, compSvc CompetitorService, origins []string) *Server {
	srv := &Server{log: log, auth: authSvc, competitors: compSvc}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.RealIP)
	rtr.Use(srv.logRequests)
	rtr.Use(middleware.Recoverer)
	rtr.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	}))

	rtr.Get("/", srv.handleHealth("Scoperival API is running"))

	rtr.Route("/api", func(r chi.Router) {
		r.Get("/", srv.handleHealth("Scoperival API v1.0"))

		r.Post("/auth/register", srv.handleRegister)
		r.Post("/auth/login", srv.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(srv.requireUser)

			r.Get("/me", srv.handleMe)

			r.Post("/competitors/discover-pages", srv.handleDiscover)
			r.Post("/competitors", srv.handleCreateCompetitor)
			r.Get("/competitors", srv.handleListCompetitors)
			r.Post("/competitors/{competitorID}/pages", srv.handleSetPages)
			r.Delete("/competitors/{competitorID}", srv.handleDeleteCompetitor)
			r.Post("/competitors/{competitorID}/scan", srv.handleScan)
			r.Get("/competitors/{competitorID}/changes", srv.handleCompetitorChanges)

			r.Get("/changes", srv.handleRecentChanges)
			r.Get("/dashboard/stats", srv.handleDashboardStats)
		})
	})

	srv.router = rtr

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps handler with the timeouts used in production.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// A manual scan fetches every page and may consult the model for each of them.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
}
