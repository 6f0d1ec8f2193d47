package api

import (
	"fmt"
	"net/http"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/services/competitors"
	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type domainRequest struct {
	Domain string `json:"domain"`
}

type createCompetitorRequest struct {
	Domain      string `json:"domain"`
	CompanyName string `json:"company_name"`
}

type setPagesRequest struct {
	URLs []competitors.PageInput `json:"urls"`
}

type scanResponse struct {
	Message string                `json:"message"`
	Changes []models.ChangeRecord `json:"changes"`
}

type suggestionsResponse struct {
	Suggestions []models.PageSuggestion `json:"suggestions"`
}

func (s *Server) handleHealth(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": message, "status": "healthy"})
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.auth.Register(r.Context(), req.Email, req.Password, req.CompanyName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	suggestions, err := s.competitors.Discover(r.Context(), req.Domain)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleCreateCompetitor(w http.ResponseWriter, r *http.Request) {
	var req createCompetitorRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	comp, err := s.competitors.Create(r.Context(), user.ID, req.Domain, req.CompanyName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comp)
}

func (s *Server) handleListCompetitors(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	comps, err := s.competitors.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comps)
}

func (s *Server) handleSetPages(w http.ResponseWriter, r *http.Request) {
	var req setPagesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	count, err := s.competitors.SetPages(r.Context(), user.ID, chi.URLParam(r, "competitorID"), req.URLs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: fmt.Sprintf("Added %d pages for tracking", count)})
}

func (s *Server) handleDeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if err := s.competitors.Delete(r.Context(), user.ID, chi.URLParam(r, "competitorID")); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: "Competitor deleted successfully"})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	result, err := s.competitors.Scan(r.Context(), user.ID, chi.URLParam(r, "competitorID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{Message: result.Message(), Changes: result.Changes})
}

func (s *Server) handleCompetitorChanges(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	changes, err := s.competitors.Changes(r.Context(), user.ID, chi.URLParam(r, "competitorID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, changes)
}

func (s *Server) handleRecentChanges(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	changes, err := s.competitors.RecentChanges(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, changes)
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	stats, err := s.competitors.DashboardStats(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
