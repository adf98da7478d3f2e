package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"donorpath/internal/domain"
	"donorpath/internal/middleware"
	"donorpath/internal/rbac"
)

// Analyzer produces a narrative analysis for one donor.
type Analyzer interface {
	Analyze(ctx context.Context, donor domain.DonorRecord) (string, error)
}

type App struct {
	Logger   zerolog.Logger
	AppEnv   string
	Donors   domain.DonorRepository
	Notes    domain.NoteRepository
	Workflow domain.WorkflowResponseRepository
	Versions domain.AnalysisVersionRepository
	RBAC     *rbac.Service
	Analyzer Analyzer
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// actor resolves the acting user from the request context. Admin status
// comes from the cached role set; a failed role lookup degrades to a
// non-admin view rather than failing the request.
func (a *App) actor(r *http.Request) domain.Actor {
	userID := middleware.UserIDFromContext(r.Context())
	actor := domain.Actor{ID: userID}
	if userID == "" || a.RBAC == nil {
		return actor
	}
	snapshot, err := a.RBAC.Lookup(r.Context(), userID)
	if err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Msg("role lookup failed, assuming non-admin")
		return actor
	}
	actor.Admin = snapshot.IsAdmin()
	return actor
}

// storeError maps the repository error taxonomy onto HTTP statuses.
func (a *App) storeError(w http.ResponseWriter, err error) {
	var connErr *domain.ConnError
	var authErr *domain.AuthError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &connErr):
		a.error(w, http.StatusServiceUnavailable, "store_unavailable", connErr.Error())
	case errors.As(err, &authErr):
		a.error(w, http.StatusUnauthorized, "unauthorized", authErr.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
