package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorpath/internal/domain"
)

type versionCreateRequest struct {
	Note string `json:"note"`
}

type versionRestoreRequest struct {
	DonorID string `json:"donor_id"`
}

func (a *App) AnalysisVersionsList(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(r)
	versions, err := a.Versions.ListByDonor(r.Context(), chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		a.storeError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(versions))
	for _, v := range versions {
		items = append(items, versionDTO(v))
	}
	a.json(w, http.StatusOK, map[string]any{"versions": items})
}

func (a *App) AnalysisVersionsCreate(w http.ResponseWriter, r *http.Request) {
	var req versionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	actor := a.actor(r)
	version, err := a.Versions.Create(r.Context(), chi.URLParam(r, "id"), actor.ID, req.Note)
	if err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusCreated, versionDTO(*version))
}

// AnalysisVersionsRestore makes a past snapshot current again.
func (a *App) AnalysisVersionsRestore(w http.ResponseWriter, r *http.Request) {
	var req versionRestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.DonorID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donor_id required")
		return
	}
	actor := a.actor(r)
	version, err := a.Versions.Restore(r.Context(), chi.URLParam(r, "id"), req.DonorID, actor.ID)
	if err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusOK, versionDTO(*version))
}

func versionDTO(v domain.AnalysisVersion) map[string]any {
	return map[string]any{
		"id":         v.ID,
		"donor_id":   v.DonorID,
		"user_id":    v.UserID,
		"version":    v.Version,
		"note":       v.Note,
		"is_current": v.IsCurrent,
		"created_at": v.CreatedAt,
	}
}
