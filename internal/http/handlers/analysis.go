package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"donorpath/internal/domain"
	"donorpath/internal/providers/analysis"
)

type analysisRequest struct {
	DonorData *domain.DonorRecord `json:"donorData"`
}

// Analysis proxies one donor profile to the language model and returns
// the generated narrative.
func (a *App) Analysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.analysisError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}
	if req.DonorData == nil {
		a.analysisError(w, http.StatusBadRequest, "Donor data is required", nil)
		return
	}
	if a.Analyzer == nil {
		a.analysisError(w, http.StatusInternalServerError, "API configuration error", nil)
		return
	}

	text, err := a.Analyzer.Analyze(r.Context(), *req.DonorData)
	if err != nil {
		a.Logger.Error().Err(err).Msg("analysis generation failed")
		switch {
		case errors.Is(err, domain.ErrNotConfigured):
			a.analysisError(w, http.StatusInternalServerError, "API configuration error", nil)
		case errors.Is(err, analysis.ErrTimeout):
			a.analysisError(w, http.StatusGatewayTimeout, "Analysis generation timed out - please try again", nil)
		case errors.Is(err, analysis.ErrRateLimited):
			a.analysisError(w, http.StatusTooManyRequests, "Too many requests - please try again later", nil)
		default:
			a.analysisError(w, http.StatusInternalServerError, "Failed to generate analysis - please try again", err)
		}
		return
	}
	a.json(w, http.StatusOK, map[string]string{"analysis": text})
}

// analysisError keeps upstream detail out of responses except in
// development.
func (a *App) analysisError(w http.ResponseWriter, status int, message string, cause error) {
	payload := map[string]any{"error": message}
	if cause != nil && a.AppEnv == "development" {
		payload["details"] = cause.Error()
	}
	a.json(w, status, payload)
}
