package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorpath/internal/domain"
)

type workflowSaveRequest struct {
	StepID     string          `json:"step_id"`
	QuestionID string          `json:"question_id"`
	Response   json.RawMessage `json:"response"`
}

func (a *App) WorkflowResponsesList(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(r)
	responses, err := a.Workflow.ListByDonor(r.Context(), chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		a.storeError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(responses))
	for _, resp := range responses {
		items = append(items, workflowDTO(resp))
	}
	a.json(w, http.StatusOK, map[string]any{"responses": items})
}

// WorkflowResponsesSave upserts one questionnaire answer. Saving the
// same (step, question) again replaces the earlier answer.
func (a *App) WorkflowResponsesSave(w http.ResponseWriter, r *http.Request) {
	var req workflowSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.StepID == "" || req.QuestionID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "step_id and question_id required")
		return
	}
	answer, err := domain.EncodeWorkflowAnswer(req.Response)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	actor := a.actor(r)
	resp := domain.WorkflowResponse{
		DonorID:    chi.URLParam(r, "id"),
		UserID:     actor.ID,
		StepID:     req.StepID,
		QuestionID: req.QuestionID,
		Response:   answer,
	}
	if err := a.Workflow.Save(r.Context(), &resp); err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusOK, workflowDTO(resp))
}

func workflowDTO(resp domain.WorkflowResponse) map[string]any {
	var answer any
	if text, list := resp.ParseResponse(); list != nil {
		answer = list
	} else {
		answer = text
	}
	return map[string]any{
		"id":          resp.ID,
		"donor_id":    resp.DonorID,
		"user_id":     resp.UserID,
		"step_id":     resp.StepID,
		"question_id": resp.QuestionID,
		"response":    answer,
		"created_at":  resp.CreatedAt,
		"updated_at":  resp.UpdatedAt,
	}
}
