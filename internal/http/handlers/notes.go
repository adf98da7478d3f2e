package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorpath/internal/domain"
)

type noteRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	AttachmentURL string `json:"attachment_url"`
}

func (a *App) NotesList(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(r)
	notes, err := a.Notes.ListByDonor(r.Context(), chi.URLParam(r, "id"), actor.ID)
	if err != nil {
		a.storeError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteDTO(n))
	}
	a.json(w, http.StatusOK, map[string]any{"notes": items})
}

func (a *App) NotesCreate(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Content == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content required")
		return
	}
	actor := a.actor(r)
	note := domain.Note{
		DonorID:       chi.URLParam(r, "id"),
		UserID:        actor.ID,
		Title:         req.Title,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
	}
	if err := a.Notes.Create(r.Context(), &note); err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusCreated, noteDTO(note))
}

func noteDTO(n domain.Note) map[string]any {
	return map[string]any{
		"id":             n.ID,
		"donor_id":       n.DonorID,
		"user_id":        n.UserID,
		"title":          n.Title,
		"content":        n.Content,
		"attachment_url": n.AttachmentURL,
		"created_at":     n.CreatedAt,
	}
}
