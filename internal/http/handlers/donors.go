package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"donorpath/internal/domain"
	"donorpath/internal/ingest"
)

// maxUploadBytes bounds the CSV request body.
const maxUploadBytes = 32 << 20

var uploadPrinter = message.NewPrinter(language.English)

func (a *App) DonorsList(w http.ResponseWriter, r *http.Request) {
	donors, err := a.Donors.List(r.Context(), a.actor(r))
	if err != nil {
		a.storeError(w, err)
		return
	}
	if donors == nil {
		donors = []domain.DonorRecord{}
	}
	a.json(w, http.StatusOK, map[string]any{"donors": donors})
}

// DonorsUpload runs the full ingestion pipeline over the request body
// and persists the batch. Any stage failure stops the upload with the
// stage's complete report; nothing is persisted unless every row passed
// validation. The response carries the fresh donor list so the client
// reads its own write.
func (a *App) DonorsUpload(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload body")
		return
	}

	donors, err := ingest.Run(string(body))
	if err != nil {
		a.ingestError(w, err)
		return
	}

	inserted, err := a.Donors.InsertBatch(r.Context(), donors, actor)
	if err != nil {
		a.Logger.Error().Err(err).Int("inserted", inserted).Msg("donor batch insert failed")
		a.insertError(w, err, inserted)
		return
	}

	listed, err := a.Donors.List(r.Context(), actor)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if listed == nil {
		listed = []domain.DonorRecord{}
	}
	a.json(w, http.StatusCreated, map[string]any{
		"inserted": inserted,
		"message":  uploadPrinter.Sprintf("Successfully imported %d donors", inserted),
		"donors":   listed,
	})
}

// ingestError renders a pipeline failure as a 422 carrying the stage's
// full report so the client can surface every problem at once.
func (a *App) ingestError(w http.ResponseWriter, err error) {
	var parseErr *ingest.ParseError
	var schemaErr *ingest.SchemaError
	var rowErr *ingest.RowValidationError
	switch {
	case errors.As(err, &parseErr):
		a.json(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "parse_error",
			"message": parseErr.Error(),
			"rows":    parseErr.Diags,
		})
	case errors.As(err, &schemaErr):
		payload := map[string]any{
			"error":   "schema_error",
			"message": schemaErr.Message,
		}
		if schemaErr.Expected != 0 {
			payload["expected"] = schemaErr.Expected
			payload["found"] = schemaErr.Found
		}
		if len(schemaErr.Missing) > 0 {
			payload["missing"] = schemaErr.Missing
		}
		a.json(w, http.StatusUnprocessableEntity, payload)
	case errors.As(err, &rowErr):
		a.json(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "validation_error",
			"message": rowErr.Error(),
			"issues":  rowErr.Issues,
		})
	default:
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	}
}

// insertError is storeError plus the count of rows already committed,
// since a mid-batch failure leaves earlier chunks in place.
func (a *App) insertError(w http.ResponseWriter, err error, inserted int) {
	var connErr *domain.ConnError
	var authErr *domain.AuthError
	status := http.StatusInternalServerError
	code := "internal"
	switch {
	case errors.As(err, &connErr):
		status, code = http.StatusServiceUnavailable, "store_unavailable"
	case errors.As(err, &authErr):
		status, code = http.StatusUnauthorized, "unauthorized"
	}
	a.json(w, status, map[string]any{
		"error":    code,
		"message":  err.Error(),
		"inserted": inserted,
	})
}

func (a *App) DonorsUpdate(w http.ResponseWriter, r *http.Request) {
	var donor domain.DonorRecord
	if err := json.NewDecoder(r.Body).Decode(&donor); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	donor.ID = chi.URLParam(r, "id")
	if donor.ID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donor id required")
		return
	}
	if err := a.Donors.Update(r.Context(), donor, a.actor(r)); err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": donor.ID})
}

func (a *App) DonorsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donor id required")
		return
	}
	if err := a.Donors.Delete(r.Context(), domain.DonorRecord{ID: id}, a.actor(r)); err != nil {
		a.storeError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id})
}
