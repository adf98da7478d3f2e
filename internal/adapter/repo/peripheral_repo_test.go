package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"donorpath/internal/domain"
	"donorpath/internal/sqlinline"
)

// scanRows serves canned rows through per-row scan closures.
type scanRows struct {
	rowsBase
	scans []func(dest ...any) error
	idx   int
}

func (s *scanRows) Next() bool {
	if s.idx >= len(s.scans) {
		return false
	}
	s.idx++
	return true
}

func (s *scanRows) Scan(dest ...any) error { return s.scans[s.idx-1](dest...) }
func (s *scanRows) Err() error             { return nil }
func (s *scanRows) Close()                 {}

func TestNoteCreateScansGeneratedColumns(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	db := &fakeSQL{row: func(query string, args []any) pgx.Row {
		return simpleRow{scan: func(dest ...any) error {
			*(dest[0].(*string)) = "note-1"
			*(dest[1].(*time.Time)) = created
			return nil
		}}
	}}
	repo := NewNoteRepository(db)

	note := domain.Note{DonorID: "d1", UserID: "u1", Title: "Call", Content: "Summary"}
	if err := repo.Create(context.Background(), &note); err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.ID != "note-1" || !note.CreatedAt.Equal(created) {
		t.Fatalf("note = %+v", note)
	}
}

func TestNoteListScansTimestamps(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	db := &fakeSQL{rows: func(query string, args []any) (pgx.Rows, error) {
		return &scanRows{scans: []func(dest ...any) error{
			func(dest ...any) error {
				*(dest[0].(*string)) = "note-1"
				*(dest[1].(*string)) = "d1"
				*(dest[2].(*string)) = "u1"
				*(dest[3].(*string)) = "Call"
				*(dest[4].(*string)) = "Summary"
				*(dest[5].(*string)) = ""
				*(dest[6].(*time.Time)) = created
				return nil
			},
		}}, nil
	}}
	repo := NewNoteRepository(db)

	notes, err := repo.ListByDonor(context.Background(), "d1", "u1")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || !notes[0].CreatedAt.Equal(created) {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestWorkflowSaveScansTimestamps(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	db := &fakeSQL{row: func(query string, args []any) pgx.Row {
		return simpleRow{scan: func(dest ...any) error {
			*(dest[0].(*string)) = "wf-1"
			*(dest[1].(*string)) = args[0].(string)
			*(dest[2].(*string)) = args[1].(string)
			*(dest[3].(*string)) = args[2].(string)
			*(dest[4].(*string)) = args[3].(string)
			*(dest[5].(*string)) = args[4].(string)
			*(dest[6].(*time.Time)) = created
			*(dest[7].(*time.Time)) = updated
			return nil
		}}
	}}
	repo := NewWorkflowResponseRepository(db)

	resp := domain.WorkflowResponse{DonorID: "d1", UserID: "u1", StepID: "s1", QuestionID: "q1", Response: "yes"}
	if err := repo.Save(context.Background(), &resp); err != nil {
		t.Fatalf("save workflow response: %v", err)
	}
	if !resp.CreatedAt.Equal(created) || !resp.UpdatedAt.Equal(updated) {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestAnalysisVersionRestoreClearsScannedDonor(t *testing.T) {
	db := &fakeSQL{row: func(query string, args []any) pgx.Row {
		return simpleRow{scan: func(dest ...any) error {
			*(dest[0].(*string)) = "v1"
			*(dest[1].(*string)) = "d-real"
			*(dest[2].(*string)) = "u1"
			*(dest[3].(*int)) = 3
			*(dest[4].(*string)) = "after site visit"
			*(dest[5].(*bool)) = true
			*(dest[6].(*time.Time)) = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
			return nil
		}}
	}}
	repo := NewAnalysisVersionRepository(db)

	v, err := repo.Restore(context.Background(), "v1", "d-wrong", "u1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if v.DonorID != "d-real" {
		t.Fatalf("donor = %q", v.DonorID)
	}
	if len(db.execCalls) != 1 || db.execCalls[0].query != sqlinline.QClearCurrentAnalysisVersions {
		t.Fatalf("exec calls = %+v", db.execCalls)
	}
	// The sibling clear must target the donor the row belongs to, not
	// the donor id the caller supplied.
	if db.execCalls[0].args[0] != "d-real" {
		t.Fatalf("clear args = %+v", db.execCalls[0].args)
	}
}

func TestAnalysisVersionRestoreMissingRowIsNotFound(t *testing.T) {
	db := &fakeSQL{}
	repo := NewAnalysisVersionRepository(db)

	_, err := repo.Restore(context.Background(), "missing", "d1", "u1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
