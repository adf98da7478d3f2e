package domain

import (
	"context"
	"time"
)

// DonorRepository is the sole mediator between donor lists and the store.
// Every operation enforces ownership visibility for the acting user and
// classifies backend failures into ConnError, AuthError or StoreError.
type DonorRepository interface {
	// List returns all records for admins, otherwise only records owned
	// by the actor, newest first.
	List(ctx context.Context, actor Actor) ([]DonorRecord, error)
	// InsertBatch stamps every record with the actor's id and persists in
	// chunks of at most 100 rows per call. A failing chunk aborts the
	// remaining chunks; rows from earlier chunks stay committed. The
	// returned count is the number of rows committed before any failure.
	InsertBatch(ctx context.Context, donors []DonorRecord, actor Actor) (int, error)
	// Update rewrites the record's schema fields. Non-admin updates match
	// only rows owned by the actor; matching zero rows is not an error.
	Update(ctx context.Context, donor DonorRecord, actor Actor) error
	// Delete removes the record, under the same ownership constraint as
	// Update.
	Delete(ctx context.Context, donor DonorRecord, actor Actor) error
}

// Note is a free-form annotation attached to a donor.
type Note struct {
	ID            string
	DonorID       string
	UserID        string
	Title         string
	Content       string
	AttachmentURL string
	CreatedAt     time.Time
}

// NoteRepository persists donor notes.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	ListByDonor(ctx context.Context, donorID, userID string) ([]Note, error)
}

// WorkflowResponse is one saved answer in the cultivation-strategy
// questionnaire, unique per (donor, user, step, question).
type WorkflowResponse struct {
	ID         string
	DonorID    string
	UserID     string
	StepID     string
	QuestionID string
	Response   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorkflowResponseRepository persists questionnaire answers.
type WorkflowResponseRepository interface {
	ListByDonor(ctx context.Context, donorID, userID string) ([]WorkflowResponse, error)
	Save(ctx context.Context, resp *WorkflowResponse) error
}

// AnalysisVersion is one snapshot in a donor's analysis history. Exactly
// one version per (donor, user) is current at a time.
type AnalysisVersion struct {
	ID        string
	DonorID   string
	UserID    string
	Version   int
	Note      string
	IsCurrent bool
	CreatedAt time.Time
}

// AnalysisVersionRepository persists analysis snapshots.
type AnalysisVersionRepository interface {
	ListByDonor(ctx context.Context, donorID, userID string) ([]AnalysisVersion, error)
	Create(ctx context.Context, donorID, userID, note string) (*AnalysisVersion, error)
	Restore(ctx context.Context, versionID, donorID, userID string) (*AnalysisVersion, error)
}

// RBACRepository fetches a user's roles and the permissions those roles
// grant, through the role/permission join tables.
type RBACRepository interface {
	RolesAndPermissions(ctx context.Context, userID string) ([]Role, []Permission, error)
}
