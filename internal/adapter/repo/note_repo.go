package repo

import (
	"context"

	"donorpath/internal/domain"
	"donorpath/internal/infra"
	"donorpath/internal/sqlinline"
)

// NoteRepositoryPG persists donor notes.
type NoteRepositoryPG struct {
	db infra.SQLExecutor
}

func NewNoteRepository(db infra.SQLExecutor) *NoteRepositoryPG {
	return &NoteRepositoryPG{db: db}
}

func (r *NoteRepositoryPG) Create(ctx context.Context, note *domain.Note) error {
	row := r.db.QueryRow(ctx, sqlinline.QInsertNote,
		note.DonorID, note.UserID, note.Title, note.Content, note.AttachmentURL)
	if err := row.Scan(&note.ID, &note.CreatedAt); err != nil {
		return classify("create note", err)
	}
	return nil
}

func (r *NoteRepositoryPG) ListByDonor(ctx context.Context, donorID, userID string) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListNotesByDonor, donorID, userID)
	if err != nil {
		return nil, classify("list notes", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.DonorID, &n.UserID, &n.Title, &n.Content, &n.AttachmentURL, &n.CreatedAt); err != nil {
			return nil, classify("scan note", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list notes", err)
	}
	return notes, nil
}

var _ domain.NoteRepository = (*NoteRepositoryPG)(nil)
