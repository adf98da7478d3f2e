package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"donorpath/internal/domain"
	"donorpath/internal/infra"
	"donorpath/internal/sqlinline"
)

// AnalysisVersionRepositoryPG persists analysis snapshots. Creating or
// restoring a version makes it current and clears the flag on every
// sibling, so exactly one version per (donor, user) is current.
type AnalysisVersionRepositoryPG struct {
	db infra.SQLExecutor
}

func NewAnalysisVersionRepository(db infra.SQLExecutor) *AnalysisVersionRepositoryPG {
	return &AnalysisVersionRepositoryPG{db: db}
}

func (r *AnalysisVersionRepositoryPG) ListByDonor(ctx context.Context, donorID, userID string) ([]domain.AnalysisVersion, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListAnalysisVersions, donorID, userID)
	if err != nil {
		return nil, classify("list analysis versions", err)
	}
	defer rows.Close()

	var versions []domain.AnalysisVersion
	for rows.Next() {
		var v domain.AnalysisVersion
		if err := rows.Scan(&v.ID, &v.DonorID, &v.UserID, &v.Version, &v.Note, &v.IsCurrent, &v.CreatedAt); err != nil {
			return nil, classify("scan analysis version", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list analysis versions", err)
	}
	return versions, nil
}

func (r *AnalysisVersionRepositoryPG) Create(ctx context.Context, donorID, userID, note string) (*domain.AnalysisVersion, error) {
	id := uuid.NewString()
	row := r.db.QueryRow(ctx, sqlinline.QInsertAnalysisVersion, id, donorID, userID, note)
	var v domain.AnalysisVersion
	if err := row.Scan(&v.ID, &v.DonorID, &v.UserID, &v.Version, &v.Note, &v.IsCurrent, &v.CreatedAt); err != nil {
		return nil, classify("create analysis version", err)
	}
	if _, err := r.db.Exec(ctx, sqlinline.QClearCurrentAnalysisVersions, donorID, userID, v.ID); err != nil {
		return nil, classify("clear current analysis versions", err)
	}
	return &v, nil
}

func (r *AnalysisVersionRepositoryPG) Restore(ctx context.Context, versionID, donorID, userID string) (*domain.AnalysisVersion, error) {
	row := r.db.QueryRow(ctx, sqlinline.QRestoreAnalysisVersion, versionID, userID)
	var v domain.AnalysisVersion
	if err := row.Scan(&v.ID, &v.DonorID, &v.UserID, &v.Version, &v.Note, &v.IsCurrent, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("restore analysis version: %w", domain.ErrNotFound)
		}
		return nil, classify("restore analysis version", err)
	}
	// Clear siblings under the donor the restored row actually belongs
	// to; trusting the caller-supplied donor id could leave two current
	// versions when it disagrees with the row.
	if _, err := r.db.Exec(ctx, sqlinline.QClearCurrentAnalysisVersions, v.DonorID, userID, v.ID); err != nil {
		return nil, classify("clear current analysis versions", err)
	}
	return &v, nil
}

var _ domain.AnalysisVersionRepository = (*AnalysisVersionRepositoryPG)(nil)
