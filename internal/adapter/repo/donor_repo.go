package repo

import (
	"context"
	"errors"

	"donorpath/internal/domain"
	"donorpath/internal/infra"
	"donorpath/internal/ingest"
	"donorpath/internal/sqlinline"
)

// insertChunkSize bounds rows per physical insert to stay under the
// backend's payload limits.
const insertChunkSize = 100

// DonorRepositoryPG is the sole mediator between donor lists and the
// donors table. Every operation first consults the injected store
// health gate, applies the ownership visibility rule through a single
// ownerFilter predicate, and classifies backend failures.
type DonorRepositoryPG struct {
	db      infra.SQLExecutor
	health  *infra.StoreHealth
	columns []string
}

func NewDonorRepository(db infra.SQLExecutor, health *infra.StoreHealth) *DonorRepositoryPG {
	columns := make([]string, len(ingest.Schema))
	for i, spec := range ingest.Schema {
		columns[i] = spec.Column
	}
	return &DonorRepositoryPG{db: db, health: health, columns: columns}
}

// ownerFilter is the visibility predicate: the owner id the operation
// must match, or "" when the actor sees every record.
func ownerFilter(actor domain.Actor) string {
	if actor.Admin {
		return ""
	}
	return actor.ID
}

func (r *DonorRepositoryPG) List(ctx context.Context, actor domain.Actor) ([]domain.DonorRecord, error) {
	if err := r.health.Ensure(ctx); err != nil {
		return nil, err
	}

	owner := ownerFilter(actor)
	query := sqlinline.SelectDonors(r.columns, owner != "")
	var args []any
	if owner != "" {
		args = append(args, owner)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.fail("list donors", err)
	}
	defer rows.Close()

	var donors []domain.DonorRecord
	for rows.Next() {
		record, err := scanDonor(rows.Scan)
		if err != nil {
			return nil, r.fail("scan donor", err)
		}
		donors = append(donors, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list donors", err)
	}
	return donors, nil
}

// InsertBatch stamps every record with the actor's id and persists the
// batch in chunks. A failing chunk aborts the remaining chunks and its
// classified error is surfaced; rows committed by earlier chunks stay
// committed. The returned count is the number of rows committed.
func (r *DonorRepositoryPG) InsertBatch(ctx context.Context, donors []domain.DonorRecord, actor domain.Actor) (int, error) {
	if actor.ID == "" {
		return 0, &domain.AuthError{Err: domain.ErrUserRequired}
	}
	if err := r.health.Ensure(ctx); err != nil {
		return 0, err
	}

	inserted := 0
	for start := 0; start < len(donors); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(donors) {
			end = len(donors)
		}
		chunk := donors[start:end]

		query := sqlinline.InsertDonors(r.columns, len(chunk))
		args := make([]any, 0, len(chunk)*(len(r.columns)+1))
		for _, donor := range chunk {
			args = append(args, actor.ID)
			args = append(args, donorValues(donor)...)
		}
		if _, err := r.db.Exec(ctx, query, args...); err != nil {
			return inserted, r.fail("insert donors", err)
		}
		inserted += len(chunk)
	}
	return inserted, nil
}

func (r *DonorRepositoryPG) Update(ctx context.Context, donor domain.DonorRecord, actor domain.Actor) error {
	if actor.ID == "" {
		return &domain.AuthError{Err: domain.ErrUserRequired}
	}
	if err := r.health.Ensure(ctx); err != nil {
		return err
	}

	owner := ownerFilter(actor)
	query := sqlinline.UpdateDonor(r.columns, owner != "")
	args := append([]any{donor.ID}, donorValues(donor)...)
	if owner != "" {
		args = append(args, owner)
	}

	// A non-owned target matches zero rows; that is a no-op, not an
	// error.
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return r.fail("update donor", err)
	}
	return nil
}

func (r *DonorRepositoryPG) Delete(ctx context.Context, donor domain.DonorRecord, actor domain.Actor) error {
	if actor.ID == "" {
		return &domain.AuthError{Err: domain.ErrUserRequired}
	}
	if err := r.health.Ensure(ctx); err != nil {
		return err
	}

	owner := ownerFilter(actor)
	args := []any{donor.ID}
	if owner != "" {
		args = append(args, owner)
	}
	if _, err := r.db.Exec(ctx, sqlinline.DeleteDonor(owner != ""), args...); err != nil {
		return r.fail("delete donor", err)
	}
	return nil
}

// fail classifies the error and clears the cached probe result when the
// failure was a connectivity one.
func (r *DonorRepositoryPG) fail(op string, err error) error {
	classified := classify(op, err)
	var connErr *domain.ConnError
	if errors.As(classified, &connErr) {
		r.health.Invalidate()
	}
	return classified
}

// donorValues flattens a record's schema fields into statement
// parameters, coerced by kind, in schema order.
func donorValues(donor domain.DonorRecord) []any {
	values := make([]any, len(ingest.Schema))
	for i, spec := range ingest.Schema {
		switch spec.Kind {
		case ingest.KindInt:
			values[i] = donor.Int(spec.Label)
		case ingest.KindFloat:
			values[i] = donor.Float(spec.Label)
		default:
			values[i] = donor.Str(spec.Label)
		}
	}
	return values
}

// scanDonor reads one donor row: id, user_id, created_at, then every
// schema column in order.
func scanDonor(scan func(dest ...any) error) (domain.DonorRecord, error) {
	var record domain.DonorRecord
	ints := make([]int64, len(ingest.Schema))
	floats := make([]float64, len(ingest.Schema))
	strs := make([]string, len(ingest.Schema))

	dest := make([]any, 0, len(ingest.Schema)+3)
	dest = append(dest, &record.ID, &record.OwnerID, &record.CreatedAt)
	for i, spec := range ingest.Schema {
		switch spec.Kind {
		case ingest.KindInt:
			dest = append(dest, &ints[i])
		case ingest.KindFloat:
			dest = append(dest, &floats[i])
		default:
			dest = append(dest, &strs[i])
		}
	}
	if err := scan(dest...); err != nil {
		return record, err
	}

	record.Fields = make(map[string]any, len(ingest.Schema))
	for i, spec := range ingest.Schema {
		switch spec.Kind {
		case ingest.KindInt:
			record.Fields[spec.Label] = int(ints[i])
		case ingest.KindFloat:
			record.Fields[spec.Label] = floats[i]
		default:
			record.Fields[spec.Label] = strs[i]
		}
	}
	return record, nil
}

var _ domain.DonorRepository = (*DonorRepositoryPG)(nil)
