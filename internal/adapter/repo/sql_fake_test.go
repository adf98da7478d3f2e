package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"donorpath/internal/domain"
	"donorpath/internal/ingest"
	"donorpath/internal/sqlinline"
)

type sqlCall struct {
	query string
	args  []any
}

// fakeSQL records statements and serves canned results. The store-health
// probe's ping select succeeds by default so repository tests exercise
// the primary statements.
type fakeSQL struct {
	execCalls  []sqlCall
	queryCalls []sqlCall
	pings      int

	pingErr error
	execErr func(call int) error
	rows    func(query string, args []any) (pgx.Rows, error)
	row     func(query string, args []any) pgx.Row
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if query == sqlinline.QInsertPing {
		return pgconn.CommandTag{}, nil
	}
	f.execCalls = append(f.execCalls, sqlCall{query: query, args: args})
	if f.execErr != nil {
		if err := f.execErr(len(f.execCalls)); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if query == sqlinline.QSelectPing {
		f.pings++
		if f.pingErr != nil {
			return nil, f.pingErr
		}
		return &staticRows{remaining: 1}, nil
	}
	f.queryCalls = append(f.queryCalls, sqlCall{query: query, args: args})
	if f.rows != nil {
		return f.rows(query, args)
	}
	return &staticRows{}, nil
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.queryCalls = append(f.queryCalls, sqlCall{query: query, args: args})
	if f.row != nil {
		return f.row(query, args)
	}
	return simpleRow{err: pgx.ErrNoRows}
}

type simpleRow struct {
	err  error
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// rowsBase supplies the pgx.Rows boilerplate test iterators do not need.
type rowsBase struct{}

func (rowsBase) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (rowsBase) Conn() *pgx.Conn                              { return nil }
func (rowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rowsBase) RawValues() [][]byte                          { return nil }
func (rowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

// staticRows yields the requested number of rows with no scan payload.
type staticRows struct {
	rowsBase
	remaining int
}

func (s *staticRows) Next() bool {
	if s.remaining <= 0 {
		return false
	}
	s.remaining--
	return true
}

func (s *staticRows) Scan(...any) error { return nil }
func (s *staticRows) Err() error        { return nil }
func (s *staticRows) Close()            {}

// donorRows serves full donor records in the select column order:
// id, user_id, created_at, then every schema column by kind.
type donorRows struct {
	rowsBase
	records []domain.DonorRecord
	idx     int
}

func (d *donorRows) Next() bool {
	if d.idx >= len(d.records) {
		return false
	}
	d.idx++
	return true
}

func (d *donorRows) Scan(dest ...any) error {
	if d.idx == 0 || d.idx > len(d.records) {
		return pgx.ErrNoRows
	}
	record := d.records[d.idx-1]
	if len(dest) != len(ingest.Schema)+3 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*(dest[0].(*string)) = record.ID
	*(dest[1].(*string)) = record.OwnerID
	*(dest[2].(*time.Time)) = record.CreatedAt
	for i, spec := range ingest.Schema {
		switch spec.Kind {
		case ingest.KindInt:
			*(dest[i+3].(*int64)) = int64(record.Int(spec.Label))
		case ingest.KindFloat:
			*(dest[i+3].(*float64)) = record.Float(spec.Label)
		default:
			*(dest[i+3].(*string)) = record.Str(spec.Label)
		}
	}
	return nil
}

func (d *donorRows) Err() error { return nil }
func (d *donorRows) Close()     {}
