package infra

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SQLExecutor is the statement surface repositories depend on.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

var markerRegexp = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// SQLRunner executes marked statements against the pool. Every
// statement must open with a "--sql <uuid>" marker line; the marker is
// what shows up in logs, never the statement text, so donor data stays
// out of the log stream.
type SQLRunner struct {
	Pool   *pgxpool.Pool
	Logger zerolog.Logger
}

func NewSQLRunner(pool *pgxpool.Pool, logger zerolog.Logger) *SQLRunner {
	return &SQLRunner{Pool: pool, Logger: logger}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	start := time.Now()
	tag, err := r.Pool.Exec(ctx, trimmed, args...)
	if err != nil {
		r.Logger.Error().Err(err).Str("marker", marker).Dur("elapsed", time.Since(start)).Msg("sql exec failed")
		return tag, err
	}
	r.Logger.Debug().Str("marker", marker).Int64("rows", tag.RowsAffected()).Dur("elapsed", time.Since(start)).Msg("sql exec")
	return tag, nil
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		return errorRow{err: err}
	}
	r.Logger.Debug().Str("marker", marker).Msg("sql query row")
	row := r.Pool.QueryRow(ctx, trimmed, args...)
	return loggingRow{row: row, logger: r.Logger, marker: marker}
}

func (r *SQLRunner) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := r.Pool.Query(ctx, trimmed, args...)
	if err != nil {
		r.Logger.Error().Err(err).Str("marker", marker).Dur("elapsed", time.Since(start)).Msg("sql query failed")
		return nil, err
	}
	r.Logger.Debug().Str("marker", marker).Dur("elapsed", time.Since(start)).Msg("sql query")
	return rows, nil
}

type loggingRow struct {
	row    pgx.Row
	logger zerolog.Logger
	marker string
}

func (l loggingRow) Scan(dest ...any) error {
	err := l.row.Scan(dest...)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		l.logger.Error().Err(err).Str("marker", l.marker).Msg("sql scan failed")
	}
	return err
}

type errorRow struct {
	err error
}

func (e errorRow) Scan(dest ...any) error {
	return e.err
}

// extractMarker splits the marker line from the statement body and
// rejects statements without a valid marker.
func extractMarker(query string) (string, string, error) {
	trimmed := strings.TrimSpace(query)
	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 {
		return "", "", errors.New("empty query")
	}
	markerLine := strings.TrimSpace(lines[0])
	if !markerRegexp.MatchString(markerLine) {
		return "", "", errors.New("sql marker missing or invalid")
	}
	return strings.TrimSpace(strings.TrimPrefix(markerLine, "--sql ")), strings.Join(lines[1:], "\n"), nil
}

var _ SQLExecutor = (*SQLRunner)(nil)
