package repo

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"donorpath/internal/domain"
)

// classify maps a backend failure onto the stable error taxonomy.
// Postgres error codes are inspected first; message substrings are only
// a fallback for errors that carry no code (driver/network failures).
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"), // connection exception
			pgErr.Code == "57014", // query canceled (statement timeout)
			pgErr.Code == "57P01", // admin shutdown
			pgErr.Code == "53300": // too many connections
			return &domain.ConnError{Err: err}
		case strings.HasPrefix(pgErr.Code, "28"), // invalid authorization
			pgErr.Code == "42501": // insufficient privilege
			return &domain.AuthError{Err: err}
		default:
			return &domain.StoreError{Op: op, Err: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ConnError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.ConnError{Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network is unreachable"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"):
		return &domain.ConnError{Err: err}
	case strings.Contains(msg, "session has expired"),
		strings.Contains(msg, "jwt"),
		strings.Contains(msg, "permission denied"):
		return &domain.AuthError{Err: err}
	}
	return &domain.StoreError{Op: op, Err: err}
}
