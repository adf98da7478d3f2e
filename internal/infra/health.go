package infra

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"donorpath/internal/domain"
	"donorpath/internal/sqlinline"
)

const (
	probeMaxRetries = 3
	probeRetryDelay = time.Second
)

// StoreHealth is the store reachability gate repositories consult before
// their primary query. A successful probe is cached for the life of the
// process; any probe failure clears the cache so the next operation
// re-probes. The state is injected at construction rather than held in
// package globals so tests can reset it deterministically.
type StoreHealth struct {
	DB         SQLExecutor
	Logger     zerolog.Logger
	RetryDelay time.Duration

	mu        sync.Mutex
	connected bool
}

func NewStoreHealth(db SQLExecutor, logger zerolog.Logger) *StoreHealth {
	return &StoreHealth{DB: db, Logger: logger, RetryDelay: probeRetryDelay}
}

// Ensure returns nil immediately when a previous probe succeeded.
// Otherwise it pings the _pings table, retrying up to 3 times with
// linearly increasing backoff (delay × attempt number), and reports a
// ConnError once retries are exhausted.
func (h *StoreHealth) Ensure(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connected {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= probeMaxRetries; attempt++ {
		err := h.probe(ctx)
		if err == nil {
			h.connected = true
			return nil
		}
		lastErr = err
		h.Logger.Warn().Err(err).Msgf("store probe failed (attempt %d of %d)", attempt, probeMaxRetries)
		if attempt < probeMaxRetries {
			select {
			case <-time.After(h.RetryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				h.connected = false
				return &domain.ConnError{Err: ctx.Err()}
			}
		}
	}
	h.connected = false
	return &domain.ConnError{Err: lastErr}
}

// Invalidate clears the cached probe result after an operation observes
// a connectivity failure.
func (h *StoreHealth) Invalidate() {
	h.mu.Lock()
	h.connected = false
	h.mu.Unlock()
}

func (h *StoreHealth) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := h.DB.Query(ctx, sqlinline.QSelectPing)
	if err != nil {
		return err
	}
	hasRow := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if !hasRow {
		// Seed the keepalive row; a permission failure here still counts
		// as reachable since the select already answered.
		if _, err := h.DB.Exec(ctx, sqlinline.QInsertPing); err != nil {
			h.Logger.Debug().Err(err).Msg("seed ping row skipped")
		}
	}
	return nil
}
