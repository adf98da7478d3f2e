package rbac

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"donorpath/internal/domain"
)

const (
	cacheTTL       = 5 * time.Minute
	fetchMaxTries  = 3
	fetchBaseDelay = time.Second
)

// Snapshot is one user's role and permission set at a point in time.
type Snapshot struct {
	Roles       []domain.Role
	Permissions []domain.Permission
}

func (s Snapshot) HasRole(name string) bool {
	for _, r := range s.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (s Snapshot) HasPermission(name string) bool {
	for _, p := range s.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s Snapshot) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if s.HasRole(n) {
			return true
		}
	}
	return false
}

func (s Snapshot) HasAllRoles(names ...string) bool {
	for _, n := range names {
		if !s.HasRole(n) {
			return false
		}
	}
	return true
}

func (s Snapshot) HasAnyPermission(names ...string) bool {
	for _, n := range names {
		if s.HasPermission(n) {
			return true
		}
	}
	return false
}

func (s Snapshot) HasAllPermissions(names ...string) bool {
	for _, n := range names {
		if !s.HasPermission(n) {
			return false
		}
	}
	return true
}

func (s Snapshot) IsAdmin() bool { return s.HasRole(domain.AdminRoleName) }

type cacheEntry struct {
	snapshot Snapshot
	expires  time.Time
}

// Service answers role and permission lookups from a per-user cache.
// Entries live for five minutes; a fetch retries up to three times with
// linearly increasing backoff before the error surfaces.
type Service struct {
	repo   domain.RBACRepository
	logger zerolog.Logger

	// now and delay are swappable for tests.
	now        func() time.Time
	RetryDelay time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewService(repo domain.RBACRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		now:        time.Now,
		RetryDelay: fetchBaseDelay,
		cache:      map[string]cacheEntry{},
	}
}

// Lookup returns the user's snapshot, serving from cache while the
// entry is fresh.
func (s *Service) Lookup(ctx context.Context, userID string) (Snapshot, error) {
	s.mu.Lock()
	if entry, ok := s.cache[userID]; ok && s.now().Before(entry.expires) {
		s.mu.Unlock()
		return entry.snapshot, nil
	}
	s.mu.Unlock()

	snapshot, err := s.fetch(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	s.cache[userID] = cacheEntry{snapshot: snapshot, expires: s.now().Add(cacheTTL)}
	s.mu.Unlock()
	return snapshot, nil
}

// Invalidate drops one user's cached entry, forcing a refetch on the
// next lookup.
func (s *Service) Invalidate(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

func (s *Service) fetch(ctx context.Context, userID string) (Snapshot, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxTries; attempt++ {
		roles, permissions, err := s.repo.RolesAndPermissions(ctx, userID)
		if err == nil {
			return Snapshot{Roles: roles, Permissions: permissions}, nil
		}
		lastErr = err
		s.logger.Warn().Err(err).Str("user_id", userID).
			Msgf("rbac fetch failed (attempt %d of %d)", attempt, fetchMaxTries)
		if attempt < fetchMaxTries {
			select {
			case <-time.After(s.RetryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return Snapshot{}, ctx.Err()
			}
		}
	}
	return Snapshot{}, lastErr
}
