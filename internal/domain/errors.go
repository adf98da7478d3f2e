package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUserRequired  = errors.New("user id is required")
	ErrNotConfigured = errors.New("provider not configured")
)

// ConnError reports that the backing store is unreachable: the probe
// exhausted its retries, a request timed out, or the network is down.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	if e.Err == nil {
		return "database connection error: unable to connect to database"
	}
	return fmt.Sprintf("database connection error: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// AuthError reports a session or permission failure from the backend.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "authorization failed"
	}
	return fmt.Sprintf("authorization failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StoreError wraps any other backend failure, preserving the backend's
// message for the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("database error: %v", e.Err)
	}
	return fmt.Sprintf("%s: database error: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
