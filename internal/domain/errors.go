package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrProfileNotFound signals "no profile yet" on the remote service.
	// Callers treat it as a valid state, not a failure.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrAuthRejected means the remote service rejected the credentials or
	// the session token. The flow returns to the unauthenticated step.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrConflict means the remote service rejected a write because the
	// local copy is stale. A re-hydration is required before further edits.
	ErrConflict = errors.New("profile version conflict")

	// ErrNoProfile means an operation needing a current profile ran
	// before sign-in or after sign-out.
	ErrNoProfile = errors.New("no current profile")
)

// ValidationErrors maps field names to user-facing messages. It is resolved
// locally and never reaches the network layer.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// NetworkError wraps a transient transport or server failure. It never
// corrupts local state; retrying is at the caller's discretion.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsRetryable reports whether the error is a transient network failure.
func IsRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
