package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

var (
	// ErrNotFound is returned when a record looked up by id does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert hits a unique url constraint
	ErrDuplicate = errors.New("duplicate url")
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string { return e.err.Error() }

func (e *criticalError) Unwrap() error { return e.err }

// Is makes every criticalError match the terminating error passed to repeater
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// withRetry runs fn, retrying SQLite lock errors with backoff. fn reports anything
// else as criticalError, which stops retries and is returned unwrapped.
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, fn, &criticalError{})
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// classify turns a driver error into a retryable lock error or a critical one
func classify(err error) error {
	if err == nil || isLockError(err) {
		return err
	}
	return &criticalError{err: err}
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueViolation checks if an error is a SQLite unique constraint failure
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
