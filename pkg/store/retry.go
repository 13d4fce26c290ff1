package store

import (
	"context"
	"errors"
	"time"
)

// Ping attempts made while a database server is still starting, for example
// when logsheet and its database come up together.
const (
	pingAttempts = 4
	pingDelay    = 500 * time.Millisecond
)

// transientError marks a failure that retry attempts again.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// retry calls fn up to attempts times, doubling delay after each failure.
// Errors not marked with transient end the loop at once. The returned error
// is the last one fn produced, with the transient marker removed, or
// ctx.Err() when ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	attempts = max(attempts, 1)
	var last error
	for i := range attempts {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var t *transientError
		if !errors.As(err, &t) {
			return err
		}
		last = t.err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return last
}
