package ports

import "context"

// AttemptTracker counts failed logins per email over a rolling window. It is
// advisory: callers must treat tracker errors as fail-open and never let them
// block a login.
type AttemptTracker interface {
	// RecordFailure increments the counter and returns the current count.
	RecordFailure(ctx context.Context, email string) (int64, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
