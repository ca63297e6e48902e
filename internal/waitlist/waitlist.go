package waitlist

import (
	"context"
	"errors"
	"time"
)

// Signup is one collected waitlist entry.
type Signup struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	SourceURL string    `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrDuplicateEmail reports that the email is already on the waitlist.
var ErrDuplicateEmail = errors.New("email already on waitlist")

// Store persists waitlist signups.
type Store interface {
	// SaveSignup inserts a signup, filling in its ID. A duplicate email
	// returns ErrDuplicateEmail.
	SaveSignup(ctx context.Context, signup *Signup) error

	// ListSignups returns signups newest first. limit <= 0 returns all.
	ListSignups(ctx context.Context, limit int) ([]Signup, error)

	// CountSignups returns the number of collected signups.
	CountSignups(ctx context.Context) (int, error)

	Close() error
}

// Notifier announces a collected signup on a side channel.
type Notifier interface {
	NotifySignup(ctx context.Context, signup Signup) error
}

// ValidationError reports a rejected signup request. Its message is safe to
// show to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
