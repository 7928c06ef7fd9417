package ports

import (
	"context"

	"github.com/llmbench/console/internal/core/domain"
)

// SessionStore persists the operator's token pair across process restarts.
// It performs no validation; judging whether a stored token is still usable
// is the auth manager's job. Only the auth manager writes to the store; the
// backend client reads it as its bearer-token source.
type SessionStore interface {
	// Get returns the stored session, or domain.ErrNoSession when absent.
	Get(ctx context.Context) (*domain.Session, error)
	Set(ctx context.Context, sess *domain.Session) error
	Clear(ctx context.Context) error
}
