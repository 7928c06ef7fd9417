package ports

import (
	"context"

	"github.com/llmbench/console/internal/core/domain"
)

// AuthService is the single source of truth for "who is the current operator
// and can they act". Lifecycle: Uninitialized → Restoring → {Authenticated,
// Anonymous}; the only way back from Anonymous is an explicit Login.
type AuthService interface {
	// Login exchanges credentials for a session and runs the same
	// validation/profile-fetch sequence as Restore. Any backend rejection
	// surfaces as domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.Principal, error)

	// Logout clears the session store and resets to Anonymous. It never
	// fails in a way callers need to gate on.
	Logout(ctx context.Context)

	// Restore rebuilds the session from the store at startup. Invalid or
	// expired tokens demote silently to Anonymous.
	Restore(ctx context.Context) error

	// RefreshPrincipal refetches the profile after an explicit edit.
	RefreshPrincipal(ctx context.Context) (*domain.Principal, error)

	State() domain.AuthState
	Capability() domain.Capability
	Principal() *domain.Principal

	// AccessToken is the adopted bearer token, or "" outside an
	// authenticated session.
	AccessToken() string
}
