package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for any failed login attempt. The
	// message is deliberately generic: it must not reveal whether the
	// username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionInvalid marks a stored token that is malformed, expired, or
	// whose profile fetch failed. It silently demotes to Anonymous.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrNoSession is returned by a SessionStore when nothing is stored.
	ErrNoSession = errors.New("no stored session")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrNotFound         = errors.New("resource not found")

	// ErrProvisioning covers any failure in the credential get-or-create
	// flow. No credential is assumed created; the next attempt re-runs the
	// full scan.
	ErrProvisioning = errors.New("could not retrieve token")
)
