// Package token decodes bearer token payloads without verifying signatures.
//
// The decode is purely advisory: signature verification is the backend's
// job, and this check exists only so the console never presents a token it
// already knows is stale. A decode failure is always treated by callers as
// "unusable token", never as a hard error.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed marks a token that cannot be decoded: wrong segment count,
// bad base64/JSON payload, or missing subject/expiry claims.
var ErrMalformed = errors.New("malformed bearer token")

// Claims is the subset of the token payload the console cares about.
type Claims struct {
	SubjectID int64
	ExpiresAt time.Time
}

// ExpiredAt reports whether the token is no longer presentable at the given
// instant. An expiry exactly at now counts as expired.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

type payload struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Decode parses the middle segment of a three-segment bearer token and
// extracts the subject id and expiry. The signature is not checked.
func Decode(raw string) (*Claims, error) {
	var p payload
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrMalformed)
	}
	if p.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformed)
	}
	return &Claims{SubjectID: p.UserID, ExpiresAt: p.ExpiresAt.Time}, nil
}
