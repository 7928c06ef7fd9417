package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llmbench/console/internal/api/metrics"
	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
	"github.com/llmbench/console/internal/token"
)

// AuthManager owns the console session lifecycle. It is the only writer of
// the session store and the only holder of the Principal; everything else
// observes it through State, Capability, and Principal.
type AuthManager struct {
	store   ports.SessionStore
	auth    ports.AuthAPI
	profile ports.ProfileAPI
	log     zerolog.Logger

	// now is overridable in tests.
	now func() time.Time

	mu        sync.RWMutex
	state     domain.AuthState
	principal *domain.Principal
	session   *domain.Session
}

func NewAuthManager(store ports.SessionStore, auth ports.AuthAPI, profile ports.ProfileAPI, log zerolog.Logger) *AuthManager {
	return &AuthManager{
		store:   store,
		auth:    auth,
		profile: profile,
		log:     log,
		now:     time.Now,
		state:   domain.StateUninitialized,
	}
}

// Login exchanges credentials for a token pair, persists it, and then runs
// the same adopt sequence as Restore. Any backend rejection collapses to the
// generic domain.ErrInvalidCredentials so the response never reveals whether
// the username exists.
func (m *AuthManager) Login(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := m.auth.ObtainToken(ctx, username, password)
	if err != nil {
		m.log.Debug().Err(err).Str("username", username).Msg("login rejected by backend")
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := m.store.Set(ctx, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("persist session: %w", err)
	}

	p, _, err := m.adopt(ctx, sess)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	m.log.Info().Int64("user_id", p.ID).Bool("staff", p.Staff).Msg("operator logged in")
	return p, nil
}

// Logout clears the store and resets to Anonymous unconditionally. A store
// failure is logged but never surfaced: the in-memory session is gone either
// way and the next Restore will retry the cleanup.
func (m *AuthManager) Logout(ctx context.Context) {
	m.invalidate(ctx)
	m.log.Info().Msg("operator logged out")
}

// Restore rebuilds the session from the store. It runs once at startup,
// before the router serves its first request, so the guard never renders an
// unauthenticated flash for an authenticated operator. Invalidity of any
// kind (undecodable token, passed expiry, failed profile fetch) demotes
// silently to Anonymous with the store cleared.
func (m *AuthManager) Restore(ctx context.Context) error {
	m.setState(domain.StateRestoring)

	sess, err := m.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			m.log.Warn().Err(err).Msg("session store unreadable, starting anonymous")
		}
		metrics.SessionRestoresTotal.WithLabelValues("empty").Inc()
		m.toAnonymous()
		return nil
	}

	p, reason, err := m.adopt(ctx, sess)
	if err != nil {
		metrics.SessionRestoresTotal.WithLabelValues(reason).Inc()
		m.log.Debug().Str("reason", reason).Msg("stored session invalid, starting anonymous")
		return nil
	}

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	m.log.Info().Int64("user_id", p.ID).Msg("session restored")
	return nil
}

// adopt validates a candidate token pair and fetches its Principal. On any
// failure it applies logout semantics (clear store, Anonymous) and returns
// domain.ErrSessionInvalid plus a short reason for metrics.
func (m *AuthManager) adopt(ctx context.Context, sess *domain.Session) (*domain.Principal, string, error) {
	if sess == nil || sess.AccessToken == "" {
		m.invalidate(ctx)
		return nil, "invalid_token", domain.ErrSessionInvalid
	}

	claims, err := token.Decode(sess.AccessToken)
	if err != nil {
		m.invalidate(ctx)
		return nil, "invalid_token", fmt.Errorf("%w: %v", domain.ErrSessionInvalid, err)
	}
	if claims.ExpiredAt(m.now()) {
		m.invalidate(ctx)
		return nil, "expired", fmt.Errorf("%w: token expired", domain.ErrSessionInvalid)
	}

	// A stale or foreign token must not leave the console half
	// authenticated: a failed fetch invalidates rather than retries.
	p, err := m.profile.GetUser(ctx, claims.SubjectID)
	if err != nil {
		m.invalidate(ctx)
		return nil, "fetch_failed", fmt.Errorf("%w: profile fetch: %v", domain.ErrSessionInvalid, err)
	}

	m.mu.Lock()
	m.principal = p
	m.session = sess
	m.state = domain.StateAuthenticated
	m.mu.Unlock()
	return p, "", nil
}

// RefreshPrincipal refetches the profile after an explicit edit. Unlike
// adopt, a failure here does not invalidate the session; it surfaces as a
// plain resource error.
func (m *AuthManager) RefreshPrincipal(ctx context.Context) (*domain.Principal, error) {
	cur := m.Principal()
	if cur == nil {
		return nil, domain.ErrNotAuthenticated
	}

	p, err := m.profile.GetUser(ctx, cur.ID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.principal = p
	m.mu.Unlock()
	return p, nil
}

func (m *AuthManager) State() domain.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Capability is a pure projection of the current Principal.
func (m *AuthManager) Capability() domain.Capability {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.Capability{
		Authenticated: m.principal != nil,
		Staff:         m.principal != nil && m.principal.Staff,
	}
}

// AccessToken returns the adopted bearer token, or "" outside an
// authenticated session.
func (m *AuthManager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.AccessToken
}

func (m *AuthManager) Principal() *domain.Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.principal == nil {
		return nil
	}
	p := *m.principal
	return &p
}

func (m *AuthManager) setState(s domain.AuthState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *AuthManager) invalidate(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session store")
	}
	m.toAnonymous()
}

func (m *AuthManager) toAnonymous() {
	m.mu.Lock()
	m.principal = nil
	m.session = nil
	m.state = domain.StateAnonymous
	m.mu.Unlock()
}
