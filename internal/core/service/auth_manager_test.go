package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

type stubStore struct {
	sess       *domain.Session
	getErr     error
	setCalls   int
	clearCalls int
}

func (s *stubStore) Get(_ context.Context) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.sess == nil {
		return nil, domain.ErrNoSession
	}
	return s.sess, nil
}

func (s *stubStore) Set(_ context.Context, sess *domain.Session) error {
	s.setCalls++
	s.sess = sess
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.clearCalls++
	s.sess = nil
	return nil
}

type stubBackend struct {
	pair     *domain.Session
	tokenErr error

	principal    *domain.Principal
	getUserErr   error
	getUserCalls int
	lastUserID   int64
}

func (b *stubBackend) ObtainToken(_ context.Context, _, _ string) (*domain.Session, error) {
	if b.tokenErr != nil {
		return nil, b.tokenErr
	}
	return b.pair, nil
}

func (b *stubBackend) GetUser(_ context.Context, id int64) (*domain.Principal, error) {
	b.getUserCalls++
	b.lastUserID = id
	if b.getUserErr != nil {
		return nil, b.getUserErr
	}
	return b.principal, nil
}

func (b *stubBackend) UpdateUser(_ context.Context, _ int64, _ ports.UserPatch) (*domain.Principal, error) {
	return b.principal, nil
}

func tokenWith(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func newTestManager(store *stubStore, be *stubBackend) *AuthManager {
	return NewAuthManager(store, be, be, zerolog.Nop())
}

func TestRestore_EmptyStore(t *testing.T) {
	store := &stubStore{}
	be := &stubBackend{}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if be.getUserCalls != 0 {
		t.Fatalf("expected zero backend calls, got %d", be.getUserCalls)
	}
}

func TestRestore_ExpiredToken(t *testing.T) {
	store := &stubStore{sess: &domain.Session{
		AccessToken:  tokenWith(t, 7, time.Now().Add(-time.Hour)),
		RefreshToken: "refresh",
	}}
	be := &stubBackend{}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if store.clearCalls == 0 {
		t.Fatalf("expected store to be cleared")
	}
	if be.getUserCalls != 0 {
		t.Fatalf("expired token must not trigger a profile fetch, got %d calls", be.getUserCalls)
	}
}

func TestRestore_UndecodableToken(t *testing.T) {
	store := &stubStore{sess: &domain.Session{AccessToken: "garbage"}}
	be := &stubBackend{}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if store.clearCalls == 0 {
		t.Fatalf("expected store to be cleared")
	}
	if be.getUserCalls != 0 {
		t.Fatalf("undecodable token must not trigger a profile fetch")
	}
}

func TestRestore_ValidToken(t *testing.T) {
	store := &stubStore{sess: &domain.Session{
		AccessToken: tokenWith(t, 7, time.Now().Add(time.Hour)),
	}}
	be := &stubBackend{principal: &domain.Principal{ID: 7, Username: "alice", Staff: true}}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got := m.State(); got != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
	if be.lastUserID != 7 {
		t.Fatalf("profile fetched for wrong subject: %d", be.lastUserID)
	}
	// The Principal comes from the fetch response, not the token payload.
	p := m.Principal()
	if p == nil || p.Username != "alice" || !p.Staff {
		t.Fatalf("unexpected principal: %+v", p)
	}

	cap := m.Capability()
	if !cap.Authenticated || !cap.Staff {
		t.Fatalf("unexpected capability: %+v", cap)
	}
}

func TestRestore_ProfileFetchFails(t *testing.T) {
	store := &stubStore{sess: &domain.Session{
		AccessToken: tokenWith(t, 9, time.Now().Add(time.Hour)),
	}}
	be := &stubBackend{getUserErr: errors.New("404 from backend")}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore must demote silently, got error: %v", err)
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous after failed fetch, got %s", got)
	}
	if store.clearCalls == 0 {
		t.Fatalf("failed fetch must clear the store")
	}
	if m.Principal() != nil {
		t.Fatalf("no half-authenticated state allowed")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	store := &stubStore{}
	be := &stubBackend{tokenErr: errors.New("401 unauthorized")}
	m := newTestManager(store, be)

	_, err := m.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.setCalls != 0 {
		t.Fatalf("store must stay untouched on rejected login")
	}
	if got := m.Capability(); got.Authenticated {
		t.Fatalf("must not be authenticated after rejected login")
	}
}

func TestLogin_GenericErrorMessage(t *testing.T) {
	store := &stubStore{}
	be := &stubBackend{tokenErr: errors.New("user alice does not exist")}
	m := newTestManager(store, be)

	_, err := m.Login(context.Background(), "alice", "pw")
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("login failure must not leak backend detail, got %q", err)
	}
}

func TestLogin_Success(t *testing.T) {
	store := &stubStore{}
	be := &stubBackend{
		pair:      &domain.Session{AccessToken: tokenWith(t, 3, time.Now().Add(time.Hour)), RefreshToken: "r"},
		principal: &domain.Principal{ID: 3, Username: "bob"},
	}
	m := newTestManager(store, be)

	p, err := m.Login(context.Background(), "bob", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if p.Username != "bob" {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if store.setCalls != 1 || store.sess == nil || store.sess.RefreshToken != "r" {
		t.Fatalf("token pair not persisted: %+v", store.sess)
	}
	if m.AccessToken() != store.sess.AccessToken {
		t.Fatalf("accessor must expose the adopted token")
	}
	if got := m.State(); got != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}

	cap := m.Capability()
	if !cap.Authenticated || cap.Staff {
		t.Fatalf("unexpected capability for non-staff: %+v", cap)
	}
}

func TestLogin_ExpiredIssuedToken(t *testing.T) {
	// Login runs the same adopt sequence as Restore; a pair that is
	// already stale must not authenticate.
	store := &stubStore{}
	be := &stubBackend{
		pair:      &domain.Session{AccessToken: tokenWith(t, 3, time.Now().Add(-time.Minute))},
		principal: &domain.Principal{ID: 3},
	}
	m := newTestManager(store, be)

	_, err := m.Login(context.Background(), "bob", "pw")
	if !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if be.getUserCalls != 0 {
		t.Fatalf("stale pair must not trigger a profile fetch")
	}
}

func TestLogout(t *testing.T) {
	store := &stubStore{sess: &domain.Session{
		AccessToken: tokenWith(t, 5, time.Now().Add(time.Hour)),
	}}
	be := &stubBackend{principal: &domain.Principal{ID: 5, Username: "carol"}}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	m.Logout(context.Background())

	if store.sess != nil {
		t.Fatalf("logout must clear both stored tokens")
	}
	if m.Principal() != nil {
		t.Fatalf("logout must drop the principal")
	}
	if m.AccessToken() != "" {
		t.Fatalf("logout must drop the access token")
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}

	// A subsequent restore from the now-empty store makes no backend call.
	before := be.getUserCalls
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if be.getUserCalls != before {
		t.Fatalf("restore from empty store must not call the backend")
	}
	if got := m.State(); got != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
}

func TestRefreshPrincipal(t *testing.T) {
	store := &stubStore{sess: &domain.Session{
		AccessToken: tokenWith(t, 5, time.Now().Add(time.Hour)),
	}}
	be := &stubBackend{principal: &domain.Principal{ID: 5, Email: "old@example.com"}}
	m := newTestManager(store, be)

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	be.principal = &domain.Principal{ID: 5, Email: "new@example.com"}
	p, err := m.RefreshPrincipal(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if p.Email != "new@example.com" {
		t.Fatalf("principal not refreshed: %+v", p)
	}
}

func TestRefreshPrincipal_Anonymous(t *testing.T) {
	m := newTestManager(&stubStore{}, &stubBackend{})
	if _, err := m.RefreshPrincipal(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCapability_Uninitialized(t *testing.T) {
	m := newTestManager(&stubStore{}, &stubBackend{})
	if got := m.State(); got != domain.StateUninitialized {
		t.Fatalf("expected uninitialized, got %s", got)
	}
	if cap := m.Capability(); cap.Authenticated || cap.Staff {
		t.Fatalf("uninitialized manager must report no capability")
	}
}
