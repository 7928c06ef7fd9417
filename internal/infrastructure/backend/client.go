// Package backend is the typed HTTP client for the benchmark REST API. The
// API is a black box: the console trusts its JSON bodies and status codes
// and performs no retries; a failed call surfaces immediately to the
// action that triggered it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/llmbench/console/internal/api/metrics"
	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

const maxErrorBody = 2048

// StatusError is returned for any non-2xx backend response on a resource
// call.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the benchmark backend. The bearer token is read from the
// session store on every request, so the client always presents whatever
// the auth manager last persisted, including the candidate token during
// session restoration.
type Client struct {
	base  string
	http  *http.Client
	store ports.SessionStore
	log   zerolog.Logger
}

// New builds a Client rooted at baseURL (e.g. "http://127.0.0.1:8000/api").
func New(baseURL string, timeout time.Duration, store ports.SessionStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		store: store,
		log:   log,
	}
}

// do issues one JSON request. A nil out skips response decoding; 204 always
// skips it.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess, err := c.store.Get(ctx); err == nil && sess.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.BackendRequestsTotal.WithLabelValues(method, "upstream_error").Inc()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("backend rejected request")
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	metrics.BackendRequestsTotal.WithLabelValues(method, "ok").Inc()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Ping reports whether the backend answers HTTP at all. Any response,
// including an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ObtainToken exchanges credentials for an access/refresh pair. Every
// non-2xx response is an authentication failure from the caller's point of
// view.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (*domain.Session, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token/", tokenRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Access == "" {
		return nil, errors.New("token endpoint returned no access token")
	}
	return &domain.Session{AccessToken: resp.Access, RefreshToken: resp.Refresh}, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (c *Client) GetUser(ctx context.Context, id int64) (*domain.Principal, error) {
	var p domain.Principal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.Principal, error) {
	var out []domain.Principal
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, input ports.NewUser) (*domain.Principal, error) {
	var p domain.Principal
	if err := c.do(ctx, http.MethodPost, "/users/", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch ports.UserPatch) (*domain.Principal, error) {
	var p domain.Principal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/", id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/", id), nil, nil)
}

// ── Model catalog ─────────────────────────────────────────────────────────────

func (c *Client) ListModels(ctx context.Context) ([]domain.Model, error) {
	var out []domain.Model
	if err := c.do(ctx, http.MethodGet, "/llms/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateModel(ctx context.Context, m domain.Model) (*domain.Model, error) {
	var created domain.Model
	if err := c.do(ctx, http.MethodPost, "/llms/", m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateModel(ctx context.Context, m domain.Model) (*domain.Model, error) {
	var updated domain.Model
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/llms/%d/", m.ID), m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteModel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/llms/%d/", id), nil, nil)
}

// RunTests asks the backend to benchmark the model against the test bank.
// A 202 means accepted, not completed; scheduling is the backend's concern.
func (c *Client) RunTests(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/llms/%d/run_tests/", id), nil, nil)
}

// ── Credentials ───────────────────────────────────────────────────────────────

func (c *Client) ListCredentials(ctx context.Context) ([]domain.Credential, error) {
	var out []domain.Credential
	if err := c.do(ctx, http.MethodGet, "/llm-users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type newCredential struct {
	ModelID int64  `json:"llm"`
	UserID  int64  `json:"user"`
	Secret  string `json:"token"`
}

func (c *Client) CreateCredential(ctx context.Context, cred domain.Credential) (*domain.Credential, error) {
	var created domain.Credential
	in := newCredential{ModelID: cred.ModelID, UserID: cred.UserID, Secret: cred.Secret}
	if err := c.do(ctx, http.MethodPost, "/llm-users/", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ── Test bank ─────────────────────────────────────────────────────────────────

func (c *Client) ListTests(ctx context.Context) ([]domain.UnitTest, error) {
	var out []domain.UnitTest
	if err := c.do(ctx, http.MethodGet, "/unit-tests/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTest(ctx context.Context, t domain.UnitTest) (*domain.UnitTest, error) {
	var created domain.UnitTest
	if err := c.do(ctx, http.MethodPost, "/unit-tests/", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTest(ctx context.Context, t domain.UnitTest) (*domain.UnitTest, error) {
	var updated domain.UnitTest
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/unit-tests/%d/", t.ID), t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/unit-tests/%d/", id), nil, nil)
}

// ── Results ───────────────────────────────────────────────────────────────────

func (c *Client) ListResults(ctx context.Context) ([]domain.Result, error) {
	var out []domain.Result
	if err := c.do(ctx, http.MethodGet, "/llm-results/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
