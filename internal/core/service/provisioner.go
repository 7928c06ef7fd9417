package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/llmbench/console/internal/api/metrics"
	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

const (
	secretPrefix         = "sk-proj-"
	secretFragmentLength = 9
)

// Provisioner implements the get-or-create protocol for per-(user, model)
// API credentials on top of a backend that only offers generic list/create
// endpoints.
//
// Concurrent issuance for the same pair inside this process is collapsed to
// a single scan-then-create via singleflight. Two separate console sessions
// can still race each other: scan and create are not atomic against the
// backend, so closing that window needs a server-side unique constraint.
type Provisioner struct {
	creds     ports.CredentialAPI
	principal ports.PrincipalSource
	endpoint  string
	log       zerolog.Logger

	flight singleflight.Group
	// newSecret is overridable in tests.
	newSecret func() string
}

// NewProvisioner builds a Provisioner. endpoint is the fixed gateway URL
// surfaced next to every issued secret.
func NewProvisioner(creds ports.CredentialAPI, principal ports.PrincipalSource, endpoint string, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		creds:     creds,
		principal: principal,
		endpoint:  endpoint,
		log:       log,
		newSecret: newSecret,
	}
}

// Issue resolves the credential for (current principal, modelID): the
// existing secret when the scan finds one, otherwise a freshly created one.
// Either way the returned secret is the backend-confirmed value, since the
// backend is the system of record.
func (p *Provisioner) Issue(ctx context.Context, modelID int64) (*ports.IssuedCredential, error) {
	pr := p.principal.Principal()
	if pr == nil {
		return nil, domain.ErrNotAuthenticated
	}

	key := strconv.FormatInt(pr.ID, 10) + ":" + strconv.FormatInt(modelID, 10)
	v, err, _ := p.flight.Do(key, func() (any, error) {
		// Joined callers share this one execution; detach it from the
		// first caller's cancellation so one abandoned request cannot
		// fail everyone in the flight.
		return p.getOrCreate(context.WithoutCancel(ctx), pr.ID, modelID)
	})
	if err != nil {
		metrics.CredentialIssuesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	return v.(*ports.IssuedCredential), nil
}

func (p *Provisioner) getOrCreate(ctx context.Context, userID, modelID int64) (*ports.IssuedCredential, error) {
	existing, err := p.creds.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: scan: %v", domain.ErrProvisioning, err)
	}

	for _, c := range existing {
		if c.UserID == userID && c.ModelID == modelID {
			metrics.CredentialIssuesTotal.WithLabelValues("existing").Inc()
			return &ports.IssuedCredential{Secret: c.Secret, Endpoint: p.endpoint}, nil
		}
	}

	created, err := p.creds.CreateCredential(ctx, domain.Credential{
		ModelID: modelID,
		UserID:  userID,
		Secret:  p.newSecret(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create: %v", domain.ErrProvisioning, err)
	}

	metrics.CredentialIssuesTotal.WithLabelValues("created").Inc()
	p.log.Info().Int64("user_id", userID).Int64("model_id", modelID).Msg("credential created")
	return &ports.IssuedCredential{Secret: created.Secret, Endpoint: p.endpoint, Created: true}, nil
}

// newSecret synthesizes an opaque secret: fixed prefix, random base36
// fragment, millisecond timestamp. Recognizable and roughly sortable, not a
// cryptographic guarantee.
func newSecret() string {
	return secretPrefix + randBase36(secretFragmentLength) + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// timestamp fallback keeps issuance working if the entropy pool is gone
		return strconv.FormatInt(time.Now().UnixNano(), 36)[:n]
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf)
}
