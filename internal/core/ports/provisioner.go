package ports

import (
	"context"

	"github.com/llmbench/console/internal/core/domain"
)

// PrincipalSource yields the current authenticated principal, or nil.
type PrincipalSource interface {
	Principal() *domain.Principal
}

// IssuedCredential is the outcome of a get-or-create issuance: the resolved
// secret plus the fixed gateway endpoint the caller points an external
// client at.
type IssuedCredential struct {
	Secret   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	Created  bool   `json:"-"`
}

// CredentialProvisioner issues a per-(user, model) API credential
// idempotently: repeated calls for the same pair return the same secret and
// create at most one record.
type CredentialProvisioner interface {
	Issue(ctx context.Context, modelID int64) (*IssuedCredential, error)
}
