package ports

import (
	"context"

	"github.com/llmbench/console/internal/core/domain"
)

// The backend REST API is a black box consumed through these interfaces.
// Authorization is enforced server-side; the console's own gating is a UX
// convenience on top of it.

// AuthAPI exchanges credentials for a token pair.
type AuthAPI interface {
	ObtainToken(ctx context.Context, username, password string) (*domain.Session, error)
}

// ProfileAPI reads and updates a single user record.
type ProfileAPI interface {
	GetUser(ctx context.Context, id int64) (*domain.Principal, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*domain.Principal, error)
}

// UserAdminAPI is the staff-only user management surface.
type UserAdminAPI interface {
	ListUsers(ctx context.Context) ([]domain.Principal, error)
	CreateUser(ctx context.Context, input NewUser) (*domain.Principal, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*domain.Principal, error)
	DeleteUser(ctx context.Context, id int64) error
}

// NewUser carries the fields for user creation. The backend requires a
// password on create.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Staff    bool   `json:"is_staff"`
	Password string `json:"password"`
}

// UserPatch is a partial user update; nil fields are left untouched.
type UserPatch struct {
	Email    *string `json:"email,omitempty"`
	Staff    *bool   `json:"is_staff,omitempty"`
	Password *string `json:"password,omitempty"`
}

// CatalogAPI manages the model catalog and triggers benchmark runs.
// RunTests is fire-and-forget: success means the run was accepted, not that
// it completed.
type CatalogAPI interface {
	ListModels(ctx context.Context) ([]domain.Model, error)
	CreateModel(ctx context.Context, m domain.Model) (*domain.Model, error)
	UpdateModel(ctx context.Context, m domain.Model) (*domain.Model, error)
	DeleteModel(ctx context.Context, id int64) error
	RunTests(ctx context.Context, id int64) error
}

// CredentialAPI exposes the generic list/create endpoints the provisioner
// builds its get-or-create protocol on. The backend offers no upsert.
type CredentialAPI interface {
	ListCredentials(ctx context.Context) ([]domain.Credential, error)
	CreateCredential(ctx context.Context, c domain.Credential) (*domain.Credential, error)
}

// TestBankAPI manages the unit-test bank (staff-only by convention).
type TestBankAPI interface {
	ListTests(ctx context.Context) ([]domain.UnitTest, error)
	CreateTest(ctx context.Context, t domain.UnitTest) (*domain.UnitTest, error)
	UpdateTest(ctx context.Context, t domain.UnitTest) (*domain.UnitTest, error)
	DeleteTest(ctx context.Context, id int64) error
}

// ResultAPI reads benchmark scores (read-only upstream).
type ResultAPI interface {
	ListResults(ctx context.Context) ([]domain.Result, error)
}
