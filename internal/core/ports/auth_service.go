package ports

import (
	"context"
	"time"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// NewUser carries a registration request. Password is plaintext and is hashed
// before it reaches a UserRepository.
type NewUser struct {
	Username    string
	Email       string
	Password    string
	Role        domain.Role
	DisplayName string
	Speciality  string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Identity   domain.Identity
	Credential string
	ExpiresAt  time.Time
}

type AuthService interface {
	Register(ctx context.Context, in NewUser) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, credential string) error
	Mode() domain.AuthMode
}

// SessionManager binds identities to credentials and resolves them back.
// Verify must fail with domain.ErrUnauthenticated for any unusable credential
// without saying why.
type SessionManager interface {
	Mode() domain.AuthMode
	Issue(ctx context.Context, id domain.Identity) (credential string, expiresAt time.Time, err error)
	Verify(ctx context.Context, credential string) (*domain.Identity, error)
	Revoke(ctx context.Context, credential string) error
}
