package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so an unknown
// identifier is not distinguishable by response time.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("smartcare-placeholder"), PasswordCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// AuthService implements registration, login and logout.
type AuthService struct {
	creds    *CredentialStore
	sessions ports.SessionManager
	audit    ports.AuditTrail
	log      zerolog.Logger
}

func NewAuthService(creds *CredentialStore, sessions ports.SessionManager, audit ports.AuditTrail, log zerolog.Logger) *AuthService {
	return &AuthService{creds: creds, sessions: sessions, audit: auditOrDiscard(audit), log: log}
}

func (s *AuthService) Mode() domain.AuthMode {
	return s.sessions.Mode()
}

// Register creates a doctor identity. Admins exist only through seeding.
func (s *AuthService) Register(ctx context.Context, in ports.NewUser) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleDoctor
	}
	if in.Role != domain.RoleDoctor {
		return nil, domain.ErrRoleNotAllowed
	}
	if in.DisplayName == "" {
		in.DisplayName = in.Username
	}

	user, err := s.creds.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Record(auditEvent(nil, domain.AuditUserRegistered, domain.EntityUser, user.ID))
	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies the password and issues a credential. Unknown identifiers
// and wrong passwords both fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.creds.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			compareDummy(password)
			s.loginFailed(identifier)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(identifier)
		return nil, domain.ErrInvalidCredentials
	}

	identity := user.Identity()
	credential, expiresAt, err := s.sessions.Issue(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.audit.Record(auditEvent(&identity, domain.AuditLoginSucceeded, domain.EntityUser, identity.ID))
	return &ports.LoginResult{Identity: identity, Credential: credential, ExpiresAt: expiresAt}, nil
}

// Logout revokes the credential. In token mode this does nothing: the client
// discards the token and it expires on its own.
func (s *AuthService) Logout(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, credential)
}

func (s *AuthService) loginFailed(identifier string) {
	ev := auditEvent(nil, domain.AuditLoginFailed, domain.EntityUser, "")
	ev.Actor = identifier
	s.audit.Record(ev)
	s.log.Warn().Str("identifier", identifier).Msg("login failed")
}
