package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// DefaultSessionTTL bounds both tokens and server-side sessions.
const DefaultSessionTTL = time.Hour

type tokenClaims struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues stateless HS256 tokens. There is no revocation list:
// a token stays valid until it expires.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Mode() domain.AuthMode {
	return domain.AuthModeToken
}

func (m *TokenManager) Issue(_ context.Context, id domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := tokenClaims{
		Username:    id.Identifier,
		Role:        string(id.Role),
		DisplayName: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) Verify(_ context.Context, credential string) (*domain.Identity, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{
		ID:          claims.Subject,
		Identifier:  claims.Username,
		Role:        role,
		DisplayName: claims.DisplayName,
	}, nil
}

// Revoke is a no-op for stateless tokens.
func (m *TokenManager) Revoke(context.Context, string) error {
	return nil
}
