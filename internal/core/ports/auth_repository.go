package ports

import (
	"context"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// UserRepository persists login identities. Implementations must reject a
// username or email that is already taken with domain.ErrUserExists.
type UserRepository interface {
	// FindByIdentifier matches the identifier exactly against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
