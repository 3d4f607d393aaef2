package sql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	taken, err := r.identifierTaken(ctx, user.Username)
	if err == nil && !taken && user.Email != "" {
		taken, err = r.identifierTaken(ctx, user.Email)
	}
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	m := userModel{
		ID:           newID(),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		DisplayName:  user.DisplayName,
		Speciality:   user.Speciality,
		CreatedAt:    user.CreatedAt,
	}
	if user.Email != "" {
		email := user.Email
		m.Email = &email
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, storeError("insert user", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) identifierTaken(ctx context.Context, identifier string) (bool, error) {
	_, err := r.FindByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

// FindByIdentifier matches identifier against username or email.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError("find user", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&n).Error; err != nil {
		return 0, storeError("count users", err)
	}
	return n, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Order("username ASC").Find(&models).Error; err != nil {
		return nil, storeError("list users", err)
	}
	out := make([]*domain.User, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}
