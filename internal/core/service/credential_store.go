package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 10

// CredentialStore owns user records: it hashes passwords on the way in and
// never hands plaintext to the repository.
type CredentialStore struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewCredentialStore(repo ports.UserRepository, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{repo: repo, log: log}
}

func (s *CredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return s.repo.FindByIdentifier(ctx, strings.TrimSpace(identifier))
}

// Create validates and hashes in.Password, then stores the user. A taken
// username or email fails with domain.ErrUserExists.
func (s *CredentialStore) Create(ctx context.Context, in ports.NewUser) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Speciality:   strings.TrimSpace(in.Speciality),
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, user)
}

func (s *CredentialStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SeedDefaults inserts seeds only when the store holds no users at all and
// returns how many were created. Running it again is a no-op.
func (s *CredentialStore) SeedDefaults(ctx context.Context, seeds []ports.NewUser) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int64("users", n).Msg("user store not empty, skipping seed")
		return 0, nil
	}

	created := 0
	for _, seed := range seeds {
		if _, err := s.Create(ctx, seed); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return created, fmt.Errorf("seed %q: %w", seed.Username, err)
		}
		created++
	}
	s.log.Info().Int("users", created).Msg("default users seeded")
	return created, nil
}

// ListDoctors returns every doctor identity.
func (s *CredentialStore) ListDoctors(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleDoctor)
}

// DefaultSeedUsers is the bootstrap set: one admin and the clinic's doctors.
func DefaultSeedUsers(adminPassword, doctorPassword string) []ports.NewUser {
	doctor := func(username, name, speciality string) ports.NewUser {
		return ports.NewUser{
			Username:    username,
			Password:    doctorPassword,
			Role:        domain.RoleDoctor,
			DisplayName: name,
			Speciality:  speciality,
		}
	}
	return []ports.NewUser{
		{Username: "admin", Password: adminPassword, Role: domain.RoleAdmin, DisplayName: "Administrator"},
		doctor("drrao", "Dr. A. Rao", "General Physician"),
		doctor("drmeena", "Dr. Meena S.", "Pediatrician"),
		doctor("drkumar", "Dr. K. Kumar", "Orthopedic"),
		doctor("drsharma", "Dr. P. Sharma", "Cardiologist"),
	}
}
