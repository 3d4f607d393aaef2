package ports

import (
	"context"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// AppointmentRepository stores appointments. It applies the scope it is
// given and holds no access rules of its own. List returns newest first.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, scope domain.RecordScope) ([]*domain.Appointment, error)
	DeleteByID(ctx context.Context, id string) error
}

// PrescriptionRepository stores prescriptions, newest first on List.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error)
	List(ctx context.Context, scope domain.RecordScope) ([]*domain.Prescription, error)
	DeleteByID(ctx context.Context, id string) error
}

// BookingCache remembers appointments by idempotency key so a resubmitted
// booking form returns the first result. Get returns (nil, nil) on a miss.
type BookingCache interface {
	Get(ctx context.Context, key string) (*domain.Appointment, error)
	Put(ctx context.Context, key string, a *domain.Appointment) error
}
