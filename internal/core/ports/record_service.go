package ports

import (
	"context"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// BookAppointmentInput is the public booking form. Doctor may be a display
// name, username or id of a doctor identity.
type BookAppointmentInput struct {
	PatientName    string
	Age            *int
	Doctor         string
	Date           string
	Symptoms       string
	IdempotencyKey string
}

// BookingResult wraps a booked appointment. Replayed is true when the
// idempotency key matched an earlier booking.
type BookingResult struct {
	Appointment *domain.Appointment
	Replayed    bool
}

// WritePrescriptionInput carries a prescription authored by the caller.
type WritePrescriptionInput struct {
	PatientName string
	Diagnosis   string
	Medicines   string
	Notes       string
	Date        string
}

// AppointmentService exposes appointment use cases. A nil identity means an
// anonymous caller.
type AppointmentService interface {
	Book(ctx context.Context, caller *domain.Identity, in BookAppointmentInput) (*BookingResult, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Appointment, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}

type PrescriptionService interface {
	Write(ctx context.Context, caller *domain.Identity, in WritePrescriptionInput) (*domain.Prescription, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Prescription, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}

// DoctorDirectory lists doctor identities and resolves references to them.
type DoctorDirectory interface {
	ListDoctors(ctx context.Context) ([]*domain.User, error)
}
