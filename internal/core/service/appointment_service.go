package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

type AppointmentService struct {
	repo    ports.AppointmentRepository
	doctors ports.DoctorDirectory
	cache   ports.BookingCache
	policy  AccessPolicy
	audit   ports.AuditTrail
	logger  zerolog.Logger
}

// NewAppointmentService wires the appointment use cases. cache may be nil, in
// which case idempotency keys are ignored.
func NewAppointmentService(
	repo ports.AppointmentRepository,
	doctors ports.DoctorDirectory,
	cache ports.BookingCache,
	audit ports.AuditTrail,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:    repo,
		doctors: doctors,
		cache:   cache,
		audit:   auditOrDiscard(audit),
		logger:  logger,
	}
}

// Book stores a public booking. If the idempotency key was already used, the
// earlier appointment is returned and nothing new is written.
func (s *AppointmentService) Book(ctx context.Context, caller *domain.Identity, in ports.BookAppointmentInput) (*ports.BookingResult, error) {
	if err := s.policy.AuthorizeBooking(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PatientName) == "" || strings.TrimSpace(in.Doctor) == "" || strings.TrimSpace(in.Date) == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.IdempotencyKey != "" && s.cache != nil {
		existing, err := s.cache.Get(ctx, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("booking cache lookup failed, booking anyway")
		} else if existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("appointment_id", existing.ID).Msg("idempotent replay")
			return &ports.BookingResult{Appointment: existing, Replayed: true}, nil
		}
	}

	idx, err := loadDoctorIndex(ctx, s.doctors)
	if err != nil {
		return nil, err
	}
	doctor, ok := idx.resolve(in.Doctor)
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}

	created, err := s.repo.Create(ctx, &domain.Appointment{
		PatientName: strings.TrimSpace(in.PatientName),
		Age:         in.Age,
		DoctorID:    doctor.ID,
		Date:        strings.TrimSpace(in.Date),
		Symptoms:    strings.TrimSpace(in.Symptoms),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}
	created.DoctorName = doctorName(doctor)

	if in.IdempotencyKey != "" && s.cache != nil {
		if err := s.cache.Put(ctx, in.IdempotencyKey, created); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember booking")
		}
	}

	s.audit.Record(auditEvent(caller, domain.AuditAppointmentBooked, domain.EntityAppointment, created.ID))
	s.logger.Info().Str("appointment_id", created.ID).Str("doctor_id", doctor.ID).Msg("appointment booked")

	return &ports.BookingResult{Appointment: created}, nil
}

// List returns the appointments visible to caller, newest first.
func (s *AppointmentService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Appointment, error) {
	scope, err := s.policy.ScopeForRead(caller)
	if err != nil {
		return nil, err
	}
	if scope.MatchesNothing() {
		return []*domain.Appointment{}, nil
	}

	items, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	idx, err := loadDoctorIndex(ctx, s.doctors)
	if err != nil {
		return nil, err
	}
	for _, a := range items {
		a.DoctorName = idx.displayName(a.DoctorID)
	}
	return items, nil
}

func (s *AppointmentService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if err := s.policy.AuthorizeDelete(caller); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.audit.Record(auditEvent(caller, domain.AuditRecordDeleted, domain.EntityAppointment, id))
	return nil
}
