package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

type PrescriptionService struct {
	repo    ports.PrescriptionRepository
	doctors ports.DoctorDirectory
	policy  AccessPolicy
	audit   ports.AuditTrail
	logger  zerolog.Logger
}

func NewPrescriptionService(
	repo ports.PrescriptionRepository,
	doctors ports.DoctorDirectory,
	audit ports.AuditTrail,
	logger zerolog.Logger,
) *PrescriptionService {
	return &PrescriptionService{repo: repo, doctors: doctors, audit: auditOrDiscard(audit), logger: logger}
}

// Write stores a prescription authored by caller, who must be a doctor.
func (s *PrescriptionService) Write(ctx context.Context, caller *domain.Identity, in ports.WritePrescriptionInput) (*domain.Prescription, error) {
	if err := s.policy.AuthorizePrescription(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PatientName) == "" ||
		strings.TrimSpace(in.Diagnosis) == "" ||
		strings.TrimSpace(in.Medicines) == "" ||
		strings.TrimSpace(in.Date) == "" {
		return nil, domain.ErrInvalidInput
	}

	idx, err := loadDoctorIndex(ctx, s.doctors)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Prescription{
		PatientName: strings.TrimSpace(in.PatientName),
		DoctorID:    caller.ID,
		Diagnosis:   strings.TrimSpace(in.Diagnosis),
		Medicines:   strings.TrimSpace(in.Medicines),
		Notes:       strings.TrimSpace(in.Notes),
		Date:        strings.TrimSpace(in.Date),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create prescription")
		return nil, err
	}
	// author name uses the same join as List
	created.DoctorName = idx.displayName(caller.ID)
	if created.DoctorName == "" {
		created.DoctorName = caller.Identifier
	}

	s.audit.Record(auditEvent(caller, domain.AuditPrescriptionWritten, domain.EntityPrescription, created.ID))
	s.logger.Info().Str("prescription_id", created.ID).Str("doctor_id", caller.ID).Msg("prescription written")
	return created, nil
}

// List returns the prescriptions visible to caller, newest first.
func (s *PrescriptionService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Prescription, error) {
	scope, err := s.policy.ScopeForRead(caller)
	if err != nil {
		return nil, err
	}
	if scope.MatchesNothing() {
		return []*domain.Prescription{}, nil
	}

	items, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	idx, err := loadDoctorIndex(ctx, s.doctors)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		p.DoctorName = idx.displayName(p.DoctorID)
	}
	return items, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if err := s.policy.AuthorizeDelete(caller); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.audit.Record(auditEvent(caller, domain.AuditRecordDeleted, domain.EntityPrescription, id))
	return nil
}
