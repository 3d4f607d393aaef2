package sql

import (
	"context"

	"gorm.io/gorm"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// recordStore is the generic create/list/delete layer over one table.
type recordStore[M any] struct {
	db *gorm.DB
}

// list returns rows in scope, newest first. Ids are UUIDv7, so they sort by
// insertion time.
func (s recordStore[M]) list(ctx context.Context, scope domain.RecordScope) ([]M, error) {
	if scope.MatchesNothing() {
		return nil, nil
	}

	q := s.db.WithContext(ctx).Order("id DESC")
	if !scope.All {
		q = q.Where("doctor_id = ?", scope.DoctorID)
	}

	var rows []M
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeError("list records", err)
	}
	return rows, nil
}

func (s recordStore[M]) deleteByID(ctx context.Context, id string) error {
	var zero M
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if res.Error != nil {
		return storeError("delete record", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

type AppointmentRepository struct {
	db    *gorm.DB
	store recordStore[appointmentModel]
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db, store: recordStore[appointmentModel]{db: db}}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	m := appointmentModel{
		ID:          newID(),
		PatientName: a.PatientName,
		Age:         a.Age,
		DoctorID:    a.DoctorID,
		Date:        a.Date,
		Symptoms:    a.Symptoms,
		CreatedAt:   a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, storeError("insert appointment", err)
	}
	return m.toDomain(), nil
}

func (r *AppointmentRepository) List(ctx context.Context, scope domain.RecordScope) ([]*domain.Appointment, error) {
	rows, err := r.store.list(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Appointment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *AppointmentRepository) DeleteByID(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

type PrescriptionRepository struct {
	db    *gorm.DB
	store recordStore[prescriptionModel]
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db, store: recordStore[prescriptionModel]{db: db}}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	m := prescriptionModel{
		ID:          newID(),
		PatientName: p.PatientName,
		DoctorID:    p.DoctorID,
		Diagnosis:   p.Diagnosis,
		Medicines:   p.Medicines,
		Notes:       p.Notes,
		Date:        p.Date,
		CreatedAt:   p.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, storeError("insert prescription", err)
	}
	return m.toDomain(), nil
}

func (r *PrescriptionRepository) List(ctx context.Context, scope domain.RecordScope) ([]*domain.Prescription, error) {
	rows, err := r.store.list(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Prescription, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *PrescriptionRepository) DeleteByID(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}
