package sql

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// newID returns a time-ordered UUIDv7 so that sorting by id matches insertion order.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type userModel struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Username     string  `gorm:"uniqueIndex;size:255;not null"`
	Email        *string `gorm:"uniqueIndex;size:255"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"index;size:16;not null"`
	DisplayName  string  `gorm:"size:255"`
	Speciality   string  `gorm:"size:255"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	u := &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		DisplayName:  m.DisplayName,
		Speciality:   m.Speciality,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

type appointmentModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	PatientName string `gorm:"size:255;not null"`
	Age         *int
	DoctorID    string `gorm:"index;size:36;not null"`
	Date        string `gorm:"size:32;not null"`
	Symptoms    string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (appointmentModel) TableName() string { return "appointments" }

func (m *appointmentModel) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          m.ID,
		PatientName: m.PatientName,
		Age:         m.Age,
		DoctorID:    m.DoctorID,
		Date:        m.Date,
		Symptoms:    m.Symptoms,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type prescriptionModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	PatientName string `gorm:"size:255;not null"`
	DoctorID    string `gorm:"index;size:36;not null"`
	Diagnosis   string `gorm:"type:text;not null"`
	Medicines   string `gorm:"type:text;not null"`
	Notes       string `gorm:"type:text"`
	Date        string `gorm:"size:32;not null"`
	CreatedAt   time.Time
}

func (prescriptionModel) TableName() string { return "prescriptions" }

func (m *prescriptionModel) toDomain() *domain.Prescription {
	return &domain.Prescription{
		ID:          m.ID,
		PatientName: m.PatientName,
		DoctorID:    m.DoctorID,
		Diagnosis:   m.Diagnosis,
		Medicines:   m.Medicines,
		Notes:       m.Notes,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type auditModel struct {
	ID         uint   `gorm:"primaryKey"`
	Actor      string `gorm:"index;size:255;not null"`
	Role       string `gorm:"size:16"`
	Action     string `gorm:"index;size:64;not null"`
	Entity     string `gorm:"size:32;not null"`
	EntityID   string `gorm:"size:64"`
	At         time.Time
	RecordedAt time.Time
}

func (auditModel) TableName() string { return "audit_events" }
