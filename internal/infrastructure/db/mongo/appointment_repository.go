package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

const collectionAppointments = "appointments"

type appointmentDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	PatientName string             `bson:"patient_name"`
	Age         *int               `bson:"age,omitempty"`
	DoctorID    string             `bson:"doctor_id"`
	Date        string             `bson:"date"`
	Symptoms    string             `bson:"symptoms,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          d.ID.Hex(),
		PatientName: d.PatientName,
		Age:         d.Age,
		DoctorID:    d.DoctorID,
		Date:        d.Date,
		Symptoms:    d.Symptoms,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// AppointmentRepository implements ports.AppointmentRepository on MongoDB.
type AppointmentRepository struct {
	store recordStore[appointmentDoc]
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{store: recordStore[appointmentDoc]{coll: db.Collection(collectionAppointments)}}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc := appointmentDoc{
		ID:          primitive.NewObjectID(),
		PatientName: a.PatientName,
		Age:         a.Age,
		DoctorID:    a.DoctorID,
		Date:        a.Date,
		Symptoms:    a.Symptoms,
		CreatedAt:   a.CreatedAt,
	}
	if err := r.store.insert(ctx, &doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) List(ctx context.Context, scope domain.RecordScope) ([]*domain.Appointment, error) {
	docs, err := r.store.list(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Appointment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *AppointmentRepository) DeleteByID(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	return r.store.ensureIndexes(ctx)
}
