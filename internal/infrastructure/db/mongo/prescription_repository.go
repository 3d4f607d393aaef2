package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

const collectionPrescriptions = "prescriptions"

type prescriptionDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	PatientName string             `bson:"patient_name"`
	DoctorID    string             `bson:"doctor_id"`
	Diagnosis   string             `bson:"diagnosis"`
	Medicines   string             `bson:"medicines"`
	Notes       string             `bson:"notes,omitempty"`
	Date        string             `bson:"date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *prescriptionDoc) toDomain() *domain.Prescription {
	return &domain.Prescription{
		ID:          d.ID.Hex(),
		PatientName: d.PatientName,
		DoctorID:    d.DoctorID,
		Diagnosis:   d.Diagnosis,
		Medicines:   d.Medicines,
		Notes:       d.Notes,
		Date:        d.Date,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type PrescriptionRepository struct {
	store recordStore[prescriptionDoc]
}

func NewPrescriptionRepository(db *mongo.Database) *PrescriptionRepository {
	return &PrescriptionRepository{store: recordStore[prescriptionDoc]{coll: db.Collection(collectionPrescriptions)}}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	doc := prescriptionDoc{
		ID:          primitive.NewObjectID(),
		PatientName: p.PatientName,
		DoctorID:    p.DoctorID,
		Diagnosis:   p.Diagnosis,
		Medicines:   p.Medicines,
		Notes:       p.Notes,
		Date:        p.Date,
		CreatedAt:   p.CreatedAt,
	}
	if err := r.store.insert(ctx, &doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PrescriptionRepository) List(ctx context.Context, scope domain.RecordScope) ([]*domain.Prescription, error) {
	docs, err := r.store.list(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Prescription, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *PrescriptionRepository) DeleteByID(ctx context.Context, id string) error {
	return r.store.deleteByID(ctx, id)
}

func (r *PrescriptionRepository) EnsureIndexes(ctx context.Context) error {
	return r.store.ensureIndexes(ctx)
}
