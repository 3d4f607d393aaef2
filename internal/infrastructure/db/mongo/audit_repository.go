package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

// AuditRepository appends audit events to the audit_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionAuditEvents)}
}

// Write persists a single audit event.
func (r *AuditRepository) Write(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"actor":       event.Actor,
		"action":      string(event.Action),
		"entity":      event.Entity,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Role != "" {
		doc["role"] = string(event.Role)
	}
	if event.EntityID != "" {
		doc["entity_id"] = event.EntityID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert audit event", err)
	}
	return nil
}
