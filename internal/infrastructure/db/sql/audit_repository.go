package sql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// AuditRepository appends audit events to the audit_events table.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Write(ctx context.Context, event domain.AuditEvent) error {
	err := r.db.WithContext(ctx).Create(&auditModel{
		Actor:      event.Actor,
		Role:       string(event.Role),
		Action:     string(event.Action),
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		At:         event.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}).Error
	if err != nil {
		return storeError("insert audit event", err)
	}
	return nil
}
