package ports

import (
	"context"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// AuditTrail accepts audit events without blocking the caller.
type AuditTrail interface {
	Record(event domain.AuditEvent)
}

// AuditSink persists or forwards a single audit event.
type AuditSink interface {
	Write(ctx context.Context, event domain.AuditEvent) error
}
