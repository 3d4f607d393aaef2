package service

import (
	"time"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

type discardAudit struct{}

func (discardAudit) Record(domain.AuditEvent) {}

func auditOrDiscard(a ports.AuditTrail) ports.AuditTrail {
	if a == nil {
		return discardAudit{}
	}
	return a
}

func auditEvent(caller *domain.Identity, action domain.AuditAction, entity, entityID string) domain.AuditEvent {
	ev := domain.AuditEvent{
		Actor:    domain.AnonymousActor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}
	if caller != nil {
		ev.Actor = caller.Identifier
		ev.Role = caller.Role
	}
	return ev
}
