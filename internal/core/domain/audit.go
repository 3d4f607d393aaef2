package domain

import "time"

// AuditAction names a security-relevant operation.
type AuditAction string

const (
	AuditLoginSucceeded      AuditAction = "login_succeeded"
	AuditLoginFailed         AuditAction = "login_failed"
	AuditUserRegistered      AuditAction = "user_registered"
	AuditAppointmentBooked   AuditAction = "appointment_booked"
	AuditPrescriptionWritten AuditAction = "prescription_written"
	AuditRecordDeleted       AuditAction = "record_deleted"
)

const (
	EntityUser         = "user"
	EntityAppointment  = "appointment"
	EntityPrescription = "prescription"
)

// AuditEvent records who did what to which record. Actor is the identity
// identifier, or "anonymous" for public operations.
type AuditEvent struct {
	Actor    string      `json:"actor"`
	Role     Role        `json:"role,omitempty"`
	Action   AuditAction `json:"action"`
	Entity   string      `json:"entity"`
	EntityID string      `json:"entityId,omitempty"`
	At       time.Time   `json:"at"`
}

// AnonymousActor is the actor recorded for unauthenticated operations.
const AnonymousActor = "anonymous"
