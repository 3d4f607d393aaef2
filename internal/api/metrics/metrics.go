// Package metrics defines and registers all custom Prometheus metrics for the
// SmartCare clinic API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartcare"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts doctor identities created through /register.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identities registered.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// AppointmentsBookedTotal counts booking requests.
// Label:
//   - result: "created" or "replayed" (idempotency key hit)
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointment bookings, labelled by result.",
	},
	[]string{"result"},
)

// PrescriptionsWrittenTotal counts prescriptions written by doctors.
var PrescriptionsWrittenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prescriptions_written_total",
		Help:      "Total number of prescriptions written.",
	},
)

// RecordsDeletedTotal counts admin deletions.
// Label:
//   - entity: "appointment" or "prescription"
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records deleted by administrators.",
	},
	[]string{"entity"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events delivered to the sinks.
// Label:
//   - action: the audit action (e.g. "login_failed")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events handed to the sinks.",
	},
	[]string{"action"},
)

// AuditEventsDroppedTotal counts audit events that were never delivered.
// Label:
//   - reason: "queue_full" or "closed"
var AuditEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped before delivery.",
	},
	[]string{"reason"},
)

// AuditSinkErrorsTotal counts failed sink writes.
var AuditSinkErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_sink_errors_total",
		Help:      "Total number of audit sink write failures.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
