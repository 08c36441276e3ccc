package domain

import "time"

// AuditKind classifies an authentication event.
type AuditKind string

const (
	AuditRegistered  AuditKind = "registered"
	AuditLoginOK     AuditKind = "login_ok"
	AuditLoginFailed AuditKind = "login_failed"
)

// AuditEvent is an append-only record of an authentication outcome.
// Events for the same email are processed in order.
type AuditEvent struct {
	Email     string
	Kind      AuditKind
	Timestamp time.Time
}
