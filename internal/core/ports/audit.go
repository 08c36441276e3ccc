package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
)

// AuditRepository appends authentication events to durable storage.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts events for asynchronous recording. Enqueue must not block
// the request path beyond channel capacity.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
