package ports

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// AuditRecorder accepts audit events from the services. Implementations must
// not block the request on persistence.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}
