package ports

import (
	"context"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
