package ports

import (
	"context"

	"github.com/99minutos/products-api/internal/core/domain"
)

// AuditRepository persists creation-gate decisions to the audit trail.
type AuditRepository interface {
	InsertValidation(ctx context.Context, audit *domain.ValidationAudit) error
}

// AuditRecorder accepts audit records without blocking the caller.
type AuditRecorder interface {
	Record(audit domain.ValidationAudit)
}
