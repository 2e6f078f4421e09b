package service

import (
	"context"

	"github.com/blogosphere/blog/internal/core/domain"
)

// NopAudit discards audit events.
type NopAudit struct{}

func (NopAudit) Record(context.Context, domain.AuditEvent) {}
