package service

import (
	"context"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Log(ctx context.Context, entry *domain.AuditEntry) {
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Error("audit write failed",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"tenant_id", entry.TenantID,
			"error", err)
		return
	}
	logger.Debug("audit entry recorded",
		"action", entry.Action,
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID,
		"tenant_id", entry.TenantID)
}
