package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	now := time.Now()
	query := `INSERT INTO audit_log (tenant_id, user_id, action, entity_type, entity_id, metadata, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		e.TenantID, e.UserID, e.Action, e.EntityType, e.EntityID, metadata, now).Scan(&e.ID); err != nil {
		return err
	}
	e.CreatedOn = now
	return nil
}
