package postgres

import (
	"context"
	"database/sql"

	"rentflow-backend/internal/repository"
)

type sequenceRepository struct {
	db *sql.DB
}

func NewSequenceRepository(db *sql.DB) repository.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next relies on the upsert being atomic per (tenant_id, scope, year)
// row, so concurrent callers never observe the same value.
func (r *sequenceRepository) Next(ctx context.Context, tenantID int32, scope string, year int) (int32, error) {
	query := `INSERT INTO document_sequences (tenant_id, scope, year, next_value)
	          VALUES ($1, $2, $3, 1)
	          ON CONFLICT (tenant_id, scope, year)
	          DO UPDATE SET next_value = document_sequences.next_value + 1
	          RETURNING next_value`
	var value int32
	if err := r.db.QueryRowContext(ctx, query, tenantID, scope, year).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}
