package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

type discrepancyRepository struct {
	db *sql.DB
}

func NewDiscrepancyRepository(db *sql.DB) repository.DiscrepancyRepository {
	return &discrepancyRepository{db: db}
}

const discrepancyColumns = `id, tenant_id, receipt_id, receipt_item_id, type, expected_quantity, actual_quantity,
	difference, note, supplier_notified, resolution_note, resolved_by, resolved_at, created_on`

func (r *discrepancyRepository) Create(ctx context.Context, d *domain.Discrepancy) error {
	now := time.Now()
	query := `INSERT INTO discrepancies (tenant_id, receipt_id, receipt_item_id, type, expected_quantity,
	          actual_quantity, difference, note, supplier_notified, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		d.TenantID, d.ReceiptID, d.ReceiptItemID, d.Type, d.ExpectedQuantity,
		d.ActualQuantity, d.Difference, d.Note, d.SupplierNotified, now).Scan(&d.ID)
	if err != nil {
		return err
	}
	d.CreatedOn = now
	return nil
}

func (r *discrepancyRepository) GetByID(ctx context.Context, id int32) (*domain.Discrepancy, error) {
	d := &domain.Discrepancy{}
	query := "SELECT " + discrepancyColumns + " FROM discrepancies WHERE id = $1"
	err := scanDiscrepancy(r.db.QueryRowContext(ctx, query, id), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("discrepancy", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *discrepancyRepository) Update(ctx context.Context, d *domain.Discrepancy) error {
	query := `UPDATE discrepancies SET supplier_notified=$1, resolution_note=$2, resolved_by=$3, resolved_at=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, d.SupplierNotified, d.ResolutionNote, d.ResolvedBy, d.ResolvedAt, d.ID)
	return err
}

func (r *discrepancyRepository) ListByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error) {
	return r.list(ctx, "receipt_id = $1", receiptID)
}

func (r *discrepancyRepository) ListUnresolvedByReceipt(ctx context.Context, receiptID int32) ([]domain.Discrepancy, error) {
	return r.list(ctx, "receipt_id = $1 AND resolved_at IS NULL", receiptID)
}

func (r *discrepancyRepository) list(ctx context.Context, where string, arg any) ([]domain.Discrepancy, error) {
	query := "SELECT " + discrepancyColumns + " FROM discrepancies WHERE " + where + " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Discrepancy
	for rows.Next() {
		var d domain.Discrepancy
		if err := scanDiscrepancy(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDiscrepancy(row rowScanner, d *domain.Discrepancy) error {
	return row.Scan(&d.ID, &d.TenantID, &d.ReceiptID, &d.ReceiptItemID, &d.Type, &d.ExpectedQuantity,
		&d.ActualQuantity, &d.Difference, &d.Note, &d.SupplierNotified, &d.ResolutionNote,
		&d.ResolvedBy, &d.ResolvedAt, &d.CreatedOn)
}
