package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

const receiptColumns = `id, tenant_id, receipt_number, avizo_id, supplier_id, supplier_name, status, has_discrepancy,
	total_items, total_quantity, notes, completed_at, created_by, created_on, updated_on`

type receiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) repository.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, rec *domain.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO receipts (tenant_id, receipt_number, avizo_id, supplier_id, supplier_name, status, has_discrepancy,
	          total_items, total_quantity, notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		rec.TenantID, rec.ReceiptNumber, rec.AvizoID, rec.SupplierID, rec.SupplierName, rec.Status, rec.HasDiscrepancy,
		rec.TotalItems, rec.TotalQuantity, rec.Notes, rec.CreatedBy, now, now).Scan(&rec.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO receipt_items (receipt_id, product_id, product_code, product_name, expected_quantity,
	              received_quantity, unit_price, location_code) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	for i := range rec.Items {
		item := &rec.Items[i]
		item.ReceiptID = rec.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			rec.ID, item.ProductID, item.ProductCode, item.ProductName, item.ExpectedQuantity,
			item.ReceivedQuantity, item.UnitPrice, item.LocationCode).Scan(&item.ID); err != nil {
			return err
		}
	}

	rec.CreatedOn = now
	rec.UpdatedOn = now
	return tx.Commit()
}

func (r *receiptRepository) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	rec := &domain.Receipt{}
	query := fmt.Sprintf("SELECT %s FROM receipts WHERE id = $1", receiptColumns)
	err := scanReceipt(r.db.QueryRowContext(ctx, query, id), rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("receipt", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return rec, nil
}

func (r *receiptRepository) loadItems(ctx context.Context, receiptID int32) ([]domain.ReceiptItem, error) {
	query := `SELECT id, receipt_id, product_id, product_code, product_name, expected_quantity, received_quantity,
	          unit_price, location_code FROM receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReceiptItem
	for rows.Next() {
		var it domain.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.ExpectedQuantity, &it.ReceivedQuantity, &it.UnitPrice, &it.LocationCode); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *receiptRepository) Update(ctx context.Context, rec *domain.Receipt) error {
	query := `UPDATE receipts SET status=$1, has_discrepancy=$2, completed_at=$3, notes=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, rec.Status, rec.HasDiscrepancy, rec.CompletedAt, rec.Notes, time.Now(), rec.ID)
	return err
}

func (r *receiptRepository) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Receipt, int32, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM receipts WHERE tenant_id = $1", receiptColumns)

	args := []any{tenantID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var rec domain.Receipt
		if err := scanReceipt(rows, &rec); err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, count, rows.Err()
}

func scanReceipt(row rowScanner, rec *domain.Receipt) error {
	return row.Scan(&rec.ID, &rec.TenantID, &rec.ReceiptNumber, &rec.AvizoID, &rec.SupplierID, &rec.SupplierName,
		&rec.Status, &rec.HasDiscrepancy, &rec.TotalItems, &rec.TotalQuantity, &rec.Notes, &rec.CompletedAt,
		&rec.CreatedBy, &rec.CreatedOn, &rec.UpdatedOn)
}
