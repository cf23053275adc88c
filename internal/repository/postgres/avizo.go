package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
)

const avizoColumns = `id, tenant_id, avizo_number, supplier_id, supplier_name, expected_date, status,
	total_items, total_quantity, notes, pdf_url, created_by, created_on, updated_on`

type avizoRepository struct {
	db *sql.DB
}

func NewAvizoRepository(db *sql.DB) repository.AvizoRepository {
	return &avizoRepository{db: db}
}

func (r *avizoRepository) Create(ctx context.Context, a *domain.Avizo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO avizos (tenant_id, avizo_number, supplier_id, supplier_name, expected_date, status,
	          total_items, total_quantity, notes, pdf_url, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		a.TenantID, a.AvizoNumber, a.SupplierID, a.SupplierName, a.ExpectedDate, a.Status,
		a.TotalItems, a.TotalQuantity, a.Notes, a.PdfURL, a.CreatedBy, now, now).Scan(&a.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO avizo_items (avizo_id, product_id, product_code, product_name, expected_quantity, received_quantity)
	              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range a.Items {
		item := &a.Items[i]
		item.AvizoID = a.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			a.ID, item.ProductID, item.ProductCode, item.ProductName, item.ExpectedQuantity, item.ReceivedQuantity).Scan(&item.ID); err != nil {
			return err
		}
	}

	a.CreatedOn = now
	a.UpdatedOn = now
	return tx.Commit()
}

func (r *avizoRepository) GetByID(ctx context.Context, id int32) (*domain.Avizo, error) {
	a := &domain.Avizo{}
	query := fmt.Sprintf("SELECT %s FROM avizos WHERE id = $1", avizoColumns)
	err := scanAvizo(r.db.QueryRowContext(ctx, query, id), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("avizo", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Items = items
	return a, nil
}

func (r *avizoRepository) loadItems(ctx context.Context, avizoID int32) ([]domain.AvizoItem, error) {
	query := `SELECT id, avizo_id, product_id, product_code, product_name, expected_quantity, received_quantity
	          FROM avizo_items WHERE avizo_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, avizoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AvizoItem
	for rows.Next() {
		var it domain.AvizoItem
		if err := rows.Scan(&it.ID, &it.AvizoID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.ExpectedQuantity, &it.ReceivedQuantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *avizoRepository) Update(ctx context.Context, a *domain.Avizo) error {
	query := `UPDATE avizos SET status=$1, expected_date=$2, notes=$3, pdf_url=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, a.Status, a.ExpectedDate, a.Notes, a.PdfURL, time.Now(), a.ID)
	return err
}

func (r *avizoRepository) AddReceivedQuantity(ctx context.Context, avizoID, productID int32, quantity decimal.Decimal) error {
	query := `UPDATE avizo_items SET received_quantity = received_quantity + $1 WHERE avizo_id = $2 AND product_id = $3`
	_, err := r.db.ExecContext(ctx, query, quantity, avizoID, productID)
	return err
}

func (r *avizoRepository) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Avizo, int32, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM avizos WHERE tenant_id = $1", avizoColumns)

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

	var avizos []domain.Avizo
	for rows.Next() {
		var a domain.Avizo
		if err := scanAvizo(rows, &a); err != nil {
			return nil, 0, err
		}
		avizos = append(avizos, a)
	}
	return avizos, count, rows.Err()
}

func scanAvizo(row rowScanner, a *domain.Avizo) error {
	return row.Scan(&a.ID, &a.TenantID, &a.AvizoNumber, &a.SupplierID, &a.SupplierName, &a.ExpectedDate,
		&a.Status, &a.TotalItems, &a.TotalQuantity, &a.Notes, &a.PdfURL, &a.CreatedBy, &a.CreatedOn, &a.UpdatedOn)
}
