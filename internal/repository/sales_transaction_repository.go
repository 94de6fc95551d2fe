package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// SalesTransactionRepository provides data access methods for the sales_transaction table.
// Status transitions are written conditionally on the stored status still being pending:
// that conditional write is the only locking primitive the lifecycle needs.
type SalesTransactionRepository struct {
	db *sql.DB
}

// NewSalesTransactionRepository creates a new SalesTransactionRepository with the provided database connection.
func NewSalesTransactionRepository(db *sql.DB) *SalesTransactionRepository {
	return &SalesTransactionRepository{db: db}
}

// SalesTransactionFilter narrows List results. Zero values mean "no filter".
type SalesTransactionFilter struct {
	Status    string
	VehicleID string
	Limit     int
	Offset    int
}

const salesTransactionColumns = `
	id, vehicle_id, customer_name, customer_email,
	gross_price, discount, sale_price, tax_rate, tax_amount, total_price,
	cost_of_goods, margin, margin_percent,
	currency, payment_method, status, closed_at,
	salesperson_id, external_deal_id, notes, meta,
	vehicle_sync_pending, created_at, updated_at
`

// Insert persists a new sales transaction.
func (r *SalesTransactionRepository) Insert(ctx context.Context, t *model.SalesTransaction) error {
	query := `
		INSERT INTO sales_transaction (` + salesTransactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var meta any
	if len(t.Meta) > 0 {
		meta = string(t.Meta)
	}

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.VehicleID, t.CustomerName, t.CustomerEmail,
		t.GrossPrice, t.Discount, t.SalePrice, t.TaxRate, t.TaxAmount, t.TotalPrice,
		t.CostOfGoods, t.Margin, t.MarginPercent,
		t.Currency, t.PaymentMethod, t.Status, nullTime(t.ClosedAt),
		t.SalespersonID, t.ExternalDealID, t.Notes, meta,
		t.VehicleSyncPending,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sales transaction: %w", err)
	}

	return nil
}

// Get retrieves a single sales transaction by ID.
// Returns apperrors.ErrSalesTransactionNotFound if no row exists.
func (r *SalesTransactionRepository) Get(ctx context.Context, id string) (model.SalesTransaction, error) {
	query := `SELECT ` + salesTransactionColumns + ` FROM sales_transaction WHERE id = ?`

	t, err := scanSalesTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return model.SalesTransaction{}, apperrors.ErrSalesTransactionNotFound
	}
	if err != nil {
		return model.SalesTransaction{}, fmt.Errorf("failed to query sales_transaction table: %w", err)
	}

	return t, nil
}

// List retrieves sales transactions matching the filter, newest first.
func (r *SalesTransactionRepository) List(ctx context.Context, filter SalesTransactionFilter) ([]model.SalesTransaction, error) {
	query := `SELECT ` + salesTransactionColumns + ` FROM sales_transaction`

	var args []any
	var where []string
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.VehicleID != "" {
		where = append(where, "vehicle_id = ?")
		args = append(args, filter.VehicleID)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.SalesTransaction{}
	for rows.Next() {
		t, err := scanSalesTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales_transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales_transaction table: %w", err)
	}

	return transactions, nil
}

// Summary aggregates transaction count and monetary totals per status.
func (r *SalesTransactionRepository) Summary(ctx context.Context) (model.SalesSummary, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(sale_price), 0), COALESCE(SUM(total_price), 0)
		FROM sales_transaction
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return model.SalesSummary{}, fmt.Errorf("failed to query sales summary: %w", err)
	}
	defer rows.Close()

	summary := model.SalesSummary{
		Pending:   model.SalesSummaryRow{Status: model.StatusPending},
		Completed: model.SalesSummaryRow{Status: model.StatusCompleted},
		Cancelled: model.SalesSummaryRow{Status: model.StatusCancelled},
	}

	for rows.Next() {
		var row model.SalesSummaryRow
		if err := rows.Scan(&row.Status, &row.Count, &row.SalePrice, &row.TotalPrice); err != nil {
			return model.SalesSummary{}, fmt.Errorf("failed to scan sales summary results: %w", err)
		}

		switch row.Status {
		case model.StatusPending:
			summary.Pending = row
		case model.StatusCompleted:
			summary.Completed = row
		case model.StatusCancelled:
			summary.Cancelled = row
		}
	}

	if err = rows.Err(); err != nil {
		return model.SalesSummary{}, fmt.Errorf("error iterating sales summary: %w", err)
	}

	return summary, nil
}

// UpdatePending rewrites the mutable fields of a transaction, conditional on the stored
// status still being pending. Returns false when no row changed: the record either does
// not exist or has already reached a terminal state.
func (r *SalesTransactionRepository) UpdatePending(ctx context.Context, t *model.SalesTransaction) (bool, error) {
	query := `
		UPDATE sales_transaction
		SET customer_name = ?, customer_email = ?,
			gross_price = ?, discount = ?, sale_price = ?, tax_rate = ?, tax_amount = ?, total_price = ?,
			cost_of_goods = ?, margin = ?, margin_percent = ?,
			currency = ?, payment_method = ?,
			salesperson_id = ?, external_deal_id = ?, notes = ?, meta = ?,
			updated_at = ?
		WHERE id = ? AND status = 'pending'
	`

	var meta any
	if len(t.Meta) > 0 {
		meta = string(t.Meta)
	}

	result, err := r.db.ExecContext(ctx, query,
		t.CustomerName, t.CustomerEmail,
		t.GrossPrice, t.Discount, t.SalePrice, t.TaxRate, t.TaxAmount, t.TotalPrice,
		t.CostOfGoods, t.Margin, t.MarginPercent,
		t.Currency, t.PaymentMethod,
		t.SalespersonID, t.ExternalDealID, t.Notes, meta,
		t.UpdatedAt.UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update sales transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// TransitionStatus moves a pending transaction to a terminal status, writing the freshly
// recomputed derived fields, closed_at, and the vehicle-sync flag in the same statement.
// The WHERE clause makes the transition conditional: with two concurrent racers, exactly
// one observes an affected row. Returns false when the stored status was not pending.
func (r *SalesTransactionRepository) TransitionStatus(ctx context.Context, t *model.SalesTransaction) (bool, error) {
	query := `
		UPDATE sales_transaction
		SET sale_price = ?, tax_amount = ?, total_price = ?, margin = ?, margin_percent = ?,
			status = ?, closed_at = ?, vehicle_sync_pending = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query,
		t.SalePrice, t.TaxAmount, t.TotalPrice, t.Margin, t.MarginPercent,
		t.Status, nullTime(t.ClosedAt), t.VehicleSyncPending,
		t.UpdatedAt.UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition sales transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// ClearSyncPending marks the vehicle-side effect of a terminal transition as applied.
func (r *SalesTransactionRepository) ClearSyncPending(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sales_transaction SET vehicle_sync_pending = FALSE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to clear sync flag: %w", err)
	}
	return nil
}

// ListSyncPending returns terminal transactions whose vehicle-side write still needs a retry.
func (r *SalesTransactionRepository) ListSyncPending(ctx context.Context) ([]model.SalesTransaction, error) {
	query := `
		SELECT ` + salesTransactionColumns + `
		FROM sales_transaction
		WHERE vehicle_sync_pending = TRUE AND status != 'pending'
		ORDER BY updated_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync-pending transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.SalesTransaction{}
	for rows.Next() {
		t, err := scanSalesTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync-pending results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync-pending transactions: %w", err)
	}

	return transactions, nil
}

// Delete removes a sales transaction. Administrative hard delete; the linked vehicle's
// availability is deliberately left untouched.
func (r *SalesTransactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales_transaction WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sales transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSalesTransaction(s scanner) (model.SalesTransaction, error) {
	var t model.SalesTransaction
	var customerEmail, paymentMethod, salespersonID sql.NullString
	var externalDealID, notes, meta sql.NullString
	var costOfGoods, margin, marginPercent sql.NullFloat64
	var closedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.Scan(
		&t.ID, &t.VehicleID, &t.CustomerName, &customerEmail,
		&t.GrossPrice, &t.Discount, &t.SalePrice, &t.TaxRate, &t.TaxAmount, &t.TotalPrice,
		&costOfGoods, &margin, &marginPercent,
		&t.Currency, &paymentMethod, &t.Status, &closedAtStr,
		&salespersonID, &externalDealID, &notes, &meta,
		&t.VehicleSyncPending, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return model.SalesTransaction{}, err
	}

	if customerEmail.Valid {
		t.CustomerEmail = &customerEmail.String
	}
	if paymentMethod.Valid {
		t.PaymentMethod = &paymentMethod.String
	}
	if salespersonID.Valid {
		t.SalespersonID = &salespersonID.String
	}
	if externalDealID.Valid {
		t.ExternalDealID = externalDealID.String
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	if meta.Valid && meta.String != "" {
		t.Meta = json.RawMessage(meta.String)
	}
	if costOfGoods.Valid {
		t.CostOfGoods = &costOfGoods.Float64
	}
	if margin.Valid {
		t.Margin = &margin.Float64
	}
	if marginPercent.Valid {
		t.MarginPercent = &marginPercent.Float64
	}

	if closedAtStr.Valid {
		closedAt, err := ParseTime(closedAtStr.String)
		if err != nil {
			return model.SalesTransaction{}, err
		}
		t.ClosedAt = &closedAt
	}

	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.SalesTransaction{}, err
	}
	if t.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.SalesTransaction{}, err
	}

	return t, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
