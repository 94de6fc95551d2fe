package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// LeadRepository provides data access methods for the lead table.
type LeadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new LeadRepository with the provided database connection.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Insert persists a new lead.
func (r *LeadRepository) Insert(ctx context.Context, l *model.Lead) error {
	query := `
		INSERT INTO lead (id, kind, name, email, phone, message, vehicle_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Kind, l.Name, l.Email, l.Phone, l.Message, l.VehicleID,
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// List retrieves leads, newest first, optionally filtered by kind.
func (r *LeadRepository) List(ctx context.Context, kind string) ([]model.Lead, error) {
	query := `SELECT id, kind, name, email, phone, message, vehicle_id, created_at FROM lead`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead table: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead table results: %w", err)
		}
		leads = append(leads, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead table: %w", err)
	}

	return leads, nil
}

// Get retrieves a single lead by ID.
// Returns apperrors.ErrLeadNotFound if no row exists.
func (r *LeadRepository) Get(ctx context.Context, id string) (model.Lead, error) {
	query := `SELECT id, kind, name, email, phone, message, vehicle_id, created_at FROM lead WHERE id = ?`

	l, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return model.Lead{}, apperrors.ErrLeadNotFound
	}
	if err != nil {
		return model.Lead{}, fmt.Errorf("failed to query lead table: %w", err)
	}
	return l, nil
}

// Delete removes a lead. Returns false if the lead does not exist.
func (r *LeadRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lead WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete lead: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func scanLead(s scanner) (model.Lead, error) {
	var l model.Lead
	var phone, message, vehicleID sql.NullString
	var createdAtStr string

	err := s.Scan(&l.ID, &l.Kind, &l.Name, &l.Email, &phone, &message, &vehicleID, &createdAtStr)
	if err != nil {
		return model.Lead{}, err
	}

	if phone.Valid {
		l.Phone = phone.String
	}
	if message.Valid {
		l.Message = message.String
	}
	if vehicleID.Valid {
		l.VehicleID = &vehicleID.String
	}

	if l.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Lead{}, err
	}

	return l, nil
}
