package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// MakeModelRepository provides data access methods for the make and model tables.
type MakeModelRepository struct {
	db *sql.DB
}

// NewMakeModelRepository creates a new MakeModelRepository with the provided database connection.
func NewMakeModelRepository(db *sql.DB) *MakeModelRepository {
	return &MakeModelRepository{db: db}
}

// ListMakes retrieves all makes sorted by name.
func (r *MakeModelRepository) ListMakes(ctx context.Context) ([]model.Make, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM make ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query make table: %w", err)
	}
	defer rows.Close()

	makes := []model.Make{}
	for rows.Next() {
		var m model.Make
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan make table results: %w", err)
		}
		makes = append(makes, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating make table: %w", err)
	}

	return makes, nil
}

// InsertMake persists a new make.
func (r *MakeModelRepository) InsertMake(ctx context.Context, m *model.Make) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO make (id, name) VALUES (?, ?)`, m.ID, m.Name); err != nil {
		return fmt.Errorf("failed to insert make: %w", err)
	}
	return nil
}

// DeleteMake removes a make. Fails with apperrors.ErrMakeInUse when models still reference it.
func (r *MakeModelRepository) DeleteMake(ctx context.Context, id string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM model WHERE make_id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count models for make: %w", err)
	}
	if count > 0 {
		return false, apperrors.ErrMakeInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM make WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete make: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// ListModels retrieves models, optionally filtered by make, sorted by name.
func (r *MakeModelRepository) ListModels(ctx context.Context, makeID string) ([]model.Model, error) {
	query := `SELECT id, make_id, name FROM model`
	var args []any
	if makeID != "" {
		query += ` WHERE make_id = ?`
		args = append(args, makeID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query model table: %w", err)
	}
	defer rows.Close()

	models := []model.Model{}
	for rows.Next() {
		var m model.Model
		if err := rows.Scan(&m.ID, &m.MakeID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan model table results: %w", err)
		}
		models = append(models, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating model table: %w", err)
	}

	return models, nil
}

// InsertModel persists a new model under an existing make.
func (r *MakeModelRepository) InsertModel(ctx context.Context, m *model.Model) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM make WHERE id = ?`, m.MakeID).Scan(&one)
	if err == sql.ErrNoRows {
		return apperrors.ErrMakeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query make table: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO model (id, make_id, name) VALUES (?, ?, ?)`, m.ID, m.MakeID, m.Name); err != nil {
		return fmt.Errorf("failed to insert model: %w", err)
	}
	return nil
}

// DeleteModel removes a model. Returns false if the model does not exist.
func (r *MakeModelRepository) DeleteModel(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM model WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete model: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
