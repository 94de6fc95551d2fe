package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// LookupRepository provides data access for the name-only taxonomy tables
// (fuel_type, drive_type, vehicle_type, vehicle_status). The table name is always
// taken from the whitelist below, never from request input.
type LookupRepository struct {
	db *sql.DB
}

// NewLookupRepository creates a new LookupRepository with the provided database connection.
func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

var lookupTables = map[string]bool{
	model.LookupFuelType:      true,
	model.LookupDriveType:     true,
	model.LookupVehicleType:   true,
	model.LookupVehicleStatus: true,
}

func lookupTable(kind string) (string, error) {
	if !lookupTables[kind] {
		return "", fmt.Errorf("unknown lookup kind: %s", kind)
	}
	return kind, nil
}

// List retrieves all entries of one lookup kind, sorted by name.
func (r *LookupRepository) List(ctx context.Context, kind string) ([]model.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G202: table name comes from the hardcoded whitelist above
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM "+table+" ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s table: %w", table, err)
	}
	defer rows.Close()

	entries := []model.Lookup{}
	for rows.Next() {
		var l model.Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s table results: %w", table, err)
		}
		entries = append(entries, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s table: %w", table, err)
	}

	return entries, nil
}

// Insert persists a new lookup entry of the given kind.
func (r *LookupRepository) Insert(ctx context.Context, kind string, l *model.Lookup) error {
	table, err := lookupTable(kind)
	if err != nil {
		return err
	}

	//nolint:gosec // G202: table name comes from the hardcoded whitelist above
	if _, err := r.db.ExecContext(ctx, "INSERT INTO "+table+" (id, name) VALUES (?, ?)", l.ID, l.Name); err != nil {
		return fmt.Errorf("failed to insert into %s table: %w", table, err)
	}
	return nil
}

// Delete removes a lookup entry. Returns false if the entry does not exist.
func (r *LookupRepository) Delete(ctx context.Context, kind, id string) (bool, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return false, err
	}

	//nolint:gosec // G202: table name comes from the hardcoded whitelist above
	result, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s table: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
