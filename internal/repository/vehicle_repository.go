package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
)

// VehicleRepository provides data access methods for the vehicle table.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new VehicleRepository with the provided database connection.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// VehicleFilter narrows List results. Zero values mean "no filter".
type VehicleFilter struct {
	MakeID       string
	Availability string
}

const vehicleSelect = `
	SELECT v.id, v.make_id, v.model_id, v.year, v.vin, v.price, v.mileage,
		v.fuel_type_id, v.drive_type_id, v.vehicle_type_id,
		v.availability, v.description, v.created_at,
		mk.name, md.name
	FROM vehicle v
	JOIN make mk ON v.make_id = mk.id
	JOIN model md ON v.model_id = md.id
`

// List retrieves vehicles matching the filter, enriched with make and model names.
func (r *VehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]model.VehicleResponse, error) {
	query := vehicleSelect

	var args []any
	var where []string
	if filter.MakeID != "" {
		where = append(where, "v.make_id = ?")
		args = append(args, filter.MakeID)
	}
	if filter.Availability != "" {
		where = append(where, "v.availability = ?")
		args = append(args, filter.Availability)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY v.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle table: %w", err)
	}
	defer rows.Close()

	vehicles := []model.VehicleResponse{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle table results: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle table: %w", err)
	}

	return vehicles, nil
}

// Get retrieves a single vehicle by ID.
// Returns apperrors.ErrVehicleNotFound if no row exists.
func (r *VehicleRepository) Get(ctx context.Context, id string) (model.VehicleResponse, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, vehicleSelect+" WHERE v.id = ?", id))
	if err == sql.ErrNoRows {
		return model.VehicleResponse{}, apperrors.ErrVehicleNotFound
	}
	if err != nil {
		return model.VehicleResponse{}, fmt.Errorf("failed to query vehicle table: %w", err)
	}
	return v, nil
}

// Exists reports whether a vehicle with the given ID is present.
func (r *VehicleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM vehicle WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query vehicle table: %w", err)
	}
	return true, nil
}

// Insert persists a new vehicle.
func (r *VehicleRepository) Insert(ctx context.Context, v *model.Vehicle) error {
	query := `
		INSERT INTO vehicle (id, make_id, model_id, year, vin, price, mileage,
			fuel_type_id, drive_type_id, vehicle_type_id, availability, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.MakeID, v.ModelID, v.Year, v.VIN, v.Price, v.Mileage,
		v.FuelTypeID, v.DriveTypeID, v.VehicleTypeID, v.Availability, v.Description,
		v.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields of a vehicle. Returns false if the vehicle does not exist.
func (r *VehicleRepository) Update(ctx context.Context, v *model.Vehicle) (bool, error) {
	query := `
		UPDATE vehicle
		SET make_id = ?, model_id = ?, year = ?, vin = ?, price = ?, mileage = ?,
			fuel_type_id = ?, drive_type_id = ?, vehicle_type_id = ?, description = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		v.MakeID, v.ModelID, v.Year, v.VIN, v.Price, v.Mileage,
		v.FuelTypeID, v.DriveTypeID, v.VehicleTypeID, v.Description,
		v.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// Delete removes a vehicle. Returns false if the vehicle does not exist.
func (r *VehicleRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicle WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// MarkSold sets the vehicle's availability to sold. Idempotent: re-marking an
// already-sold vehicle affects no semantics and is not an error.
func (r *VehicleRepository) MarkSold(ctx context.Context, id string) error {
	return r.setAvailability(ctx, id, model.AvailabilitySold, "")
}

// PlaceHold moves an available vehicle to reserved. No-op if the vehicle is
// already reserved or sold.
func (r *VehicleRepository) PlaceHold(ctx context.Context, id string) error {
	return r.setAvailability(ctx, id, model.AvailabilityReserved, model.AvailabilityAvailable)
}

// ReleaseHold moves a reserved vehicle back to available. No-op when no hold
// exists, so a retried cancellation stays safe.
func (r *VehicleRepository) ReleaseHold(ctx context.Context, id string) error {
	return r.setAvailability(ctx, id, model.AvailabilityAvailable, model.AvailabilityReserved)
}

func (r *VehicleRepository) setAvailability(ctx context.Context, id, to, onlyFrom string) error {
	query := `UPDATE vehicle SET availability = ? WHERE id = ?`
	args := []any{to, id}
	if onlyFrom != "" {
		query += ` AND availability = ?`
		args = append(args, onlyFrom)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", err)
	}
	return nil
}

func scanVehicle(s scanner) (model.VehicleResponse, error) {
	var v model.VehicleResponse
	var fuelTypeID, driveTypeID, vehicleTypeID, description sql.NullString
	var createdAtStr string

	err := s.Scan(
		&v.ID, &v.MakeID, &v.ModelID, &v.Year, &v.VIN, &v.Price, &v.Mileage,
		&fuelTypeID, &driveTypeID, &vehicleTypeID,
		&v.Availability, &description, &createdAtStr,
		&v.MakeName, &v.ModelName,
	)
	if err != nil {
		return model.VehicleResponse{}, err
	}

	if fuelTypeID.Valid {
		v.FuelTypeID = &fuelTypeID.String
	}
	if driveTypeID.Valid {
		v.DriveTypeID = &driveTypeID.String
	}
	if vehicleTypeID.Valid {
		v.VehicleTypeID = &vehicleTypeID.String
	}
	if description.Valid {
		v.Description = description.String
	}

	if v.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.VehicleResponse{}, err
	}

	return v, nil
}
