package validation

import (
	"strings"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/request"
)

// ValidateCreateVehicle validates a vehicle creation request.
//
// Required fields:
//   - makeId / modelId: Must be valid UUIDs
//   - vin: Non-empty
//   - year: Between 1900 and next year
//   - price: Non-negative
//   - mileage: Non-negative
func ValidateCreateVehicle(req request.CreateVehicleRequest) error {
	if err := ValidateUUID(req.MakeID); err != nil {
		return err
	}
	if err := ValidateUUID(req.ModelID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.VIN) == "" {
		errors["vin"] = "vin is required"
	}
	if req.Year < 1900 || req.Year > time.Now().Year()+1 {
		errors["year"] = "year is out of range"
	}
	if req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}
	if req.Mileage < 0 {
		errors["mileage"] = "mileage cannot be negative"
	}

	for field, id := range map[string]*string{
		"fuelTypeId":    req.FuelTypeID,
		"driveTypeId":   req.DriveTypeID,
		"vehicleTypeId": req.VehicleTypeID,
	} {
		if id != nil {
			if err := ValidateUUID(*id); err != nil {
				errors[field] = err.Error()
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateVehicle validates a vehicle update request. All fields are optional,
// but if provided, they must meet the same constraints as create.
func ValidateUpdateVehicle(req request.UpdateVehicleRequest) error {
	errors := make(map[string]string)

	for field, id := range map[string]*string{
		"makeId":        req.MakeID,
		"modelId":       req.ModelID,
		"fuelTypeId":    req.FuelTypeID,
		"driveTypeId":   req.DriveTypeID,
		"vehicleTypeId": req.VehicleTypeID,
	} {
		if id != nil {
			if err := ValidateUUID(*id); err != nil {
				errors[field] = err.Error()
			}
		}
	}

	if req.VIN != nil && strings.TrimSpace(*req.VIN) == "" {
		errors["vin"] = "vin cannot be empty"
	}
	if req.Year != nil && (*req.Year < 1900 || *req.Year > time.Now().Year()+1) {
		errors["year"] = "year is out of range"
	}
	if req.Price != nil && *req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		errors["mileage"] = "mileage cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
