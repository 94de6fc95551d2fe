package model

import "time"

// Vehicle availability markers. A pending sale places a reserved hold; completing a
// sale marks the vehicle sold; cancelling releases the hold.
const (
	AvailabilityAvailable = "available"
	AvailabilityReserved  = "reserved"
	AvailabilitySold      = "sold"
)

// Vehicle represents one unit of dealership inventory.
type Vehicle struct {
	ID            string    `json:"id"`
	MakeID        string    `json:"makeId"`
	ModelID       string    `json:"modelId"`
	Year          int       `json:"year"`
	VIN           string    `json:"vin"`
	Price         float64   `json:"price"`
	Mileage       int       `json:"mileage"`
	FuelTypeID    *string   `json:"fuelTypeId,omitempty"`
	DriveTypeID   *string   `json:"driveTypeId,omitempty"`
	VehicleTypeID *string   `json:"vehicleTypeId,omitempty"`
	Availability  string    `json:"availability"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// VehicleResponse is a vehicle enriched with make and model names for API responses.
type VehicleResponse struct {
	Vehicle
	MakeName  string `json:"makeName"`
	ModelName string `json:"modelName"`
}
