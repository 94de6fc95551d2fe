package model

// Make represents a vehicle manufacturer.
type Make struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Model represents a vehicle model belonging to a make.
type Model struct {
	ID     string `json:"id"`
	MakeID string `json:"makeId"`
	Name   string `json:"name"`
}

// Lookup is a name-only taxonomy row (fuel type, drive type, vehicle type, vehicle status).
type Lookup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lookup table kinds accepted by the lookup repository. Table names are taken from
// this whitelist only, never from request input.
const (
	LookupFuelType      = "fuel_type"
	LookupDriveType     = "drive_type"
	LookupVehicleType   = "vehicle_type"
	LookupVehicleStatus = "vehicle_status"
)
