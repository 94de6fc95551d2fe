package request

// CreateVehicleRequest is the body of POST /api/vehicles.
type CreateVehicleRequest struct {
	MakeID        string  `json:"makeId"`
	ModelID       string  `json:"modelId"`
	Year          int     `json:"year"`
	VIN           string  `json:"vin"`
	Price         float64 `json:"price"`
	Mileage       int     `json:"mileage"`
	FuelTypeID    *string `json:"fuelTypeId,omitempty"`
	DriveTypeID   *string `json:"driveTypeId,omitempty"`
	VehicleTypeID *string `json:"vehicleTypeId,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// UpdateVehicleRequest is the body of PUT /api/vehicles/{uuid}. All fields optional.
type UpdateVehicleRequest struct {
	MakeID        *string  `json:"makeId,omitempty"`
	ModelID       *string  `json:"modelId,omitempty"`
	Year          *int     `json:"year,omitempty"`
	VIN           *string  `json:"vin,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Mileage       *int     `json:"mileage,omitempty"`
	FuelTypeID    *string  `json:"fuelTypeId,omitempty"`
	DriveTypeID   *string  `json:"driveTypeId,omitempty"`
	VehicleTypeID *string  `json:"vehicleTypeId,omitempty"`
	Description   *string  `json:"description,omitempty"`
}
