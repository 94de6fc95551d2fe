package request

// CreateLeadRequest is the body of POST /api/leads: a contact request or a
// sell-us-your-car submission.
type CreateLeadRequest struct {
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Message   string  `json:"message,omitempty"`
	VehicleID *string `json:"vehicleId,omitempty"`
}
