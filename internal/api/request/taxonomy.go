package request

// CreateMakeRequest is the body of POST /api/makes.
type CreateMakeRequest struct {
	Name string `json:"name"`
}

// CreateModelRequest is the body of POST /api/models.
type CreateModelRequest struct {
	MakeID string `json:"makeId"`
	Name   string `json:"name"`
}

// CreateLookupRequest is the body of the lookup-table create endpoints
// (fuel types, drive types, vehicle types, vehicle statuses).
type CreateLookupRequest struct {
	Name string `json:"name"`
}

// UpdateIntegrationRequest is the body of PUT /api/system/integration.
type UpdateIntegrationRequest struct {
	DealFeedToken string `json:"dealFeedToken"`
}
