package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status     string   `json:"status"`
	Timestamp  string   `json:"timestamp"`
	Transforms []string `json:"transforms"`
}

// TransformResponse describes a registered cart transform.
type TransformResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RunPath     string `json:"run_path"`
}

// TransformListResponse is returned when listing transforms.
type TransformListResponse struct {
	Transforms []TransformResponse `json:"transforms"`
	Count      int                 `json:"count"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse(transforms []string) HealthResponse {
	if transforms == nil {
		transforms = []string{}
	}
	return HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Transforms: transforms,
	}
}
