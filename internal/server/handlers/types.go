package handlers

// DashboardRequest carries the optional city/country query parameters.
// Empty values fall back to the configured defaults before validation.
type DashboardRequest struct {
	City    string `form:"city" json:"city" validate:"omitempty,placename"`
	Country string `form:"country" json:"country" validate:"omitempty,placename"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error" validate:"required,min=1,max=500"`
	Code    string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string `json:"status" validate:"required,oneof=ok alive ready degraded unavailable"`
	Uptime    string `json:"uptime" validate:"required"`
	Timestamp string `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
