// Package api contains types for the API requests and responses.
package api

// Response statuses returned to the caller.
const (
	StatusNormal            = "NORMAL"
	StatusCriticalAlertSent = "CRITICAL_ALERT_SENT"
)

// Response is the payload returned for a processed submission.
type Response struct {
	ResultID string `json:"result_id"`
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
}

// ErrorResponse is the single error shape returned on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
