// Package models defines the data models used in the application.
package models

// AlertStatus represents the workflow status of a stored alert record.
type AlertStatus string

// Possible values for AlertStatus. This component only ever writes
// PENDING; acknowledgment and resolution belong to the downstream
// workflow.
const (
	StatusPending      AlertStatus = "PENDING"
	StatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	StatusResolved     AlertStatus = "RESOLVED"
)

// Submission is one parsed lab-result submission. It is only constructed
// by intake.ParseEvent, so downstream code can rely on the defaults and
// coercions having been applied.
type Submission struct {
	ResultID         string
	TestName         string
	Value            float64
	IsCritical       bool // caller-asserted override
	PatientID        string
	PatientName      string
	CriticalityLevel string

	// Raw is the original submission JSON, forwarded verbatim to the
	// notification workflow when the result is critical.
	Raw []byte
}

// AlertRecord is the row persisted for a critical result, keyed by
// result_id. Later mutation is owned by the external workflow.
type AlertRecord struct {
	ResultID       string      `dynamodbav:"result_id"`
	Status         AlertStatus `dynamodbav:"status"`
	Acknowledged   bool        `dynamodbav:"acknowledged"`
	Timestamp      string      `dynamodbav:"timestamp"` // ISO8601, creation time
	DetailsSummary string      `dynamodbav:"details_summary"`
}
