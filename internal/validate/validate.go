// Package validate provides field rules for alert record construction.
// These fields are required only once a submission classifies as critical.
package validate

import (
	"errors"
	"strings"
)

// PatientName checks the patient name interpolated into the alert summary.
func PatientName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("patient_name required for critical result")
	}
	return nil
}

// CriticalityLevel checks the criticality level interpolated into the alert summary.
func CriticalityLevel(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("criticality.level required for critical result")
	}
	return nil
}
