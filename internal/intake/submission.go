// Package intake parses lab-result submissions, classifies critical
// values, and dispatches alert persistence plus the downstream
// notification workflow.
package intake

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/medalert/critical-result-intake/internal/models"
)

const (
	// UnknownTest is the test name assumed when the caller omits one.
	UnknownTest = "unknown"
	// NoPatientID is the placeholder used in synthesized result ids.
	NoPatientID = "NO-ID"

	// resultIDStampLayout is minute-precision UTC, YYYYMMDDHHMM.
	resultIDStampLayout = "200601021504"
)

// rawSubmission is the loose intermediate a payload decodes into before
// validation. Numeric fields stay untyped so numeric strings coerce the
// same way across shapes.
type rawSubmission struct {
	Value       any     `json:"value"`
	TestName    *string `json:"test_name"`
	ResultID    string  `json:"result_id"`
	IsCritical  bool    `json:"is_critical"`
	PatientID   any     `json:"patient_id"`
	PatientName string  `json:"patient_name"`
	Criticality *struct {
		Level string `json:"level"`
	} `json:"criticality"`
}

// ParseEvent turns a raw invocation payload into a typed Submission.
// The payload is either the submission object itself, or a gateway
// envelope whose "body" field holds the submission as JSON text. now is
// used for result id synthesis when the caller supplies none.
//
// All failures are KindInvalidPayload; fields required only on the
// critical path are checked later, when the alert record is built.
func ParseEvent(raw []byte, now time.Time) (models.Submission, error) {
	inner, err := unwrapBody(raw)
	if err != nil {
		return models.Submission{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(inner))
	dec.UseNumber()
	var rs rawSubmission
	if err := dec.Decode(&rs); err != nil {
		return models.Submission{}, invalidPayload("decode submission: %v", err)
	}

	value, err := coerceValue(rs.Value)
	if err != nil {
		return models.Submission{}, err
	}
	patientID, err := coerceID(rs.PatientID)
	if err != nil {
		return models.Submission{}, err
	}

	testName := UnknownTest
	if rs.TestName != nil && *rs.TestName != "" {
		testName = *rs.TestName
	}

	resultID := rs.ResultID
	if resultID == "" {
		resultID = SynthesizeResultID(patientID, now)
	}

	sub := models.Submission{
		ResultID:    resultID,
		TestName:    testName,
		Value:       value,
		IsCritical:  rs.IsCritical,
		PatientID:   patientID,
		PatientName: rs.PatientName,
		Raw:         inner,
	}
	if rs.Criticality != nil {
		sub.CriticalityLevel = rs.Criticality.Level
	}
	return sub, nil
}

// SynthesizeResultID builds the fallback result id from a patient id and
// a minute-precision UTC stamp. Two submissions for the same patient in
// the same minute collide; the store's last write wins.
func SynthesizeResultID(patientID string, now time.Time) string {
	if patientID == "" {
		patientID = NoPatientID
	}
	return patientID + "-" + now.UTC().Format(resultIDStampLayout)
}

// unwrapBody returns the submission JSON document, unwrapping a gateway
// envelope when the payload carries a "body" field.
func unwrapBody(raw []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, invalidPayload("decode event: %v", err)
	}
	body, ok := fields["body"]
	if !ok {
		return raw, nil
	}
	var text string
	if err := json.Unmarshal(body, &text); err != nil {
		return nil, invalidPayload("decode event body: %v", err)
	}
	return []byte(text), nil
}

// coerceValue accepts a JSON number or a numeric string; absent means 0.
func coerceValue(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, invalidPayload("value %q is not numeric", n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, invalidPayload("value %q is not numeric", n)
		}
		return f, nil
	default:
		return 0, invalidPayload("value has unsupported type %T", v)
	}
}

// coerceID accepts a string or JSON number patient id; absent means "".
func coerceID(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	default:
		return "", invalidPayload("patient_id has unsupported type %T", v)
	}
}
