package intake

import (
	"strings"

	"github.com/medalert/critical-result-intake/internal/models"
)

// thresholdRule bounds an analyte. Values strictly outside [Low, High]
// are critical; the bounds themselves are not.
type thresholdRule struct {
	Low  float64
	High float64
}

// thresholds maps lowercased test names to their critical bounds.
// Extending coverage to another analyte is one entry here.
var thresholds = map[string]thresholdRule{
	"potassium": {Low: 2.5, High: 6.0},
}

// Classify reports whether a submission represents a critical result.
// The caller's explicit assertion wins; otherwise the threshold table
// decides; tests without a rule are never critical.
func Classify(sub models.Submission) bool {
	if sub.IsCritical {
		return true
	}
	rule, ok := thresholds[strings.ToLower(sub.TestName)]
	if !ok {
		return false
	}
	return sub.Value < rule.Low || sub.Value > rule.High
}
