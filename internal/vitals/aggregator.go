package vitals

import (
	"strings"

	"vital-alert-service/internal/models"
)

// AggregateSeverity reduces a non-empty finding list to a single alert
// severity by taking the maximum over the Low < Medium < High < Critical
// order. The result does not depend on finding order.
func AggregateSeverity(findings []models.AbnormalFinding) models.Severity {
	severity := models.SeverityLow
	for _, f := range findings {
		severity = models.MaxSeverity(severity, f.Severity)
	}
	return severity
}

// JoinLabels concatenates finding labels into the alert notes text.
func JoinLabels(findings []models.AbnormalFinding) string {
	labels := make([]string, 0, len(findings))
	for _, f := range findings {
		labels = append(labels, f.Label)
	}
	return strings.Join(labels, ", ")
}
