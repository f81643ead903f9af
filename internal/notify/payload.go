package notify

import (
	"fmt"
	"strings"

	"vital-alert-service/internal/models"
)

// smsTimeLayout renders timestamps the way caregivers read them locally.
const smsTimeLayout = "15:04 02/01/2006"

// BuildPayload renders the channel-agnostic message content for one alert.
// It is built once per alert and reused across every channel and recipient.
func BuildPayload(alert models.Alert, subjectLabel string) models.AlertMessagePayload {
	return models.AlertMessagePayload{
		Title:        fmt.Sprintf("Cảnh báo chỉ số sinh tồn (%s)", strings.ToUpper(alert.Severity.String())),
		Body:         alert.Notes,
		Severity:     alert.Severity,
		SubjectID:    alert.SubjectID,
		SubjectLabel: subjectLabel,
		Timestamp:    alert.TriggeredAt,
		Metadata: map[string]string{
			"alert_id":   alert.ID,
			"alert_kind": alert.Kind,
		},
	}
}

// RenderSMS flattens a payload into the single text message shared by every
// SMS recipient of one dispatch.
func RenderSMS(p models.AlertMessagePayload) string {
	label := p.SubjectLabel
	if label == "" {
		label = p.SubjectID
	}
	return fmt.Sprintf("[%s] %s - %s: %s (%s)",
		strings.ToUpper(p.Severity.String()),
		label,
		p.Title,
		p.Body,
		p.Timestamp.Format(smsTimeLayout),
	)
}
