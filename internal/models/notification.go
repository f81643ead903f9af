package models

import "time"

// NotificationRecipient is one addressable target for outbound channels.
// Every field is optional; a recipient with no reachable address silently
// receives nothing. Email is accepted but no email channel is active in the
// default configuration.
type NotificationRecipient struct {
	Phone       string `json:"phone,omitempty"`
	PushToken   string `json:"push_token,omitempty"`
	MessagingID string `json:"messaging_id,omitempty"`
	Email       string `json:"email,omitempty"`
}

// AlertMessagePayload is the channel-agnostic rendered content for one alert,
// built once and reused across all channels and recipients.
type AlertMessagePayload struct {
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Severity     Severity          `json:"severity"`
	SubjectID    string            `json:"subject_id"`
	SubjectLabel string            `json:"subject_label,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}
