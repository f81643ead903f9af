package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AlertStatus is the lifecycle state of an alert.
// Transitions: Open -> Acknowledged -> Resolved; Resolved is terminal.
type AlertStatus string

const (
	StatusOpen         AlertStatus = "open"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusResolved     AlertStatus = "resolved"
)

// ParseAlertStatus converts a string label to an AlertStatus.
func ParseAlertStatus(s string) (AlertStatus, error) {
	switch AlertStatus(strings.ToLower(s)) {
	case StatusOpen, StatusAcknowledged, StatusResolved:
		return AlertStatus(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown alert status %q", s)
	}
}

// Alert is the durable record of one or more abnormal findings requiring
// human attention. Alerts are never deleted; status and assignment mutate,
// triggeredAt does not.
type Alert struct {
	ID          string      `json:"id"`
	SubjectID   string      `json:"subject_id"`
	Kind        string      `json:"kind"`
	Severity    Severity    `json:"severity"`
	Status      AlertStatus `json:"status"`
	TriggeredAt time.Time   `json:"triggered_at"`

	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// AlertCreate is the input for creating an alert directly through the API.
type AlertCreate struct {
	SubjectID  string   `json:"subject_id" binding:"required"`
	Kind       string   `json:"kind" binding:"required"`
	Severity   Severity `json:"severity" binding:"required"`
	Notes      string   `json:"notes,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
}

// AlertFilter narrows alert listings. Zero values mean "no restriction".
type AlertFilter struct {
	SubjectID string
	Status    AlertStatus
	Severity  Severity
	Limit     int
}

// AlertStatistics is the read-only reduction over the alert set.
// OpenBySeverity counts Open alerts only; a Resolved Critical alert does not
// appear there.
type AlertStatistics struct {
	Total          int                 `json:"total"`
	ByStatus       map[AlertStatus]int `json:"by_status"`
	OpenBySeverity map[string]int      `json:"open_by_severity"`
}

// MarshalJSON flattens ByStatus keys to plain strings for stable output.
func (s AlertStatistics) MarshalJSON() ([]byte, error) {
	byStatus := make(map[string]int, len(s.ByStatus))
	for k, v := range s.ByStatus {
		byStatus[string(k)] = v
	}
	return json.Marshal(struct {
		Total          int            `json:"total"`
		ByStatus       map[string]int `json:"by_status"`
		OpenBySeverity map[string]int `json:"open_by_severity"`
	}{s.Total, byStatus, s.OpenBySeverity})
}
