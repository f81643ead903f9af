package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vital-alert-service/internal/alerts"
	"vital-alert-service/internal/models"
)

// Insert writes a new alert row.
func (d *DB) Insert(ctx context.Context, alert models.Alert) error {
	query := `
    INSERT INTO alerts (
        id, subject_id, kind, severity, status, triggered_at,
        acknowledged_at, resolved_at, assigned_to, notes
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := d.Pool.Exec(ctx, query,
		alert.ID,
		alert.SubjectID,
		alert.Kind,
		int(alert.Severity),
		string(alert.Status),
		alert.TriggeredAt,
		alert.AcknowledgedAt,
		alert.ResolvedAt,
		nullable(alert.AssignedTo),
		alert.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// Get fetches one alert by ID.
func (d *DB) Get(ctx context.Context, id string) (models.Alert, error) {
	query := `
    SELECT id, subject_id, kind, severity, status, triggered_at,
           acknowledged_at, resolved_at, assigned_to, notes
    FROM alerts WHERE id = $1`

	alert, err := scanAlert(d.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, fmt.Errorf("alert %s: %w", id, alerts.ErrNotFound)
		}
		return models.Alert{}, fmt.Errorf("failed to get alert %s: %w", id, err)
	}
	return alert, nil
}

// Update rewrites the mutable columns of an alert.
func (d *DB) Update(ctx context.Context, alert models.Alert) error {
	query := `
    UPDATE alerts
    SET severity = $2, status = $3, acknowledged_at = $4, resolved_at = $5,
        assigned_to = $6, notes = $7
    WHERE id = $1`

	result, err := d.Pool.Exec(ctx, query,
		alert.ID,
		int(alert.Severity),
		string(alert.Status),
		alert.AcknowledgedAt,
		alert.ResolvedAt,
		nullable(alert.AssignedTo),
		alert.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert %s: %w", alert.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("alert %s: %w", alert.ID, alerts.ErrNotFound)
	}
	return nil
}

// List fetches alerts matching the filter, most recent first.
func (d *DB) List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	query := `
    SELECT id, subject_id, kind, severity, status, triggered_at,
           acknowledged_at, resolved_at, assigned_to, notes
    FROM alerts WHERE 1=1`

	args := []interface{}{}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		query += fmt.Sprintf(" AND subject_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Severity != 0 {
		args = append(args, int(filter.Severity))
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	query += " ORDER BY triggered_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var list []models.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		list = append(list, alert)
	}
	return list, rows.Err()
}

// Statistics reduces the alert set to counts, optionally restricted to one
// subject. Zero rows means zero counts, not an error.
func (d *DB) Statistics(ctx context.Context, subjectID string) (models.AlertStatistics, error) {
	query := `SELECT status, severity, COUNT(*) FROM alerts`
	args := []interface{}{}
	if subjectID != "" {
		query += " WHERE subject_id = $1"
		args = append(args, subjectID)
	}
	query += " GROUP BY status, severity"

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return models.AlertStatistics{}, fmt.Errorf("failed to count alerts: %w", err)
	}
	defer rows.Close()

	stats := models.AlertStatistics{
		ByStatus:       make(map[models.AlertStatus]int),
		OpenBySeverity: make(map[string]int),
	}
	for rows.Next() {
		var status string
		var severity, count int
		if err := rows.Scan(&status, &severity, &count); err != nil {
			return models.AlertStatistics{}, fmt.Errorf("failed to scan alert counts: %w", err)
		}
		stats.Total += count
		stats.ByStatus[models.AlertStatus(status)] += count
		if models.AlertStatus(status) == models.StatusOpen {
			stats.OpenBySeverity[models.Severity(severity).String()] += count
		}
	}
	return stats, rows.Err()
}

func scanAlert(row pgx.Row) (models.Alert, error) {
	var alert models.Alert
	var severity int
	var status string
	var assignedTo *string
	err := row.Scan(
		&alert.ID,
		&alert.SubjectID,
		&alert.Kind,
		&severity,
		&status,
		&alert.TriggeredAt,
		&alert.AcknowledgedAt,
		&alert.ResolvedAt,
		&assignedTo,
		&alert.Notes,
	)
	if err != nil {
		return models.Alert{}, err
	}
	alert.Severity = models.Severity(severity)
	alert.Status = models.AlertStatus(status)
	if assignedTo != nil {
		alert.AssignedTo = *assignedTo
	}
	return alert, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
