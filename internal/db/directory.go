package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vital-alert-service/internal/models"
)

// LookupSubjectRecipients returns the notification targets for a subject:
// every staff member currently on call plus every family contact linked to
// the subject. Records with no reachable address still come back; channels
// skip them on their own.
func (d *DB) LookupSubjectRecipients(ctx context.Context, subjectID string) ([]models.NotificationRecipient, error) {
	query := `
    SELECT phone, push_token, messaging_id, email
    FROM staff
    WHERE on_call = TRUE
    UNION ALL
    SELECT fc.phone, fc.push_token, fc.messaging_id, fc.email
    FROM family_contacts fc
    WHERE fc.subject_id = $1`

	rows, err := d.Pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipients for subject %s: %w", subjectID, err)
	}
	defer rows.Close()

	var recipients []models.NotificationRecipient
	for rows.Next() {
		var phone, pushToken, messagingID, email *string
		if err := rows.Scan(&phone, &pushToken, &messagingID, &email); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, models.NotificationRecipient{
			Phone:       deref(phone),
			PushToken:   deref(pushToken),
			MessagingID: deref(messagingID),
			Email:       deref(email),
		})
	}
	return recipients, rows.Err()
}

// ResolveSubjectLabel returns the display name for a subject, or "" when the
// subject is unknown. Labels are display-only; a miss is not an error.
func (d *DB) ResolveSubjectLabel(ctx context.Context, subjectID string) (string, error) {
	var name string
	err := d.Pool.QueryRow(ctx, `SELECT full_name FROM subjects WHERE id = $1`, subjectID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve subject %s: %w", subjectID, err)
	}
	return name, nil
}

// ResolveActorLabel returns the display name for a staff actor, or "" when
// unknown.
func (d *DB) ResolveActorLabel(ctx context.Context, actorID string) (string, error) {
	var name string
	err := d.Pool.QueryRow(ctx, `SELECT full_name FROM staff WHERE id = $1`, actorID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	return name, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
