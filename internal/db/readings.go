package db

import (
	"context"
	"fmt"

	"vital-alert-service/internal/models"
)

// InsertReading writes a canonical reading row.
func (d *DB) InsertReading(ctx context.Context, r models.VitalReading) error {
	query := `
    INSERT INTO vital_readings (
        id, subject_id, systolic, diastolic, heart_rate, temperature,
        spo2, blood_glucose, weight, height, source, recorded_by, notes, recorded_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := d.Pool.Exec(ctx, query,
		r.ID,
		r.SubjectID,
		r.Systolic,
		r.Diastolic,
		r.HeartRate,
		r.Temperature,
		r.SpO2,
		r.BloodGlucose,
		r.Weight,
		r.Height,
		string(r.Source),
		nullable(r.RecordedBy),
		r.Notes,
		r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// RecentReadings fetches the latest readings for a subject.
func (d *DB) RecentReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error) {
	query := `
    SELECT id, subject_id, systolic, diastolic, heart_rate, temperature,
           spo2, blood_glucose, weight, height, source, recorded_by, notes, recorded_at
    FROM vital_readings
    WHERE subject_id = $1
    ORDER BY recorded_at DESC
    LIMIT $2`

	rows, err := d.Pool.Query(ctx, query, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	var list []models.VitalReading
	for rows.Next() {
		var r models.VitalReading
		var source string
		var recordedBy *string
		err := rows.Scan(
			&r.ID,
			&r.SubjectID,
			&r.Systolic,
			&r.Diastolic,
			&r.HeartRate,
			&r.Temperature,
			&r.SpO2,
			&r.BloodGlucose,
			&r.Weight,
			&r.Height,
			&source,
			&recordedBy,
			&r.Notes,
			&r.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		r.Source = models.ReadingSource(source)
		if recordedBy != nil {
			r.RecordedBy = *recordedBy
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
