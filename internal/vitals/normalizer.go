package vitals

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vital-alert-service/internal/models"
)

// ValidationError marks a reading that must be rejected before it is
// persisted or evaluated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reading: %s", e.Reason)
}

// legacyKinds maps legacy kind strings (lowercased) onto structured fields.
// Common synonyms from older devices are recognized.
var legacyKinds = map[string]models.VitalKind{
	"systolic":      models.KindSystolic,
	"bp_systolic":   models.KindSystolic,
	"diastolic":     models.KindDiastolic,
	"bp_diastolic":  models.KindDiastolic,
	"heartrate":     models.KindHeartRate,
	"heart_rate":    models.KindHeartRate,
	"pulse":         models.KindHeartRate,
	"temperature":   models.KindTemperature,
	"temp":          models.KindTemperature,
	"spo2":          models.KindSpO2,
	"oxygen":        models.KindSpO2,
	"bloodglucose":  models.KindBloodGlucose,
	"blood_glucose": models.KindBloodGlucose,
	"glucose":       models.KindBloodGlucose,
	"weight":        models.KindWeight,
	"height":        models.KindHeight,
}

// Normalize converts a wire-shape reading into the canonical VitalReading.
// Legacy {kind, value} pairs are folded onto exactly one structured field and
// then discarded. The timestamp is always assigned here; nothing the client
// sends can influence it.
func Normalize(in models.ReadingInput) (models.VitalReading, error) {
	if in.SubjectID == "" {
		return models.VitalReading{}, &ValidationError{Reason: "subject_id is required"}
	}

	reading := models.VitalReading{
		ID:           uuid.New().String(),
		SubjectID:    in.SubjectID,
		Systolic:     in.Systolic,
		Diastolic:    in.Diastolic,
		HeartRate:    in.HeartRate,
		Temperature:  in.Temperature,
		SpO2:         in.SpO2,
		BloodGlucose: in.BloodGlucose,
		Weight:       in.Weight,
		Height:       in.Height,
		Source:       in.Source,
		RecordedBy:   in.RecordedBy,
		Notes:        in.Notes,
		Timestamp:    time.Now(),
	}
	if reading.Source == "" {
		reading.Source = models.SourceManual
	}

	if in.Kind != "" && in.Value != nil {
		kind, ok := legacyKinds[strings.ToLower(strings.TrimSpace(in.Kind))]
		if !ok {
			return models.VitalReading{}, &ValidationError{Reason: fmt.Sprintf("unknown vital kind %q", in.Kind)}
		}
		field := reading.Field(kind)
		if *field == nil {
			v := *in.Value
			*field = &v
		}
	}

	if len(reading.Populated()) == 0 {
		return models.VitalReading{}, &ValidationError{Reason: "at least one vital sign required"}
	}
	return reading, nil
}
