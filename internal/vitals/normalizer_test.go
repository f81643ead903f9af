package vitals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vital-alert-service/internal/models"
)

func f(v float64) *float64 { return &v }

func TestNormalizeStructuredReading(t *testing.T) {
	reading, err := Normalize(models.ReadingInput{
		SubjectID: "subj-1",
		Systolic:  f(120),
		Diastolic: f(80),
	})
	require.NoError(t, err)

	assert.Equal(t, "subj-1", reading.SubjectID)
	require.NotNil(t, reading.Systolic)
	assert.Equal(t, 120.0, *reading.Systolic)
	require.NotNil(t, reading.Diastolic)
	assert.Equal(t, 80.0, *reading.Diastolic)
	assert.Equal(t, models.SourceManual, reading.Source)
	assert.NotEmpty(t, reading.ID)
}

func TestNormalizeLegacyShape(t *testing.T) {
	cases := []struct {
		kind string
		want models.VitalKind
	}{
		{"PULSE", models.KindHeartRate},
		{"heart_rate", models.KindHeartRate},
		{"Temp", models.KindTemperature},
		{"OXYGEN", models.KindSpO2},
		{"glucose", models.KindBloodGlucose},
		{"systolic", models.KindSystolic},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			reading, err := Normalize(models.ReadingInput{
				SubjectID: "subj-1",
				Kind:      tc.kind,
				Value:     f(72),
				Unit:      "whatever",
			})
			require.NoError(t, err)

			populated := reading.Populated()
			require.Len(t, populated, 1)
			assert.Equal(t, tc.want, populated[0].Kind)
			assert.Equal(t, 72.0, populated[0].Value)
		})
	}
}

func TestNormalizeLegacyDoesNotClobberStructured(t *testing.T) {
	reading, err := Normalize(models.ReadingInput{
		SubjectID: "subj-1",
		Kind:      "pulse",
		Value:     f(110),
		HeartRate: f(95),
	})
	require.NoError(t, err)
	require.NotNil(t, reading.HeartRate)
	assert.Equal(t, 95.0, *reading.HeartRate)
}

func TestNormalizeUnknownLegacyKind(t *testing.T) {
	_, err := Normalize(models.ReadingInput{
		SubjectID: "subj-1",
		Kind:      "midichlorians",
		Value:     f(9000),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNormalizeRejectsEmptyReading(t *testing.T) {
	_, err := Normalize(models.ReadingInput{SubjectID: "subj-1", Notes: "feels fine"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "at least one vital sign required")
}

func TestNormalizeRejectsMissingSubject(t *testing.T) {
	_, err := Normalize(models.ReadingInput{HeartRate: f(70)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNormalizeAssignsServerTimestamp(t *testing.T) {
	before := time.Now()
	reading, err := Normalize(models.ReadingInput{SubjectID: "subj-1", HeartRate: f(70)})
	require.NoError(t, err)

	assert.False(t, reading.Timestamp.Before(before))
	assert.False(t, reading.Timestamp.After(time.Now()))
}
