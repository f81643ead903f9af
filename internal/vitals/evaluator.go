package vitals

import (
	"fmt"
	"strconv"

	"vital-alert-service/internal/models"
)

// kindDisplay carries the human label and unit string used when rendering a
// finding for caregivers.
type kindDisplay struct {
	Label string
	Unit  string
}

var displayNames = map[models.VitalKind]kindDisplay{
	models.KindSystolic:     {Label: "Huyết áp tâm thu", Unit: "mmHg"},
	models.KindDiastolic:    {Label: "Huyết áp tâm trương", Unit: "mmHg"},
	models.KindHeartRate:    {Label: "Nhịp tim", Unit: "bpm"},
	models.KindTemperature:  {Label: "Nhiệt độ", Unit: "°C"},
	models.KindSpO2:         {Label: "SpO2", Unit: "%"},
	models.KindBloodGlucose: {Label: "Đường huyết", Unit: "mg/dL"},
	models.KindWeight:       {Label: "Cân nặng", Unit: "kg"},
	models.KindHeight:       {Label: "Chiều cao", Unit: "cm"},
}

// FindingLabel renders the human-readable description of one observation,
// e.g. "Huyết áp tâm thu: 190 mmHg".
func FindingLabel(kind models.VitalKind, value float64) string {
	d, ok := displayNames[kind]
	if !ok {
		return fmt.Sprintf("%s: %s", kind, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return fmt.Sprintf("%s: %s %s", d.Label, strconv.FormatFloat(value, 'f', -1, 64), d.Unit)
}

// Evaluate compares every populated field of the reading against the
// threshold config and returns one finding per crossed bound. It is pure:
// same reading and config always yield the same findings, and an in-range
// reading yields none.
func Evaluate(reading models.VitalReading, cfg ThresholdConfig) []models.AbnormalFinding {
	var findings []models.AbnormalFinding
	for _, v := range reading.Populated() {
		bounds, ok := cfg[v.Kind]
		if !ok {
			continue
		}
		if bounds.High != nil && v.Value > bounds.High.Value {
			findings = append(findings, models.AbnormalFinding{
				Kind:          v.Kind,
				ObservedValue: v.Value,
				BoundCrossed:  models.BoundHigh,
				Severity:      bounds.High.Severity,
				Label:         FindingLabel(v.Kind, v.Value),
			})
		}
		if bounds.Low != nil && v.Value < bounds.Low.Value {
			findings = append(findings, models.AbnormalFinding{
				Kind:          v.Kind,
				ObservedValue: v.Value,
				BoundCrossed:  models.BoundLow,
				Severity:      bounds.Low.Severity,
				Label:         FindingLabel(v.Kind, v.Value),
			})
		}
	}
	return findings
}
