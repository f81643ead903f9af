package vitals

import "vital-alert-service/internal/models"

// Bound is one side of a threshold and the severity assigned when a value
// crosses it.
type Bound struct {
	Value    float64
	Severity models.Severity
}

// KindThresholds holds the optional low/high bounds for one vital kind. A nil
// side is never checked.
type KindThresholds struct {
	Low  *Bound
	High *Bound
}

// ThresholdConfig maps vital kinds to their bounds. It is built once at
// startup and treated as immutable for the process lifetime.
type ThresholdConfig map[models.VitalKind]KindThresholds

func bound(value float64, severity models.Severity) *Bound {
	return &Bound{Value: value, Severity: severity}
}

// DefaultThresholds returns the clinical defaults. The glucose asymmetry
// (low crossing is High, high crossing is Medium) and the SpO2 low-only bound
// are intentional: the low side is the dangerous one for both.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		models.KindSystolic: {
			Low:  bound(90, models.SeverityMedium),
			High: bound(180, models.SeverityHigh),
		},
		models.KindDiastolic: {
			Low:  bound(60, models.SeverityMedium),
			High: bound(120, models.SeverityHigh),
		},
		models.KindHeartRate: {
			Low:  bound(60, models.SeverityMedium),
			High: bound(100, models.SeverityMedium),
		},
		models.KindTemperature: {
			Low:  bound(36, models.SeverityMedium),
			High: bound(38, models.SeverityMedium),
		},
		models.KindSpO2: {
			Low: bound(90, models.SeverityHigh),
		},
		models.KindBloodGlucose: {
			Low:  bound(70, models.SeverityHigh),
			High: bound(200, models.SeverityMedium),
		},
	}
}
