package models

import "time"

// VitalKind identifies one measurable vital sign.
type VitalKind string

const (
	KindSystolic     VitalKind = "systolic"
	KindDiastolic    VitalKind = "diastolic"
	KindHeartRate    VitalKind = "heartRate"
	KindTemperature  VitalKind = "temperature"
	KindSpO2         VitalKind = "spo2"
	KindBloodGlucose VitalKind = "bloodGlucose"
	KindWeight       VitalKind = "weight"
	KindHeight       VitalKind = "height"
)

// AllVitalKinds lists every kind in evaluation order.
var AllVitalKinds = []VitalKind{
	KindSystolic, KindDiastolic, KindHeartRate, KindTemperature,
	KindSpO2, KindBloodGlucose, KindWeight, KindHeight,
}

// ReadingSource tells how a reading entered the system.
type ReadingSource string

const (
	SourceManual ReadingSource = "manual"
	SourceIoT    ReadingSource = "iot"
)

// ReadingInput is the wire shape of an incoming reading. It accepts both the
// legacy {kind, value, unit} triple and the structured named fields; the
// normalizer folds the legacy fields into the structured ones.
type ReadingInput struct {
	SubjectID string `json:"subject_id" binding:"required"`

	// Legacy shape
	Kind  string   `json:"kind,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`

	// Structured shape
	Systolic     *float64 `json:"systolic,omitempty"`
	Diastolic    *float64 `json:"diastolic,omitempty"`
	HeartRate    *float64 `json:"heart_rate,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	SpO2         *float64 `json:"spo2,omitempty"`
	BloodGlucose *float64 `json:"blood_glucose,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Height       *float64 `json:"height,omitempty"`

	Source     ReadingSource `json:"source,omitempty"`
	RecordedBy string        `json:"recorded_by,omitempty"`
	Notes      string        `json:"notes,omitempty"`
}

// VitalReading is the canonical, validated measurement event. Timestamp is
// always server-assigned at ingestion.
type VitalReading struct {
	ID        string `json:"id"`
	SubjectID string `json:"subject_id"`

	Systolic     *float64 `json:"systolic,omitempty"`
	Diastolic    *float64 `json:"diastolic,omitempty"`
	HeartRate    *float64 `json:"heart_rate,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	SpO2         *float64 `json:"spo2,omitempty"`
	BloodGlucose *float64 `json:"blood_glucose,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Height       *float64 `json:"height,omitempty"`

	Source     ReadingSource `json:"source"`
	RecordedBy string        `json:"recorded_by,omitempty"`
	Notes      string        `json:"notes,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Field returns a pointer to the named vital field, or nil for an unknown kind.
func (r *VitalReading) Field(kind VitalKind) **float64 {
	switch kind {
	case KindSystolic:
		return &r.Systolic
	case KindDiastolic:
		return &r.Diastolic
	case KindHeartRate:
		return &r.HeartRate
	case KindTemperature:
		return &r.Temperature
	case KindSpO2:
		return &r.SpO2
	case KindBloodGlucose:
		return &r.BloodGlucose
	case KindWeight:
		return &r.Weight
	case KindHeight:
		return &r.Height
	default:
		return nil
	}
}

// VitalValue is one populated field on a canonical reading.
type VitalValue struct {
	Kind  VitalKind
	Value float64
}

// Populated returns every vital field carrying a value, in evaluation order.
func (r *VitalReading) Populated() []VitalValue {
	var out []VitalValue
	for _, kind := range AllVitalKinds {
		if f := r.Field(kind); f != nil && *f != nil {
			out = append(out, VitalValue{Kind: kind, Value: **f})
		}
	}
	return out
}

// BoundSide says which side of a threshold a value crossed.
type BoundSide string

const (
	BoundLow  BoundSide = "low"
	BoundHigh BoundSide = "high"
)

// AbnormalFinding is one out-of-bound observation within a reading. Findings
// are ephemeral: produced by the evaluator, consumed by the aggregator, never
// persisted on their own.
type AbnormalFinding struct {
	Kind          VitalKind `json:"kind"`
	ObservedValue float64   `json:"observed_value"`
	BoundCrossed  BoundSide `json:"bound_crossed"`
	Severity      Severity  `json:"severity"`
	Label         string    `json:"label"`
}
