package ingest

import (
	"context"
	"fmt"
	"time"

	"vital-alert-service/internal/alerts"
	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
	"vital-alert-service/internal/notify"
	"vital-alert-service/internal/vitals"
)

// notifyTimeout bounds the whole background notification leg of one ingested
// reading: directory lookups plus the slowest channel attempt.
const notifyTimeout = 30 * time.Second

// ReadingStore persists canonical readings.
type ReadingStore interface {
	InsertReading(ctx context.Context, reading models.VitalReading) error
	RecentReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error)
}

// Directory is the collaborator that knows who cares about a subject. The
// core consumes lookups only; subject and contact records live elsewhere.
type Directory interface {
	LookupSubjectRecipients(ctx context.Context, subjectID string) ([]models.NotificationRecipient, error)
	ResolveSubjectLabel(ctx context.Context, subjectID string) (string, error)
	ResolveActorLabel(ctx context.Context, actorID string) (string, error)
}

// Notifier fans a payload out to the notification channels.
type Notifier interface {
	Dispatch(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient)
}

// Ingestor wires the ingestion path: normalize, evaluate, and when findings
// exist, open an alert and kick off notifications.
type Ingestor struct {
	thresholds vitals.ThresholdConfig
	readings   ReadingStore
	alerts     *alerts.Service
	directory  Directory
	dispatcher Notifier
	logger     *logging.Logger
}

func NewIngestor(
	thresholds vitals.ThresholdConfig,
	readings ReadingStore,
	alertSvc *alerts.Service,
	directory Directory,
	dispatcher Notifier,
	logger *logging.Logger,
) *Ingestor {
	return &Ingestor{
		thresholds: thresholds,
		readings:   readings,
		alerts:     alertSvc,
		directory:  directory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// IngestReading runs one reading through the pipeline. It returns the created
// alert when the reading is abnormal, nil when it is in range, and an error
// only for validation or persistence failures. The caller gets its answer as
// soon as the alert is stored; notification delivery happens in the
// background and never fails the ingestion.
func (i *Ingestor) IngestReading(ctx context.Context, in models.ReadingInput) (*models.Alert, error) {
	reading, err := vitals.Normalize(in)
	if err != nil {
		return nil, err
	}

	if err := i.readings.InsertReading(ctx, reading); err != nil {
		return nil, fmt.Errorf("store reading: %w", err)
	}

	findings := vitals.Evaluate(reading, i.thresholds)
	if len(findings) == 0 {
		i.logger.Debugf("Reading %s for subject %s within bounds", reading.ID, reading.SubjectID)
		return nil, nil
	}

	alert, err := i.alerts.Create(ctx, models.AlertCreate{
		SubjectID: reading.SubjectID,
		Kind:      "VitalAbnormal",
		Severity:  vitals.AggregateSeverity(findings),
		Notes:     vitals.JoinLabels(findings),
	})
	if err != nil {
		return nil, err
	}

	go i.notifyAlert(alert)
	return &alert, nil
}

// notifyAlert resolves recipients, builds the payload once, and dispatches.
// It runs detached from the ingestion request; every failure here degrades to
// a log line.
func (i *Ingestor) notifyAlert(alert models.Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	label, err := i.directory.ResolveSubjectLabel(ctx, alert.SubjectID)
	if err != nil {
		i.logger.Warnf("Could not resolve label for subject %s: %v", alert.SubjectID, err)
	}

	recipients, err := i.directory.LookupSubjectRecipients(ctx, alert.SubjectID)
	if err != nil {
		i.logger.Errorf("Recipient lookup failed for subject %s, alert %s undelivered: %v", alert.SubjectID, alert.ID, err)
		return
	}

	payload := notify.BuildPayload(alert, label)
	i.dispatcher.Dispatch(ctx, payload, recipients)
}

// RecentReadings lists the latest readings for a subject.
func (i *Ingestor) RecentReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error) {
	if limit <= 0 {
		limit = 20
	}
	return i.readings.RecentReadings(ctx, subjectID, limit)
}
