package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
)

// Service owns the alert state machine. All mutations go through it; stores
// never change status or timestamps on their own.
type Service struct {
	store  Store
	logger *logging.Logger
}

func NewService(store Store, logger *logging.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create opens a new alert. There is no uniqueness constraint: distinct
// readings for the same subject produce distinct alerts.
func (s *Service) Create(ctx context.Context, in models.AlertCreate) (models.Alert, error) {
	alert := models.Alert{
		ID:          uuid.New().String(),
		SubjectID:   in.SubjectID,
		Kind:        in.Kind,
		Severity:    in.Severity,
		Status:      models.StatusOpen,
		TriggeredAt: time.Now(),
		AssignedTo:  in.AssignedTo,
		Notes:       in.Notes,
	}
	if err := s.store.Insert(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	s.logger.Infof("Created alert %s for subject %s (severity=%s)", alert.ID, alert.SubjectID, alert.Severity)
	return alert, nil
}

// Acknowledge marks an alert as seen by an actor. It is idempotent-safe: a
// second call succeeds, keeps the original acknowledgedAt, and only moves
// assignedTo to the latest caller. A Resolved alert stays Resolved.
func (s *Service) Acknowledge(ctx context.Context, id, actorID string) (models.Alert, error) {
	alert, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	if alert.AcknowledgedAt == nil {
		now := time.Now()
		alert.AcknowledgedAt = &now
	}
	if alert.Status == models.StatusOpen {
		alert.Status = models.StatusAcknowledged
	}
	alert.AssignedTo = actorID
	if err := s.store.Update(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("acknowledge alert %s: %w", id, err)
	}
	s.logger.Infof("Alert %s acknowledged by %s", id, actorID)
	return alert, nil
}

// Resolve closes an alert from Open or Acknowledged. A never-acknowledged
// alert gets its acknowledgedAt backfilled: an alert cannot end up Resolved
// without an acknowledgement timestamp. Non-empty notes replace the previous
// notes.
func (s *Service) Resolve(ctx context.Context, id, notes string) (models.Alert, error) {
	alert, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	now := time.Now()
	if alert.AcknowledgedAt == nil {
		alert.AcknowledgedAt = &now
	}
	if alert.ResolvedAt == nil {
		alert.ResolvedAt = &now
	}
	alert.Status = models.StatusResolved
	if notes != "" {
		alert.Notes = notes
	}
	if err := s.store.Update(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("resolve alert %s: %w", id, err)
	}
	s.logger.Infof("Alert %s resolved", id)
	return alert, nil
}

// Assign sets the responsible actor without touching status or timestamps.
// Re-assignment of a Resolved alert is allowed for follow-up.
func (s *Service) Assign(ctx context.Context, id, actorID string) (models.Alert, error) {
	alert, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	alert.AssignedTo = actorID
	if err := s.store.Update(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("assign alert %s: %w", id, err)
	}
	s.logger.Infof("Alert %s assigned to %s", id, actorID)
	return alert, nil
}

// Get returns one alert by ID.
func (s *Service) Get(ctx context.Context, id string) (models.Alert, error) {
	return s.store.Get(ctx, id)
}

// List returns alerts matching the filter, most recent first.
func (s *Service) List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	return s.store.List(ctx, filter)
}

// Statistics reduces the alert set to counts. An empty result is zero counts,
// not an error.
func (s *Service) Statistics(ctx context.Context, subjectID string) (models.AlertStatistics, error) {
	return s.store.Statistics(ctx, subjectID)
}
