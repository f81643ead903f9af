package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"vital-alert-service/internal/models"
)

// MemoryStore is an in-process Store used by tests and local runs without a
// database.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts map[string]models.Alert
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{alerts: make(map[string]models.Alert)}
}

func (m *MemoryStore) Insert(_ context.Context, alert models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	alert, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return alert, nil
}

func (m *MemoryStore) Update(_ context.Context, alert models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.alerts[alert.ID]; !ok {
		return fmt.Errorf("alert %s: %w", alert.ID, ErrNotFound)
	}
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MemoryStore) List(_ context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Alert
	for _, alert := range m.alerts {
		if filter.SubjectID != "" && alert.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Status != "" && alert.Status != filter.Status {
			continue
		}
		if filter.Severity != 0 && alert.Severity != filter.Severity {
			continue
		}
		out = append(out, alert)
	}
	// Most recent first, matching the database ordering.
	sort.Slice(out, func(i, j int) bool {
		return out[i].TriggeredAt.After(out[j].TriggeredAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemoryStore) Statistics(_ context.Context, subjectID string) (models.AlertStatistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := models.AlertStatistics{
		ByStatus:       make(map[models.AlertStatus]int),
		OpenBySeverity: make(map[string]int),
	}
	for _, alert := range m.alerts {
		if subjectID != "" && alert.SubjectID != subjectID {
			continue
		}
		stats.Total++
		stats.ByStatus[alert.Status]++
		if alert.Status == models.StatusOpen {
			stats.OpenBySeverity[alert.Severity.String()]++
		}
	}
	return stats, nil
}
