package alerts

import (
	"context"
	"errors"

	"vital-alert-service/internal/models"
)

// ErrNotFound is returned by stores and the Service when an alert ID does not
// exist. Callers distinguish it with errors.Is.
var ErrNotFound = errors.New("alert not found")

// Store is the persistence boundary for alerts. The Service owns lifecycle
// semantics; a Store only reads and writes records. Concurrent updates to the
// same alert follow the store's own write ordering (last write wins).
type Store interface {
	Insert(ctx context.Context, alert models.Alert) error
	Get(ctx context.Context, id string) (models.Alert, error)
	Update(ctx context.Context, alert models.Alert) error
	List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error)
	Statistics(ctx context.Context, subjectID string) (models.AlertStatistics, error)
}
