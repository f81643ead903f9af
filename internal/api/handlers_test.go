package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vital-alert-service/internal/alerts"
	"vital-alert-service/internal/config"
	"vital-alert-service/internal/ingest"
	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
	"vital-alert-service/internal/notify"
	"vital-alert-service/internal/vitals"
)

type stubReadings struct{}

func (stubReadings) InsertReading(context.Context, models.VitalReading) error { return nil }
func (stubReadings) RecentReadings(context.Context, string, int) ([]models.VitalReading, error) {
	return nil, nil
}

type stubDirectory struct{}

func (stubDirectory) LookupSubjectRecipients(context.Context, string) ([]models.NotificationRecipient, error) {
	return nil, nil
}
func (stubDirectory) ResolveSubjectLabel(context.Context, string) (string, error) {
	return "Nguyễn Văn An", nil
}
func (stubDirectory) ResolveActorLabel(context.Context, string) (string, error) {
	return "Y tá Trần Thị Bình", nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *alerts.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewNop()
	alertSvc := alerts.NewService(alerts.NewMemoryStore(), logger)
	dispatcher := notify.NewDispatcher(logger) // no channels wired in tests
	ingestor := ingest.NewIngestor(vitals.DefaultThresholds(), stubReadings{}, alertSvc, stubDirectory{}, dispatcher, logger)

	var cfg config.Config
	cfg.API.BasePath = "/api/v1"

	h := NewHandler(ingestor, alertSvc, stubDirectory{}, logger)
	return NewRouter(logger, cfg, h), alertSvc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReadingValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/readings", gin.H{"subject_id": "subj-1", "notes": "no vitals"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one vital sign required")
}

func TestCreateReadingNormal(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/readings", gin.H{"subject_id": "subj-1", "systolic": 120})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Alert *models.Alert `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Alert)
}

func TestCreateReadingAbnormal(t *testing.T) {
	r, alertSvc := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/readings", gin.H{"subject_id": "subj-1", "systolic": 190})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Alert *models.Alert `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Alert)
	assert.Equal(t, models.SeverityHigh, resp.Alert.Severity)

	stored, err := alertSvc.Get(context.Background(), resp.Alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, stored.Status)
}

func TestAlertLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/alerts", gin.H{
		"subject_id": "subj-1",
		"kind":       "VitalAbnormal",
		"severity":   "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/alerts/%s/acknowledge", created.ID), gin.H{"actor_id": "nurse-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Y tá Trần Thị Bình")

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/alerts/%s/resolve", created.ID), gin.H{"notes": "stabilized"})
	require.Equal(t, http.StatusOK, w.Code)
	var resolved models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.Equal(t, models.StatusResolved, resolved.Status)
	assert.NotNil(t, resolved.AcknowledgedAt)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/alerts/does-not-exist/acknowledge", gin.H{"actor_id": "nurse-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAlertsRejectsBadSeverity(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/alerts?severity=apocalyptic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatistics(t *testing.T) {
	r, alertSvc := newTestRouter(t)

	_, err := alertSvc.Create(context.Background(), models.AlertCreate{
		SubjectID: "subj-1", Kind: "VitalAbnormal", Severity: models.SeverityHigh,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/v1/alerts/stats?subject_id=subj-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total          int            `json:"total"`
		ByStatus       map[string]int `json:"by_status"`
		OpenBySeverity map[string]int `json:"open_by_severity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["open"])
	assert.Equal(t, 1, stats.OpenBySeverity["high"])
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
