package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vital-alert-service/internal/alerts"
	"vital-alert-service/internal/ingest"
	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
	"vital-alert-service/internal/vitals"
	"vital-alert-service/internal/ws"
)

type Handler struct {
	ingestor  *ingest.Ingestor
	alerts    *alerts.Service
	directory ingest.Directory
	logger    *logging.Logger
	hub       *ws.Hub
}

func NewHandler(ingestor *ingest.Ingestor, alertSvc *alerts.Service, directory ingest.Directory, logger *logging.Logger) *Handler {
	return &Handler{ingestor: ingestor, alerts: alertSvc, directory: directory, logger: logger}
}

// CreateReading ingests one reading. The response carries the created alert
// when the reading was abnormal; notification delivery is not waited on.
func (h *Handler) CreateReading(c *gin.Context) {
	var input models.ReadingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Errorf("Invalid reading request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	alert, err := h.ingestor.IngestReading(c.Request.Context(), input)
	if err != nil {
		var verr *vitals.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.logger.Errorf("Ingest reading failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest reading"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

func (h *Handler) GetRecentReadings(c *gin.Context) {
	subjectID := c.Param("subject_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	readings, err := h.ingestor.RecentReadings(c.Request.Context(), subjectID, limit)
	if err != nil {
		h.logger.Errorf("Failed to list readings for subject %s: %v", subjectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list readings"})
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (h *Handler) CreateAlert(c *gin.Context) {
	var input models.AlertCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Errorf("Invalid alert request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Errorf("Failed to create alert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (h *Handler) GetAlert(c *gin.Context) {
	id := c.Param("id")
	alert, err := h.alerts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondAlertError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) ListAlerts(c *gin.Context) {
	filter := models.AlertFilter{SubjectID: c.Query("subject_id")}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseAlertStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Status = status
	}
	if raw := c.Query("severity"); raw != "" {
		severity, err := models.ParseSeverity(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Severity = severity
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	list, err := h.alerts.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("Failed to list alerts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.alerts.Statistics(c.Request.Context(), c.Query("subject_id"))
	if err != nil {
		h.logger.Errorf("Failed to get alert statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type actorRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

func (h *Handler) AcknowledgeAlert(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor_id is required"})
		return
	}

	id := c.Param("id")
	alert, err := h.alerts.Acknowledge(c.Request.Context(), id, req.ActorID)
	if err != nil {
		h.respondAlertError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, h.withActorLabel(c, alert))
}

func (h *Handler) ResolveAlert(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	// An empty body is fine; resolve notes are optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	alert, err := h.alerts.Resolve(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.respondAlertError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) AssignAlert(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor_id is required"})
		return
	}

	id := c.Param("id")
	alert, err := h.alerts.Assign(c.Request.Context(), id, req.ActorID)
	if err != nil {
		h.respondAlertError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, h.withActorLabel(c, alert))
}

func (h *Handler) respondAlertError(c *gin.Context, id string, err error) {
	if errors.Is(err, alerts.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	h.logger.Errorf("Alert operation on %s failed: %v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Alert operation failed"})
}

// withActorLabel decorates lifecycle responses with the assignee's display
// name when the directory knows it.
func (h *Handler) withActorLabel(c *gin.Context, alert models.Alert) gin.H {
	out := gin.H{"alert": alert}
	if alert.AssignedTo == "" {
		return out
	}
	label, err := h.directory.ResolveActorLabel(c.Request.Context(), alert.AssignedTo)
	if err != nil {
		h.logger.Warnf("Could not resolve actor %s: %v", alert.AssignedTo, err)
		return out
	}
	if label != "" {
		out["assigned_to_label"] = label
	}
	return out
}
