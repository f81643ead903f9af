package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vital-alert-service/internal/config"
	"vital-alert-service/internal/logging"
)

func NewRouter(logger *logging.Logger, cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	api := r.Group(cfg.API.BasePath)
	{
		// Readings
		api.POST("/readings", h.CreateReading)
		api.GET("/readings/subject/:subject_id", h.GetRecentReadings)

		// Alerts
		api.POST("/alerts", h.CreateAlert)
		api.GET("/alerts", h.ListAlerts)
		api.GET("/alerts/stats", h.GetStatistics)
		api.GET("/alerts/:id", h.GetAlert)
		api.POST("/alerts/:id/acknowledge", h.AcknowledgeAlert)
		api.POST("/alerts/:id/resolve", h.ResolveAlert)
		api.POST("/alerts/:id/assign", h.AssignAlert)

		// Live alert feed
		api.GET("/ws/subjects/:subject_id", h.WatchSubject)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
