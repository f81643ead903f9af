package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"vital-alert-service/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetHub attaches the live alert feed. Without a hub the watch endpoint
// answers 503.
func (h *Handler) SetHub(hub *ws.Hub) {
	h.hub = hub
}

// WatchSubject upgrades the connection and streams alert payloads for one
// subject until the client disconnects.
func (h *Handler) WatchSubject(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed not available"})
		return
	}

	subjectID := c.Param("subject_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed for subject %s: %v", subjectID, err)
		return
	}

	h.hub.Add(subjectID, conn)
	defer func() {
		h.hub.Remove(subjectID, conn)
		_ = conn.Close()
	}()

	// Drain control frames; the feed is one-directional.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
