package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
)

// maxConnsPerSubject caps how many live watchers one subject can have.
const maxConnsPerSubject = 10

// Hub manages WebSocket connections watching subjects. Clients subscribe per
// subject and receive every alert payload dispatched for that subject.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]map[*websocket.Conn]bool // subjectID -> set of connections
	logger *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Add registers a connection watching a subject.
func (h *Hub) Add(subjectID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[subjectID]; !ok {
		h.conns[subjectID] = make(map[*websocket.Conn]bool)
	}
	if len(h.conns[subjectID]) >= maxConnsPerSubject {
		h.logger.Warnf("Max watcher connections reached for subject %s", subjectID)
		return
	}
	h.conns[subjectID][conn] = true
	h.logger.Infof("Added watcher for subject %s (total: %d)", subjectID, len(h.conns[subjectID]))
}

// Remove drops a connection.
func (h *Hub) Remove(subjectID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.conns[subjectID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.conns, subjectID)
		}
		h.logger.Infof("Removed watcher for subject %s (remaining: %d)", subjectID, len(conns))
	}
}

// BroadcastAlert pushes the payload to every watcher of its subject. Write
// failures drop the broken connection.
func (h *Hub) BroadcastAlert(payload models.AlertMessagePayload) {
	message, err := json.Marshal(payload)
	if err != nil {
		h.logger.Errorf("Failed to encode alert payload for broadcast: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.conns[payload.SubjectID]
	if !ok {
		return
	}
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Errorf("Failed to push alert to watcher of subject %s: %v", payload.SubjectID, err)
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.conns, payload.SubjectID)
	}
}
