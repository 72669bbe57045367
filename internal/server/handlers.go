package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/jeongseonghan/lte-chest-dl/internal/telemetry"
)

// Handlers serves the current channel-quality telemetry over HTTP and
// streams every new snapshot to connected WebSocket clients.
type Handlers struct {
	wsHub   *WSHub
	mu      sync.RWMutex
	latest  telemetry.Snapshot
	haveOne bool
}

// NewHandlers creates new API handlers.
func NewHandlers() *Handlers {
	return &Handlers{
		wsHub: NewWSHub(),
	}
}

// Publish records snapshot as the latest metrics and pushes it to
// every connected WebSocket client. Called by the estimation driver
// once per processed subframe.
func (h *Handlers) Publish(snapshot telemetry.Snapshot) {
	h.mu.Lock()
	h.latest = snapshot
	h.haveOne = true
	h.mu.Unlock()

	h.wsHub.BroadcastMetrics(snapshot)
}

// HandleWebSocket handles WebSocket upgrade requests for the metrics
// stream.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.wsHub.AddClient(conn)

	go func() {
		defer h.wsHub.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// HandleMetrics returns the most recently published telemetry
// snapshot as JSON.
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.haveOne {
		http.Error(w, "no metrics available yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.latest)
}

// HandleStatus reports whether the server has any metrics to serve.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	active := h.haveOne
	h.mu.RUnlock()

	status := "idle"
	if active {
		status = "active"
	}
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
