package handler

import (
	"net/http"
	"time"
)

// Pinger reports whether the backing store is reachable. The sqlite DB
// satisfies it; tests pass a stub.
type Pinger interface {
	Ping() error
}

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HandleHealth reports service health.
//
// HTTP: GET /api/health
//
// The store is pinged so an unreachable database shows up here as a 503
// instead of hiding until the first real query fails.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
