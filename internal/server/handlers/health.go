package handlers

import (
	"net/http"
	"time"

	"github.com/admitmap/admitmap/internal/server/response"
)

// HandleHealth handles GET /health, the liveness probe.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "admitmap-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready, the readiness probe. Ready means
// the registry loads and holds at least one school.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	reg, err := h.source.Registry()
	if err != nil || reg.Len() == 0 {
		response.ServiceUnavailable(w, "School registry not available")
		return
	}

	response.OK(w, map[string]any{
		"status":  "ready",
		"schools": reg.Len(),
		"uptime":  time.Since(h.start).Round(time.Second).String(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}
