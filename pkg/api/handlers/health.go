package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	fs      FS
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. fs may be nil, in which case
// readiness always fails.
func NewHealthHandler(fs FS) *HealthHandler {
	return &HealthHandler{fs: fs, timeout: 5 * time.Second}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      map[string]string{"service": "sharefs"},
	})
}

// Readiness handles GET /health/ready by stating the share root.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.fs == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     "no share connected",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if _, err := h.fs.Stat(ctx, ""); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      map[string]string{"share": h.fs.Root()},
	})
}
