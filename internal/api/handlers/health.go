package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/userdata/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	users UserStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(users UserStore) *HealthHandler {
	return &HealthHandler{users: users}
}

// Healthz handles liveness probe
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"users":  h.users.Count(),
	})
}
