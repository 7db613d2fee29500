package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	env string
}

func NewHealthHandler(env string) *HealthHandler { return &HealthHandler{env: env} }

// HealthEnvelope is the health-check response.
type HealthEnvelope struct {
	Message string `json:"message"`
	Env     string `json:"env,omitempty"`
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "action") == "ping" {
		writeJSON(w, http.StatusOK, HealthEnvelope{Message: "pong", Env: h.env})
		return
	}
	writeError(w, http.StatusBadRequest, "unknown action")
}

// NotFound and MethodNotAllowed keep error bodies JSON for unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
