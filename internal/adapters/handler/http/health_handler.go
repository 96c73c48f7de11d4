package http

import (
	"net/http"

	"github.com/musetix/polls/internal/core/ports"
)

type HealthHandler struct {
	checker ports.HealthChecker
}

func NewHealthHandler(checker ports.HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
