package handler

import (
	"net/http"

	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/gorilla/mux"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	logger logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(log logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	return &HealthHandler{logger: log}
}

// Health reports that the process is serving requests
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}
