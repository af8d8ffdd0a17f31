package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pulsecheck/internal/model"
	"pulsecheck/internal/service"
)

// ConfigHandler manages the pulse configuration
type ConfigHandler struct {
	surveySvc *service.SurveyService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(surveySvc *service.SurveyService) *ConfigHandler {
	return &ConfigHandler{surveySvc: surveySvc}
}

// Get handles GET /v1/pulse-config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.surveySvc.PulseConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load pulse config")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// Update handles PUT /v1/pulse-config
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cfg model.PulseConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg.UpdatedAt = time.Now()

	if err := h.surveySvc.UpdatePulseConfig(r.Context(), &cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save pulse config")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
