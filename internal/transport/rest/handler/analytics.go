package handler

import (
	"net/http"

	"pulsecheck/internal/service"
)

// AnalyticsHandler serves dashboard analytics
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Summary handles GET /v1/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build analytics summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
