package handler

import (
	"net/http"

	"pulsecheck/internal/service"
)

// InsightHandler serves AI-generated insights and recommendations
type InsightHandler struct {
	insightSvc *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightSvc *service.InsightService) *InsightHandler {
	return &InsightHandler{insightSvc: insightSvc}
}

// Company handles GET /v1/insights/company
func (h *InsightHandler) Company(w http.ResponseWriter, r *http.Request) {
	insight, err := h.insightSvc.CompanyInsight(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate company insight")
		return
	}

	writeJSON(w, http.StatusOK, insight)
}

// Recommendations handles GET /v1/actions/recommendations
func (h *InsightHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	actions, err := h.insightSvc.ActionRecommendations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"actions": actions})
}
