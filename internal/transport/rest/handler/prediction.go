package handler

import (
	"net/http"

	"pulsecheck/internal/service"
)

// PredictionHandler serves churn and engagement predictions
type PredictionHandler struct {
	predictionSvc *service.PredictionService
	analyticsSvc  *service.AnalyticsService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionSvc *service.PredictionService, analyticsSvc *service.AnalyticsService) *PredictionHandler {
	return &PredictionHandler{predictionSvc: predictionSvc, analyticsSvc: analyticsSvc}
}

// Churn handles GET /v1/predictions/churn
func (h *PredictionHandler) Churn(w http.ResponseWriter, r *http.Request) {
	predictions, err := h.predictionSvc.ChurnPredictions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute churn predictions")
		return
	}

	writeJSON(w, http.StatusOK, predictions)
}

// Weekly handles GET /v1/predictions/weekly
func (h *PredictionHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	prediction, err := h.analyticsSvc.WeeklyPrediction(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute weekly prediction")
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}
