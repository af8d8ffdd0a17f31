package handler

import (
	"net/http"

	"pulsecheck/internal/service"
)

// CronHandler triggers scheduled jobs over HTTP
type CronHandler struct {
	surveySvc *service.SurveyService
}

// NewCronHandler creates a new cron handler
func NewCronHandler(surveySvc *service.SurveyService) *CronHandler {
	return &CronHandler{surveySvc: surveySvc}
}

// Weekly handles POST /v1/cron/weekly. With ?force=true it rotates questions
// regardless of the configured schedule.
func (h *CronHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	status, err := h.surveySvc.RunWeeklyGeneration(r.Context(), force)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "weekly generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
