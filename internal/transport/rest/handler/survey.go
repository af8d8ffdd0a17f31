package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pulsecheck/internal/model"
	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/middleware"
)

// SurveyHandler handles the employee survey flow
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

type submitSurveyRequest struct {
	Answers []model.SubmittedAnswer `json:"answers"`
}

// Init handles GET /v1/survey/init
func (h *SurveyHandler) Init(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	state, err := h.surveySvc.Init(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load survey")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Submit handles POST /v1/survey/submit
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req submitSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.surveySvc.Submit(r.Context(), userID, req.Answers); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubmitted):
			writeError(w, http.StatusConflict, "survey already submitted this week")
		case errors.Is(err, service.ErrNoAnswers):
			writeError(w, http.StatusBadRequest, "no answers provided")
		default:
			writeError(w, http.StatusInternalServerError, "failed to submit survey")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}
