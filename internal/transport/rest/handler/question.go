package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pulsecheck/internal/model"
	"pulsecheck/internal/service"
)

// QuestionHandler manages the question bank
type QuestionHandler struct {
	surveySvc *service.SurveyService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(surveySvc *service.SurveyService) *QuestionHandler {
	return &QuestionHandler{surveySvc: surveySvc}
}

type createQuestionRequest struct {
	Text  string             `json:"text"`
	Type  model.QuestionType `json:"type"`
	Order int                `json:"order"`
}

// List handles GET /v1/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.surveySvc.ListQuestions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list questions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Create handles POST /v1/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.surveySvc.CreateQuestion(r.Context(), req.Text, req.Type, req.Order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// Update handles PUT /v1/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question.ID = mux.Vars(r)["id"]

	if err := h.surveySvc.UpdateQuestion(r.Context(), &question); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /v1/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.surveySvc.DeleteQuestion(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete question")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
