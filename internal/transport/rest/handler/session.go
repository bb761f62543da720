package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"stressdost/internal/model"
	"stressdost/internal/service"
)

// SessionHandler handles the interview endpoints.
type SessionHandler struct {
	interviewSvc *service.InterviewService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(interviewSvc *service.InterviewService) *SessionHandler {
	return &SessionHandler{interviewSvc: interviewSvc}
}

// Start handles POST /session/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.interviewSvc.Start(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Answer handles POST /session/{id}/answer
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req model.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.interviewSvc.Answer(r.Context(), sessionID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// NextQuestion handles POST /session/{id}/next-question
func (h *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	resp, err := h.interviewSvc.NextQuestion(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /session/{id}/status
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	resp, err := h.interviewSvc.Status(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Debug handles GET /session/{id}/debug
func (h *SessionHandler) Debug(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	resp, err := h.interviewSvc.Debug(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// StartSimulation handles POST /session/{id}/start-simulation
func (h *SessionHandler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	count, err := h.interviewSvc.StartSimulation(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":               true,
		"popups_scheduled": count,
	})
}

// TestPopup handles POST /session/{id}/test-popup
func (h *SessionHandler) TestPopup(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	popup, err := h.interviewSvc.TestPopup(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"sent":    true,
		"payload": popup,
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	switch {
	case errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrInvalidSlot),
		errors.Is(err, service.ErrAnswerRequired),
		errors.Is(err, service.ErrMissingTarget),
		errors.Is(err, service.ErrNotCompleted):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
