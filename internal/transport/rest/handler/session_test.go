package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"stressdost/internal/config"
	"stressdost/internal/model"
	"stressdost/internal/service"
	"stressdost/internal/slots"
)

type memStore struct {
	sessions map[string]*model.Session
}

func (s *memStore) Create(_ context.Context, session *model.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*model.Session, error) {
	return s.sessions[id], nil
}

func (s *memStore) Update(_ context.Context, session *model.Session) error {
	s.sessions[session.ID] = session
	return nil
}

type noopCauses struct{}

func (noopCauses) DetectCauses(_ context.Context, _ string) map[string]bool {
	return map[string]bool{"time_pressure": true}
}

func (noopCauses) ExtractComponents(_ context.Context, _ string) []string { return nil }

type noopPrefiller struct{}

func (noopPrefiller) Prefill(_ context.Context, _ string) model.PrefillResult {
	return model.PrefillResult{Prefill: map[string]map[string]string{}}
}

type noopGate struct{}

func (noopGate) ShouldAskSlot(_ context.Context, _, _, _ string) bool { return true }

type noopQuestions struct{}

func (noopQuestions) GenerateQuestion(_ context.Context, domain, slot string, _ service.QuestionContext) string {
	return service.FallbackQuestion(domain, slot)
}

type noopPopups struct{}

func (noopPopups) GeneratePopups(_ context.Context, _ *slots.Filled, _ []string) []model.Popup {
	return nil
}

func newTestRouter() http.Handler {
	svc := service.NewInterviewService(
		&memStore{sessions: map[string]*model.Session{}},
		noopCauses{},
		noopPrefiller{},
		noopGate{},
		noopQuestions{},
		noopPopups{},
		&config.Config{MinQuestions: 3, MaxQuestions: 6, MaxDomainQuestions: 2},
	)

	r := mux.NewRouter()
	h := NewSessionHandler(svc)
	r.HandleFunc("/session/start", h.Start).Methods("POST")
	r.HandleFunc("/session/{id}/answer", h.Answer).Methods("POST")
	r.HandleFunc("/session/{id}/next-question", h.NextQuestion).Methods("POST")
	r.HandleFunc("/session/{id}/status", h.Status).Methods("GET")
	return r
}

func TestStartEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/session/start", strings.NewReader(`{"text":"exam in 10 days"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp model.StartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" || resp.Status != model.SessionActive {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestStartEndpointRequiresText(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/session/start", strings.NewReader(`{"text":"  "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestStatusEndpointNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/session/nope/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestQuestionAnswerFlow(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/session/start", strings.NewReader(`{"text":"exam in 10 days"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var start model.StartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &start); err != nil {
		t.Fatalf("decode start: %v", err)
	}

	req = httptest.NewRequest("POST", "/session/"+start.SessionID+"/next-question", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("next-question status = %d, body %s", rec.Code, rec.Body.String())
	}
	var next model.NextQuestionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &next); err != nil {
		t.Fatalf("decode next: %v", err)
	}
	if next.Done || next.Question == "" {
		t.Fatalf("expected a question, got %+v", next)
	}

	req = httptest.NewRequest("POST", "/session/"+start.SessionID+"/answer", strings.NewReader(`{"answer":"two weeks left"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d, body %s", rec.Code, rec.Body.String())
	}
	var answer model.AnswerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if !answer.OK {
		t.Errorf("expected ok answer, got %+v", answer)
	}
}
