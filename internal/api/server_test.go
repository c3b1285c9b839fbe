package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pablasso/sensei/internal/ai"
	"github.com/pablasso/sensei/internal/config"
	"github.com/pablasso/sensei/internal/schedule"
)

const testXML = `<?xml version="1.0"?>
<Project xmlns="http://schemas.microsoft.com/project">
  <Tasks>
    <Task><UID>1</UID><Name>Excavate</Name><Duration>PT64H0M0S</Duration><Summary>0</Summary></Task>
    <Task><UID>2</UID><Name>Pour</Name><Duration>PT40H0M0S</Duration><Summary>0</Summary>
      <PredecessorLink><PredecessorUID>1</PredecessorUID><Type>1</Type><LinkLag>0</LinkLag></PredecessorLink>
    </Task>
  </Tasks>
</Project>`

// stubConsulter returns a fixed outcome and records the inputs it saw.
type stubConsulter struct {
	response string
	err      error

	gotKey      string
	gotTasks    []schedule.Task
	gotQuestion string
}

func (s *stubConsulter) Consult(ctx context.Context, tasks []schedule.Task, question string) (string, error) {
	s.gotTasks = tasks
	s.gotQuestion = question
	return s.response, s.err
}

func newTestServer(stub *stubConsulter) *Server {
	s := NewServer(config.Default(), "server-key")
	s.clients = func(key string) Consulter {
		stub.gotKey = key
		return stub
	}
	return s
}

func TestHandleParse(t *testing.T) {
	s := newTestServer(&stubConsulter{})
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(testXML))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int             `json:"count"`
		Tasks []schedule.Task `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Count != 2 || len(resp.Tasks) != 2 {
		t.Errorf("count = %d, tasks = %d, want 2 each", resp.Count, len(resp.Tasks))
	}
	if resp.Tasks[0].Name != "Excavate" {
		t.Errorf("first task = %+v", resp.Tasks[0])
	}
}

func TestHandleParseMalformed(t *testing.T) {
	s := newTestServer(&stubConsulter{})
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("<not-a-project/>"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Errorf("error body should carry a message: %s", rec.Body.String())
	}
}

func TestHandleConsult(t *testing.T) {
	stub := &stubConsulter{response: "all good"}
	s := newTestServer(stub)

	body := `{"tasks":[{"id":1,"name":"Excavate"}],"question":"why?","apiKey":"user-key"}`
	req := httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["response"] != "all good" {
		t.Errorf("response = %q", resp["response"])
	}
	if stub.gotKey != "user-key" {
		t.Errorf("request key should win over server key, got %q", stub.gotKey)
	}
	if stub.gotQuestion != "why?" || len(stub.gotTasks) != 1 {
		t.Errorf("unexpected consult inputs: %q, %d tasks", stub.gotQuestion, len(stub.gotTasks))
	}
}

func TestHandleConsultFallsBackToServerKey(t *testing.T) {
	stub := &stubConsulter{response: "ok"}
	s := newTestServer(stub)

	body := `{"tasks":[{"id":1}],"question":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if stub.gotKey != "server-key" {
		t.Errorf("key = %q, want server fallback", stub.gotKey)
	}
}

func TestHandleConsultErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty schedule", ai.ErrEmptySchedule, http.StatusUnprocessableEntity},
		{"missing credential", ai.ErrMissingCredential, http.StatusUnauthorized},
		{"upstream", &ai.UpstreamError{StatusCode: 429, Message: "slow down"}, http.StatusTooManyRequests},
		{"upstream without status", &ai.UpstreamError{StatusCode: 200, Message: "no choices"}, http.StatusBadGateway},
		{"transport", &ai.TransportError{Err: context.DeadlineExceeded}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubConsulter{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader(`{"tasks":[]}`))
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp.Error.Message == "" {
				t.Errorf("error body should carry a message: %s", rec.Body.String())
			}
		})
	}
}

func TestHandleConsultBadBody(t *testing.T) {
	s := newTestServer(&stubConsulter{})
	req := httptest.NewRequest(http.MethodPost, "/api/consult", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubConsulter{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
