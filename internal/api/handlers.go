package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/pablasso/sensei/internal/ai"
	"github.com/pablasso/sensei/internal/schedule"
)

// maxUploadBytes bounds the XML body accepted by /api/parse.
const maxUploadBytes = 32 << 20

// handleParse consumes a raw MS Project XML body and returns the parsed
// task list.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	tasks, err := schedule.Parse(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		parseRequests.WithLabelValues("error").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	parseRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// consultRequest is the /api/consult body. The apiKey field is optional when
// the server was started with a fallback credential.
type consultRequest struct {
	Tasks    []schedule.Task `json:"tasks"`
	Question string          `json:"question"`
	APIKey   string          `json:"apiKey"`
}

// handleConsult forwards the task list and question to the chat service and
// returns the reply text.
func (s *Server) handleConsult(w http.ResponseWriter, r *http.Request) {
	var req consultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		consultRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	key := req.APIKey
	if key == "" {
		key = s.apiKey
	}

	id := "consult-" + uuid.New().String()[:8]
	log.Printf("[%s] consulting on %d tasks (question=%t)", id, len(req.Tasks), req.Question != "")

	response, err := s.clients(key).Consult(r.Context(), req.Tasks, req.Question)
	if err != nil {
		status, outcome := consultErrorStatus(err)
		consultRequests.WithLabelValues(outcome).Inc()
		log.Printf("[%s] consult failed: %v", id, err)
		writeError(w, status, err.Error())
		return
	}

	consultRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// consultErrorStatus maps the ai error taxonomy to an HTTP status and a
// metrics label.
func consultErrorStatus(err error) (int, string) {
	var upstream *ai.UpstreamError
	var transport *ai.TransportError
	switch {
	case errors.Is(err, ai.ErrEmptySchedule):
		return http.StatusUnprocessableEntity, "empty_schedule"
	case errors.Is(err, ai.ErrMissingCredential):
		return http.StatusUnauthorized, "missing_credential"
	case errors.As(err, &upstream):
		if upstream.StatusCode >= 400 {
			return upstream.StatusCode, "upstream"
		}
		return http.StatusBadGateway, "upstream"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "transport"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response in the same shape the chat
// service uses, so the browser handles both uniformly.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": msg},
	})
}
