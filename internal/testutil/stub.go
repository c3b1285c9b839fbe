// Package testutil provides testing utilities for the sensei project.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

// StubChatServer is an httptest server that plays the role of the
// chat-completion service, replying with a fixed status and body and
// counting the requests it receives.
type StubChatServer struct {
	*httptest.Server

	hits int64

	// LastBody holds the decoded JSON body of the most recent request.
	LastBody map[string]any
	// LastAuth holds the Authorization header of the most recent request.
	LastAuth string
}

// NewStubChatServer starts a stub replying to every request with the given
// status and raw JSON body. Callers own Close.
func NewStubChatServer(status int, body string) *StubChatServer {
	s := &StubChatServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.hits, 1)
		s.LastAuth = r.Header.Get("Authorization")
		var decoded map[string]any
		_ = json.NewDecoder(r.Body).Decode(&decoded)
		s.LastBody = decoded
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	return s
}

// Hits returns how many requests the stub has served.
func (s *StubChatServer) Hits() int {
	return int(atomic.LoadInt64(&s.hits))
}

// ChatReply builds a minimal successful chat-completion payload whose first
// choice contains the given text.
func ChatReply(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// ChatError builds the error payload shape the chat service uses.
func ChatError(message string) string {
	payload := map[string]any{
		"error": map[string]any{"message": message},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}
