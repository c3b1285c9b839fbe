// Package session holds the in-memory state of one user interaction: the
// selected file, its parse outcome, the question and credential, and the
// outcome of the last consult. Nothing here is ever written to disk; the
// credential in particular lives only in this struct.
package session

import "github.com/pablasso/sensei/internal/schedule"

// State is the single mutable record behind the UI. Updates happen strictly
// in event-handler order, so no locking is needed; only one parse or consult
// is ever in flight.
type State struct {
	FilePath   string
	Tasks      []schedule.Task
	ParseErr   error
	Question   string
	Credential string
	Response   string
	ConsultErr error
	Loading    bool
}

// New returns an empty session.
func New() *State {
	return &State{}
}

// SelectFile records a new file choice. Any prior parse result and any prior
// consult outcome are invalidated unconditionally before the new parse runs.
func (s *State) SelectFile(path string) {
	s.FilePath = path
	s.Tasks = nil
	s.ParseErr = nil
	s.Response = ""
	s.ConsultErr = nil
	s.Loading = false
}

// SetTasks stores a successful parse result, clearing any parse error.
func (s *State) SetTasks(tasks []schedule.Task) {
	s.Tasks = tasks
	s.ParseErr = nil
}

// SetParseError stores a failed parse, clearing any stale task list.
func (s *State) SetParseError(err error) {
	s.Tasks = nil
	s.ParseErr = err
}

// BeginConsult marks a consult round-trip as in flight and clears the prior
// outcome so response and error are never both populated.
func (s *State) BeginConsult() {
	s.Loading = true
	s.Response = ""
	s.ConsultErr = nil
}

// FinishConsult stores the outcome of a consult round-trip. Exactly one of
// response and err ends up populated.
func (s *State) FinishConsult(response string, err error) {
	s.Loading = false
	if err != nil {
		s.Response = ""
		s.ConsultErr = err
		return
	}
	s.Response = response
	s.ConsultErr = nil
}

// HasTasks reports whether a successful parse result is loaded.
func (s *State) HasTasks() bool {
	return len(s.Tasks) > 0
}
