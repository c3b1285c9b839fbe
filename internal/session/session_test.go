package session

import (
	"errors"
	"testing"

	"github.com/pablasso/sensei/internal/schedule"
)

func TestSelectFileClearsDownstreamState(t *testing.T) {
	s := New()
	s.SelectFile("a.xml")
	s.SetTasks([]schedule.Task{{UID: 1, Name: "Excavate"}})
	s.FinishConsult("looks fine", nil)

	s.SelectFile("b.xml")

	if s.FilePath != "b.xml" {
		t.Errorf("FilePath = %q, want b.xml", s.FilePath)
	}
	if s.Tasks != nil {
		t.Error("new file selection should clear the prior parse result")
	}
	if s.Response != "" {
		t.Error("new file selection should clear the prior AI response")
	}
	if s.ParseErr != nil || s.ConsultErr != nil || s.Loading {
		t.Error("new file selection should clear errors and the loading flag")
	}
}

func TestParseOutcomeIsExclusive(t *testing.T) {
	s := New()
	s.SelectFile("a.xml")

	s.SetParseError(errors.New("bad XML"))
	if s.Tasks != nil || s.ParseErr == nil {
		t.Error("a parse error should leave no task list")
	}

	s.SetTasks([]schedule.Task{{UID: 1}})
	if s.ParseErr != nil || !s.HasTasks() {
		t.Error("a successful parse should clear the parse error")
	}
}

func TestConsultOutcomeIsExclusive(t *testing.T) {
	s := New()
	s.SelectFile("a.xml")
	s.SetTasks([]schedule.Task{{UID: 1}})

	s.BeginConsult()
	if !s.Loading || s.Response != "" || s.ConsultErr != nil {
		t.Error("BeginConsult should set loading and clear the prior outcome")
	}

	s.FinishConsult("answer", nil)
	if s.Loading || s.Response != "answer" || s.ConsultErr != nil {
		t.Errorf("unexpected state after success: %+v", s)
	}

	s.BeginConsult()
	s.FinishConsult("", errors.New("boom"))
	if s.Response != "" || s.ConsultErr == nil {
		t.Error("a failed consult should leave an error and no response")
	}
}
