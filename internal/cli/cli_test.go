package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pablasso/sensei/internal/schedule"
	"github.com/pablasso/sensei/internal/testutil"
)

const fixtureXML = `<?xml version="1.0"?>
<Project xmlns="http://schemas.microsoft.com/project">
  <Tasks>
    <Task><UID>0</UID><Name>Groundworks</Name><Duration>PT104H0M0S</Duration><Summary>1</Summary></Task>
    <Task><UID>1</UID><Name>Excavate</Name><Duration>PT64H0M0S</Duration><Summary>0</Summary></Task>
    <Task><UID>2</UID><Name>Pour Foundation</Name><Duration>PT40H0M0S</Duration><Summary>0</Summary>
      <PredecessorLink><PredecessorUID>1</PredecessorUID><Type>1</Type><LinkLag>0</LinkLag></PredecessorLink>
    </Task>
  </Tasks>
</Project>`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.xml")
	if err := os.WriteFile(path, []byte(fixtureXML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag variables persist across Execute calls; reset them so tests
	// are order-independent.
	auditQuestion, auditAPIKey, auditModel, auditBaseURL, auditAll = "", "", "", "", false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParseCommand(t *testing.T) {
	path := writeFixture(t)

	out, err := execute(t, "parse", path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(out, "Parsed 3 tasks (2 leaf, 1 summary)") {
		t.Errorf("unexpected summary line:\n%s", out)
	}
	if !strings.Contains(out, "Excavate") {
		t.Errorf("preview should list tasks:\n%s", out)
	}
}

func TestParseCommandMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(path, []byte("<nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "parse", path); err == nil {
		t.Error("parse should fail on malformed XML")
	}
}

func TestAuditCommand(t *testing.T) {
	t.Setenv("SENSEI_HOME", t.TempDir())
	stub := testutil.NewStubChatServer(200, testutil.ChatReply("Looks healthy."))
	defer stub.Close()

	path := writeFixture(t)
	out, err := execute(t, "audit", path, "--api-key", "test-key", "--base-url", stub.URL)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(out, "Looks healthy.") {
		t.Errorf("output should contain the AI response:\n%s", out)
	}
	if stub.LastAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", stub.LastAuth)
	}
}

func TestAuditCommandQuestion(t *testing.T) {
	t.Setenv("SENSEI_HOME", t.TempDir())
	stub := testutil.NewStubChatServer(200, testutil.ChatReply("Two weeks."))
	defer stub.Close()

	path := writeFixture(t)
	out, err := execute(t, "audit", path,
		"--api-key", "test-key",
		"--base-url", stub.URL,
		"-q", "How long is excavation?")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(out, "Two weeks.") {
		t.Errorf("output should contain the AI response:\n%s", out)
	}

	msgs := stub.LastBody["messages"].([]any)
	user := msgs[1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "How long is excavation?") {
		t.Error("prompt should carry the question")
	}
	if !strings.Contains(user, "DIRECT ANSWER") {
		t.Error("prompt should use the question framing")
	}
}

func TestAuditCommandUpstreamFailure(t *testing.T) {
	t.Setenv("SENSEI_HOME", t.TempDir())
	stub := testutil.NewStubChatServer(401, testutil.ChatError("bad key"))
	defer stub.Close()

	path := writeFixture(t)
	_, err := execute(t, "audit", path, "--api-key", "wrong", "--base-url", stub.URL)
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Errorf("audit should surface the upstream message, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	tasks := []schedule.Task{
		{UID: 1, Name: "Excavate", Duration: "PT64H0M0S",
			Successors: []schedule.Relation{{TaskUID: 2, Type: schedule.RelFinishToStart}}},
		{UID: 2, Name: "Pour Foundation", Duration: "PT40H0M0S",
			Predecessors: []schedule.Relation{{TaskUID: 1, Type: schedule.RelFinishToStart}}},
	}

	out := Preview(tasks, 10)
	if !strings.Contains(out, "Excavate") || !strings.Contains(out, "->2 FS") {
		t.Errorf("unexpected preview:\n%s", out)
	}
	if !strings.Contains(out, "<-1 FS") {
		t.Errorf("preview should show predecessor links:\n%s", out)
	}

	out = Preview(tasks, 1)
	if !strings.Contains(out, "... and 1 more") {
		t.Errorf("preview should truncate at the limit:\n%s", out)
	}
}
