// Package ai builds schedule-analysis prompts and sends them to a hosted
// chat-completion service.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pablasso/sensei/internal/schedule"
)

// SystemPrompt fixes the assistant persona for every consult request.
const SystemPrompt = `You are ScheduleSensei, a senior CPM scheduling consultant. You analyze project schedules exported from Microsoft Project and give direct, specific, practical advice. You reference tasks by id and name, you never invent data that is not in the schedule, and you keep filler to zero.`

// auditTemplate is the full-audit prompt. The single %s placeholder receives
// the JSON-serialized task list.
const auditTemplate = `Below is a project schedule, exported from Microsoft Project and converted to a JSON array of tasks.

INPUT FORMAT:
- Each task has: id, name, duration, start, finish, predecessors, successors.
- predecessors/successors are arrays of {id, type, lag} where type is a relationship code: 1=FS (finish-to-start), 2=SS (start-to-start), 3=FF (finish-to-finish), 4=SF (start-to-finish).
- Durations and lags use an ISO-8601-like form (e.g. PT64H0M0S). Assume 8-hour workdays since no calendar data is included.

SCHEDULE:
%s

Perform a full audit of this schedule. Structure your answer exactly as:

1. HEALTH CHECK: short bullets: open ends (tasks missing predecessors or successors), suspicious durations, dangling or circular logic, anything that would fail a standard schedule quality review.
2. DETAILED REVIEW: walk the schedule's logic and sequencing, calling out the specific tasks that drive the finish date.
3. RANKED FIX LIST: the changes you would make, ordered by impact, each tied to the task ids involved.
4. FOLLOW-UP QUESTIONS: anything you would need from the scheduler to go deeper (omit if none).`

// questionTemplate is the targeted-question prompt. The first %s receives the
// JSON-serialized task list, the second the user's question.
const questionTemplate = `Below is a project schedule, exported from Microsoft Project and converted to a JSON array of tasks.

INPUT FORMAT:
- Each task has: id, name, duration, start, finish, predecessors, successors.
- predecessors/successors are arrays of {id, type, lag} where type is a relationship code: 1=FS (finish-to-start), 2=SS (start-to-start), 3=FF (finish-to-finish), 4=SF (start-to-finish).
- Durations and lags use an ISO-8601-like form (e.g. PT64H0M0S). Assume 8-hour workdays since no calendar data is included.

SCHEDULE:
%s

QUESTION:
%s

Answer the question using only the schedule data above. Structure your answer exactly as:

1. DIRECT ANSWER: answer the question first, in plain language.
2. REFERENCED DATA POINTS: the task ids, durations, and links your answer rests on.
3. QUICK-HIT SUGGESTIONS: brief related improvements you noticed while answering (omit if none).`

// BuildPrompt serializes tasks to JSON and substitutes them into one of the
// two fixed templates: the full audit when question is blank, the targeted
// question otherwise. Pure function of its inputs; the caller is responsible
// for rejecting an empty task list before sending anything anywhere.
func BuildPrompt(tasks []schedule.Task, question string) (string, error) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to serialize tasks: %w", err)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Sprintf(auditTemplate, data), nil
	}
	return fmt.Sprintf(questionTemplate, data, question), nil
}
