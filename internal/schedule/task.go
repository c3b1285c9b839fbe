// Package schedule defines the task model for Microsoft Project exports and
// the parser that produces it.
package schedule

// Relation type codes as encoded in MS Project exports.
const (
	RelFinishToStart  = 1
	RelStartToStart   = 2
	RelFinishToFinish = 3
	RelStartToFinish  = 4
)

// Relation describes one dependency link between two tasks.
type Relation struct {
	TaskUID   int    `json:"id"`
	Type      int    `json:"type"`
	Lag       string `json:"lag"`
	LagFormat int    `json:"lagFormat,omitempty"`
}

// Task represents a single schedule activity. Tasks are created once per
// parsed file and never mutated afterwards.
type Task struct {
	UID          int        `json:"id"`
	Name         string     `json:"name"`
	Duration     string     `json:"duration"`
	Start        string     `json:"start"`
	Finish       string     `json:"finish"`
	Summary      bool       `json:"summary,omitempty"`
	Predecessors []Relation `json:"predecessors"`
	Successors   []Relation `json:"successors"`
}

// Leaves returns the non-summary tasks in file order. Summary rows are group
// headers, not actual work, so downstream analysis normally skips them.
func Leaves(tasks []Task) []Task {
	leaves := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Summary {
			leaves = append(leaves, t)
		}
	}
	return leaves
}

// ForAnalysis returns the tasks worth sending to the AI: the leaf tasks, or
// the full list when the schedule contains nothing but summary rows.
func ForAnalysis(tasks []Task) []Task {
	leaves := Leaves(tasks)
	if len(leaves) == 0 {
		return tasks
	}
	return leaves
}

// RelationName returns the conventional abbreviation for a relation type code.
func RelationName(code int) string {
	switch code {
	case RelFinishToStart:
		return "FS"
	case RelStartToStart:
		return "SS"
	case RelFinishToFinish:
		return "FF"
	case RelStartToFinish:
		return "SF"
	default:
		return "?"
	}
}
