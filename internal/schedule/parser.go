package schedule

import (
	"encoding/xml"
	"fmt"
	"io"
)

// ParseError indicates the document is not a usable MS Project export.
// The parser never returns partial results alongside a ParseError.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not parse schedule: %s: %v", e.Reason, e.Err)
	}
	return "could not parse schedule: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// XML shapes for the subset of the MS Project export schema we consume.
// Element names match regardless of the document's default namespace.
type projectXML struct {
	XMLName xml.Name  `xml:"Project"`
	Tasks   []taskXML `xml:"Tasks>Task"`
}

type taskXML struct {
	UID      *int      `xml:"UID"`
	Name     string    `xml:"Name"`
	Duration string    `xml:"Duration"`
	Start    string    `xml:"Start"`
	Finish   string    `xml:"Finish"`
	Summary  int       `xml:"Summary"`
	Links    []linkXML `xml:"PredecessorLink"`
}

type linkXML struct {
	PredecessorUID int `xml:"PredecessorUID"`
	Type           int `xml:"Type"`
	LinkLag        int `xml:"LinkLag"`
	LagFormat      int `xml:"LagFormat"`
}

// Parse reads an MS Project XML export and returns its tasks in file order.
// Successor links are derived by inverting each task's PredecessorLink
// records. A malformed document or one without any <Task> elements yields a
// *ParseError and no tasks.
func Parse(r io.Reader) ([]Task, error) {
	var doc projectXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ParseError{Reason: "malformed XML", Err: err}
	}
	if len(doc.Tasks) == 0 {
		return nil, &ParseError{Reason: "no tasks found (is this an MS Project export?)"}
	}

	tasks := make([]Task, 0, len(doc.Tasks))
	byUID := make(map[int]int, len(doc.Tasks))
	for _, raw := range doc.Tasks {
		if raw.UID == nil {
			return nil, &ParseError{Reason: "task missing UID element"}
		}
		t := Task{
			UID:          *raw.UID,
			Name:         raw.Name,
			Duration:     raw.Duration,
			Start:        raw.Start,
			Finish:       raw.Finish,
			Summary:      raw.Summary == 1,
			Predecessors: []Relation{},
			Successors:   []Relation{},
		}
		byUID[t.UID] = len(tasks)
		tasks = append(tasks, t)
	}

	// Second pass: attach predecessor links and mirror them as successors.
	for i, raw := range doc.Tasks {
		for _, link := range raw.Links {
			lag := lagString(link.LinkLag)
			tasks[i].Predecessors = append(tasks[i].Predecessors, Relation{
				TaskUID:   link.PredecessorUID,
				Type:      link.Type,
				Lag:       lag,
				LagFormat: link.LagFormat,
			})
			if j, ok := byUID[link.PredecessorUID]; ok {
				tasks[j].Successors = append(tasks[j].Successors, Relation{
					TaskUID:   tasks[i].UID,
					Type:      link.Type,
					Lag:       lag,
					LagFormat: link.LagFormat,
				})
			}
		}
	}

	return tasks, nil
}

// lagString converts a LinkLag value (tenths of minutes in the export) to an
// ISO-8601-like duration, matching the format used for task durations.
func lagString(linkLag int) string {
	neg := ""
	if linkLag < 0 {
		neg = "-"
		linkLag = -linkLag
	}
	minutes := linkLag / 10
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%sPT%dH", neg, h)
	}
	return fmt.Sprintf("%sPT%dH%dM", neg, h, m)
}
