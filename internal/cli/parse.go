package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/sensei/internal/schedule"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.xml>",
	Short: "Parse a schedule and preview its tasks",
	Long:  `Parse an MS Project XML export and print a preview of the task list without contacting the AI service.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tasks, err := schedule.Parse(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	leaves := schedule.Leaves(tasks)
	fmt.Fprintf(out, "Parsed %d tasks (%d leaf, %d summary)\n\n", len(tasks), len(leaves), len(tasks)-len(leaves))
	fmt.Fprint(out, Preview(tasks, 10))
	return nil
}

// Preview renders up to limit tasks as an aligned text table.
func Preview(tasks []schedule.Task, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-40s %-14s %s\n", "ID", "NAME", "DURATION", "LINKS")
	for i, t := range tasks {
		if i == limit {
			fmt.Fprintf(&b, "... and %d more\n", len(tasks)-limit)
			break
		}
		name := t.Name
		if t.Summary {
			name += " (summary)"
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(&b, "%-6d %-40s %-14s %s\n", t.UID, name, t.Duration, linkSummary(t))
	}
	return b.String()
}

// linkSummary formats a task's relations as e.g. "<-1 FS, ->3 SS".
func linkSummary(t schedule.Task) string {
	parts := make([]string, 0, len(t.Predecessors)+len(t.Successors))
	for _, rel := range t.Predecessors {
		parts = append(parts, fmt.Sprintf("<-%d %s", rel.TaskUID, schedule.RelationName(rel.Type)))
	}
	for _, rel := range t.Successors {
		parts = append(parts, fmt.Sprintf("->%d %s", rel.TaskUID, schedule.RelationName(rel.Type)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
