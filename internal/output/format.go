// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"hunnydu/internal/service"
)

const (
	// SectionSeparator is the separator line for task sections.
	SectionSeparator = "------------"
)

// FormatSectionHeader formats a task section header ("My Tasks",
// "Family Tasks").
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatTask formats a task line.
// Format: "{REF:>4}  {NAME}  due {DATE}[ (overdue)]\n"
func FormatTask(w io.Writer, ref string, task service.Task) {
	name := normalizeName(task.Taskname)
	line := fmt.Sprintf("%4s  %s", ref, name)
	if task.Assignee != "" {
		line += "  @" + task.Assignee
	}
	if task.NextDue != "" {
		line += "  due " + task.NextDue
	}
	if task.Overdue {
		line += "  (overdue)"
	}
	fmt.Fprintln(w, line)
}

// FormatSubtask formats a subtask line under its task.
// Format: "      {REF}  [x] {NAME}\n" with [ ] for incomplete.
func FormatSubtask(w io.Writer, ref string, subtask service.Subtask) {
	box := " "
	if subtask.IsComplete {
		box = "x"
	}
	fmt.Fprintf(w, "      %s  [%s] %s\n", ref, box, normalizeName(subtask.Name))
}

// FormatMember formats a family roster line.
func FormatMember(w io.Writer, member service.Member) {
	line := fmt.Sprintf("%4d  %s", member.ID, normalizeName(member.Name))
	switch {
	case member.IsOnlyLeader:
		line += "  (only leader)"
	case member.IsLeader:
		line += "  (leader)"
	}
	fmt.Fprintln(w, line)
}

// normalizeName normalizes a name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
