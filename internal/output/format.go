// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"asana/internal/service"
)

// FormatTask formats a task line for list output.
// Format: "({ID}) {NAME}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "(%s) %s\n", task.ID, normalizeTitle(task.Name))
}

// TaskCompleted prints the finish confirmation.
func TaskCompleted(w io.Writer) {
	fmt.Fprintln(w, "Task completed!")
}

// TaskCreated prints the create confirmation. scope is "workspace" or
// "workspace/project".
func TaskCreated(w io.Writer, scope string) {
	fmt.Fprintf(w, "Task created in %s!\n", scope)
}

// normalizeTitle normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
