// Package output handles formatting CLI output as text, JSON, or a table.
package output

import (
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

// Format represents an output format.
type Format int

const (
	// FormatText prints the plain numbered rendering.
	FormatText Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a styled table.
	FormatTable
)

// Detect returns the format selected by flags, falling back to the configured
// name ("text", "json" or "table").
func Detect(jsonFlag, tableFlag bool, configured string) Format {
	if jsonFlag {
		return FormatJSON
	}
	if tableFlag {
		return FormatTable
	}

	switch configured {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	}
	return FormatText
}

// IndexedTask is a task together with its displayed 1-based position.
type IndexedTask struct {
	Index int `json:"index"`
	*task.Task
}

// Indexed numbers tasks from 1 in the given order.
func Indexed(tasks []*task.Task) []IndexedTask {
	out := make([]IndexedTask, len(tasks))
	for i, t := range tasks {
		out[i] = IndexedTask{Index: i + 1, Task: t}
	}
	return out
}

// Numbered prints entries one per line as "<index>.<task>", the same
// rendering the list command uses.
func Numbered(w io.Writer, entries []IndexedTask) {
	for _, e := range entries {
		fmt.Fprintf(w, "%d.%s\n", e.Index, e.Task)
	}
}
