package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

const referenceWrap = 80

// ReferenceMarkdown describes the accepted date formats and the data file
// record format as a markdown document.
func ReferenceMarkdown() string {
	sample := datetime.New(2024, time.May, 12, 18, 0)

	var b strings.Builder
	b.WriteString("# taskline formats\n\n")
	b.WriteString("## Dates\n\n")
	b.WriteString("Dates are read in any of these forms, tried in order:\n\n")
	b.WriteString("| Pattern | Example |\n|---|---|\n")
	for _, f := range datetime.InputFormats {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", f.Pattern, sample.Format(f.Layout))
	}
	fmt.Fprintf(&b, "\nThey are always shown and stored as `%s`.\n\n", datetime.InputFormats[0].Pattern)

	b.WriteString("## Commands\n\n```\n")
	b.WriteString("todo buy milk\n")
	b.WriteString("deadline submit report" + task.SeparatorBy + "12-05-2024 18:00\n")
	b.WriteString("event team sync" + task.SeparatorFrom + "2024-01-01 09:00" + task.SeparatorTo + "2024-01-01 10:00\n")
	b.WriteString("```\n\n")

	b.WriteString("## Data file\n\n")
	b.WriteString("One task per line: type letter (`T`, `D`, `E`), done flag (`X` or blank), description and dates.\n\n```\n")
	for _, t := range referenceTasks() {
		b.WriteString(store.EncodeLine(t) + "\n")
	}
	b.WriteString("```\n\n")
	b.WriteString("Lines that cannot be read are skipped with a warning. ")
	b.WriteString("Lines with an unknown type letter are skipped silently.\n")
	return b.String()
}

func referenceTasks() []*task.Task {
	done := task.NewDeadline("submit report", datetime.New(2024, time.May, 12, 18, 0))
	done.MarkDone()
	return []*task.Task{
		task.NewToDo("buy milk"),
		done,
		task.NewEvent("team sync", datetime.New(2024, time.January, 1, 9, 0), datetime.New(2024, time.January, 1, 10, 0)),
	}
}

// Reference renders ReferenceMarkdown for the terminal. Without color the
// plain "notty" style is used.
func Reference(w io.Writer, color bool) error {
	style := "dark"
	if !color {
		style = "notty"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(referenceWrap),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(ReferenceMarkdown())
	if err != nil {
		return fmt.Errorf("rendering reference: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
