package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	kindStyles = map[task.Kind]lipgloss.Style{
		task.KindToDo:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.KindDeadline: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		task.KindEvent:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	kindStyles = map[task.Kind]lipgloss.Style{}
}

// TaskTable renders numbered tasks as a formatted table.
func TaskTable(w io.Writer, entries []IndexedTask) {
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks found."))
		return
	}

	const pad = 2
	idxW, kindW, doneW, descW := 3, 6, 6, 13
	for _, e := range entries {
		idxW = max(idxW, len(strconv.Itoa(e.Index))+pad)
		kindW = max(kindW, len(e.Kind.String())+pad)
		descW = max(descW, min(lipgloss.Width(e.Description)+pad, 50)) //nolint:mnd // max description column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idxW, "#", kindW, "TYPE", doneW, "DONE", descW, "DESCRIPTION", "WHEN")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, e := range entries {
		t := e.Task
		desc := t.Description
		const maxDesc = 48
		if runes := []rune(desc); len(runes) > maxDesc {
			desc = string(runes[:maxDesc-3]) + "..."
		}

		done := dimStyle.Render("--")
		if t.Done {
			done = doneStyle.Render("yes")
		}

		row := fmt.Sprintf("%-*d %s %s %s %s",
			idxW, e.Index,
			padRight(styledKind(t.Kind), kindW),
			padRight(done, doneW),
			padRight(desc, descW),
			When(t))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// When summarises a task's dates for display.
func When(t *task.Task) string {
	switch t.Kind {
	case task.KindDeadline:
		if t.By != nil {
			return "by " + t.By.String()
		}
	case task.KindEvent:
		if t.From != nil && t.To != nil {
			return t.From.String() + " → " + t.To.String()
		}
	}
	return dimStyle.Render("--")
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func styledKind(k task.Kind) string {
	if st, ok := kindStyles[k]; ok {
		return st.Render(k.String())
	}
	return k.String()
}
