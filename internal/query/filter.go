// Package query narrows and orders a numbered task list for display.
// Entries keep their list positions so the numbers shown still work
// with mark, unmark and delete.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/taskline/internal/output"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Kinds   []task.Kind
	Done    *bool     // nil=no filter, true=only done, false=only pending
	Search  string    // case-insensitive substring of the description
	Overdue bool      // only pending deadlines due before Now
	Now     time.Time // reference time for Overdue
}

// Active reports whether any criterion is set.
func (o FilterOptions) Active() bool {
	return len(o.Kinds) > 0 || o.Done != nil || o.Search != "" || o.Overdue
}

// Filter returns entries matching all specified criteria (AND logic).
func Filter(entries []output.IndexedTask, opts FilterOptions) []output.IndexedTask {
	result := []output.IndexedTask{}
	for _, e := range entries {
		if matches(e.Task, opts) {
			result = append(result, e)
		}
	}
	return result
}

func matches(t *task.Task, opts FilterOptions) bool {
	if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, t.Kind) {
		return false
	}
	if opts.Done != nil && t.Done != *opts.Done {
		return false
	}
	if opts.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(opts.Search)) {
		return false
	}
	if opts.Overdue && !IsOverdue(t, opts.Now) {
		return false
	}
	return true
}

// IsOverdue reports whether t is a pending deadline due before now.
func IsOverdue(t *task.Task, now time.Time) bool {
	return t.Kind == task.KindDeadline && !t.Done && t.By != nil && t.By.Before(now)
}
