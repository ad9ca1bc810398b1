package query

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
	"github.com/twiced-technology-gmbh/taskline/internal/output"
)

// Sort fields.
const (
	SortIndex       = "index"
	SortWhen        = "when"
	SortDescription = "description"
	SortKind        = "kind"
)

// ValidSortFields returns the accepted sort fields.
func ValidSortFields() []string {
	return []string{SortIndex, SortWhen, SortDescription, SortKind}
}

// ValidateSortField rejects unknown sort fields.
func ValidateSortField(field string) error {
	for _, f := range ValidSortFields() {
		if f == field {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidArgument, "invalid sort field %q; valid: %s",
		field, strings.Join(ValidSortFields(), ", "))
}

// Sort orders entries by the given field. Ties keep list order.
func Sort(entries []output.IndexedTask, field string, reverse bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		if reverse {
			return less(entries[j], entries[i], field)
		}
		return less(entries[i], entries[j], field)
	})
}

func less(a, b output.IndexedTask, field string) bool {
	switch field {
	case SortWhen:
		return compareWhen(when(a), when(b), a.Index < b.Index)
	case SortDescription:
		return strings.ToLower(a.Description) < strings.ToLower(b.Description)
	case SortKind:
		return a.Kind < b.Kind
	default:
		return a.Index < b.Index
	}
}

// when is the date a task is sorted by: the deadline or the event start.
func when(e output.IndexedTask) *datetime.DateTime {
	if e.By != nil {
		return e.By
	}
	return e.From
}

func compareWhen(a, b *datetime.DateTime, tie bool) bool {
	switch {
	case a == nil && b == nil:
		return tie
	case a == nil:
		return false // undated sorts last
	case b == nil:
		return true
	case a.Equal(*b):
		return tie
	}
	return a.Before(b.Time)
}
