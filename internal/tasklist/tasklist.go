// Package tasklist holds the in-memory task sequence and the operations
// that mutate it, saving the whole sequence after every change.
package tasklist

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

// Storage loads and saves the full task sequence.
type Storage interface {
	Load() ([]*task.Task, []store.LineWarning, error)
	Save(tasks []*task.Task) error
}

// List is an ordered task sequence bound to a Storage.
// Positions exposed to callers are 1-based.
type List struct {
	tasks   []*task.Task
	storage Storage
	logger  *log.Logger
}

// Open loads the sequence from storage. Malformed lines are logged as
// warnings; a load failure is logged and yields an empty list.
func Open(storage Storage, logger *log.Logger) *List {
	l := &List{storage: storage, logger: logger, tasks: []*task.Task{}}

	tasks, warnings, err := storage.Load()
	for _, w := range warnings {
		logger.Warn("skipping malformed task line", "line", w.Line, "err", w.Err)
	}
	if err != nil {
		logger.Error("could not load tasks, starting with an empty list", "err", err)
		return l
	}
	l.tasks = tasks
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the task sequence.
func (l *List) Tasks() []*task.Task {
	out := make([]*task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// AddCommand adds a task from a command such as "todo buy milk".
func (l *List) AddCommand(command string) (string, error) {
	trimmed := strings.TrimLeftFunc(command, unicode.IsSpace)
	split := strings.IndexFunc(trimmed, unicode.IsSpace)
	if split < 0 || strings.TrimSpace(trimmed[split:]) == "" {
		return "", clierr.New(clierr.InvalidArgument, "the description cannot be empty").
			WithDetails(map[string]any{"command": command})
	}
	return l.Add(trimmed[:split], trimmed[split:])
}

// Add builds a task of the kind named by typeToken and appends it.
func (l *List) Add(typeToken, details string) (string, error) {
	kind, err := task.ParseKind(typeToken)
	if err != nil {
		return "", err
	}
	t, err := task.Build(kind, details)
	if err != nil {
		return "", err
	}

	l.tasks = append(l.tasks, t)
	l.save()
	return addedMessage(t, len(l.tasks)), nil
}

// List renders every task with its 1-based position.
func (l *List) List() string {
	if len(l.tasks) == 0 {
		return MsgEmptyList
	}
	return MsgListHeader + "\n" + numbered(l.tasks)
}

// MarkDone marks the task at index as done.
func (l *List) MarkDone(index int) (string, error) {
	t, err := l.at(index)
	if err != nil {
		return "", err
	}
	t.MarkDone()
	l.save()
	return MsgMarked + "\n  " + t.String(), nil
}

// MarkUndone marks the task at index as not done.
func (l *List) MarkUndone(index int) (string, error) {
	t, err := l.at(index)
	if err != nil {
		return "", err
	}
	t.MarkUndone()
	l.save()
	return MsgUnmarked + "\n  " + t.String(), nil
}

// Delete removes the task at index; later tasks move up one position.
func (l *List) Delete(index int) (string, error) {
	t, err := l.at(index)
	if err != nil {
		return "", err
	}
	l.tasks = append(l.tasks[:index-1], l.tasks[index:]...)
	l.save()
	return MsgRemoved + "\n  " + t.String() + "\n" + countMessage(len(l.tasks)), nil
}

// DeleteAll removes every task.
func (l *List) DeleteAll() {
	l.tasks = []*task.Task{}
	l.save()
}

// Find renders tasks whose description contains keyword (case-sensitive),
// numbered from 1 within the matches.
func (l *List) Find(keyword string) string {
	if len(l.tasks) == 0 {
		return MsgNoTasks
	}

	matches := l.Matches(keyword)
	if len(matches) == 0 {
		return MsgNoMatches
	}
	return MsgFindHeader + "\n" + numbered(matches)
}

// Matches returns the tasks Find would render, in list order.
func (l *List) Matches(keyword string) []*task.Task {
	var matches []*task.Task
	for _, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (l *List) at(index int) (*task.Task, error) {
	if index < 1 || index > len(l.tasks) {
		return nil, clierr.Newf(clierr.IllegalIndex, "task index %d is out of range (the list has %d %s)",
			index, len(l.tasks), plural(len(l.tasks))).
			WithDetails(map[string]any{"index": index, "size": len(l.tasks)})
	}
	return l.tasks[index-1], nil
}

// save persists the sequence. Failures are logged and the in-memory change is kept.
func (l *List) save() {
	if err := l.storage.Save(l.tasks); err != nil {
		l.logger.Warn("could not save tasks; changes are kept in memory only", "err", err)
	}
}

func numbered(tasks []*task.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%d.%s", i+1, t)
	}
	return strings.Join(lines, "\n")
}

// ParseIndex parses a user-supplied 1-based task number.
// Range checks happen in the operation itself.
func ParseIndex(s string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, clierr.Newf(clierr.InvalidArgument, "task number %q is not a number", s).
			WithDetails(map[string]any{"input": s})
	}
	return index, nil
}
