package tasklist

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/store"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

const dataPath = "/data/tasks.txt"

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newList(t *testing.T, commands ...string) (*List, *store.Store) {
	t.Helper()
	st := store.New(afero.NewMemMapFs(), dataPath)
	l := Open(st, quietLogger())
	for _, c := range commands {
		if _, err := l.AddCommand(c); err != nil {
			t.Fatalf("AddCommand(%q): %v", c, err)
		}
	}
	return l, st
}

func reload(t *testing.T, st *store.Store) []*task.Task {
	t.Helper()
	tasks, warnings, err := st.Load()
	if err != nil || len(warnings) > 0 {
		t.Fatalf("reload: err=%v warnings=%v", err, warnings)
	}
	return tasks
}

// failingStorage loads a fixed list and refuses every save.
type failingStorage struct {
	tasks []*task.Task
	saves int
}

func (f *failingStorage) Load() ([]*task.Task, []store.LineWarning, error) {
	return f.tasks, nil, nil
}

func (f *failingStorage) Save([]*task.Task) error {
	f.saves++
	return errors.New("disk full")
}

// brokenStorage cannot be read at all.
type brokenStorage struct{ failingStorage }

func (b *brokenStorage) Load() ([]*task.Task, []store.LineWarning, error) {
	return []*task.Task{}, nil, errors.New("permission denied")
}

func TestAddCommand(t *testing.T) {
	l, st := newList(t)

	got, err := l.AddCommand("deadline submit /by 12-05-2024 18:00")
	if err != nil {
		t.Fatalf("AddCommand: %v", err)
	}
	want := MsgAdded + "\n  [D][ ] submit (by: 12-05-2024 18:00)\nNow you have 1 task in the list."
	if got != want {
		t.Errorf("confirmation = %q, want %q", got, want)
	}

	got, err = l.AddCommand("TODO buy milk")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "Now you have 2 tasks in the list.") {
		t.Errorf("confirmation = %q", got)
	}

	saved := reload(t, st)
	if len(saved) != 2 || saved[0].String() != "[D][ ] submit (by: 12-05-2024 18:00)" {
		t.Errorf("saved = %v", saved)
	}
}

func TestAddCommandRejects(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"missing description", "todo"},
		{"blank description", "todo    "},
		{"unknown type", "chore wash dishes"},
		{"deadline without date", "deadline submit /by tomorrow"},
		{"deadline without separator", "deadline submit"},
		{"event without end", "event sync /from 01-01-2024 09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, st := newList(t, "todo existing")

			_, err := l.AddCommand(tt.command)
			if !clierr.HasCode(err, clierr.InvalidArgument) {
				t.Fatalf("error = %v, want INVALID_ARGUMENT", err)
			}
			if l.Len() != 1 {
				t.Errorf("list changed on rejected add: %d tasks", l.Len())
			}
			if len(reload(t, st)) != 1 {
				t.Error("file changed on rejected add")
			}
		})
	}
}

func TestList(t *testing.T) {
	l, _ := newList(t)
	if got := l.List(); got != MsgEmptyList {
		t.Errorf("empty List() = %q", got)
	}

	l, _ = newList(t, "todo buy milk", "event sync /from 01-01-2024 09:00 /to 01-01-2024 10:00")
	want := MsgListHeader + "\n" +
		"1.[T][ ] buy milk\n" +
		"2.[E][ ] sync (from: 01-01-2024 09:00 to: 01-01-2024 10:00)"
	if got := l.List(); got != want {
		t.Errorf("List() = %q, want %q", got, want)
	}
}

func TestMarkDoneIsIdempotent(t *testing.T) {
	l, st := newList(t, "todo buy milk")

	first, err := l.MarkDone(1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.MarkDone(1)
	if err != nil {
		t.Fatalf("second MarkDone should succeed: %v", err)
	}
	if first != second || first != MsgMarked+"\n  [T][X] buy milk" {
		t.Errorf("confirmations = %q / %q", first, second)
	}
	if saved := reload(t, st); !saved[0].Done {
		t.Error("done flag not persisted")
	}

	got, err := l.MarkUndone(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != MsgUnmarked+"\n  [T][ ] buy milk" {
		t.Errorf("MarkUndone = %q", got)
	}
	if saved := reload(t, st); saved[0].Done {
		t.Error("undone flag not persisted")
	}
}

func TestIndexBounds(t *testing.T) {
	l, st := newList(t, "todo a", "todo b")
	size := l.Len()

	ops := map[string]func(int) (string, error){
		"MarkDone":   l.MarkDone,
		"MarkUndone": l.MarkUndone,
		"Delete":     l.Delete,
	}
	for name, op := range ops {
		for _, index := range []int{0, size + 1, -1} {
			if _, err := op(index); !clierr.HasCode(err, clierr.IllegalIndex) {
				t.Errorf("%s(%d) error = %v, want ILLEGAL_INDEX", name, index, err)
			}
		}
	}

	if l.Len() != size {
		t.Errorf("list size changed to %d", l.Len())
	}
	for _, saved := range reload(t, st) {
		if saved.Done {
			t.Errorf("task %q mutated by rejected call", saved)
		}
	}
}

func TestDeleteShiftsIndices(t *testing.T) {
	l, st := newList(t, "todo first", "todo second", "todo third")

	got, err := l.Delete(2)
	if err != nil {
		t.Fatal(err)
	}
	want := MsgRemoved + "\n  [T][ ] second\nNow you have 2 tasks in the list."
	if got != want {
		t.Errorf("Delete = %q, want %q", got, want)
	}

	if _, err := l.MarkDone(2); err != nil {
		t.Fatal(err)
	}
	tasks := l.Tasks()
	if tasks[1].Description != "third" || !tasks[1].Done {
		t.Errorf("MarkDone(2) after delete hit %q", tasks[1])
	}
	if tasks[0].Done {
		t.Error("first task should be untouched")
	}

	saved := reload(t, st)
	if len(saved) != 2 || saved[1].String() != "[T][X] third" {
		t.Errorf("saved = %v", saved)
	}
}

func TestDeleteAll(t *testing.T) {
	l, st := newList(t, "todo a", "todo b")
	l.DeleteAll()

	if l.Len() != 0 {
		t.Errorf("Len() = %d after DeleteAll", l.Len())
	}
	if len(reload(t, st)) != 0 {
		t.Error("file not emptied")
	}

	l.DeleteAll()
	if l.List() != MsgEmptyList {
		t.Error("DeleteAll on an empty list should leave it empty")
	}
}

func TestFind(t *testing.T) {
	empty, _ := newList(t)
	if got := empty.Find("buy"); got != MsgNoTasks {
		t.Errorf("Find on empty list = %q, want %q", got, MsgNoTasks)
	}

	l, _ := newList(t, "todo buy milk", "todo call mom", "todo buy bread")

	want := MsgFindHeader + "\n1.[T][ ] buy milk\n2.[T][ ] buy bread"
	if got := l.Find("buy"); got != want {
		t.Errorf("Find(buy) = %q, want %q", got, want)
	}
	if got := l.Find("xyz"); got != MsgNoMatches {
		t.Errorf("Find(xyz) = %q, want %q", got, MsgNoMatches)
	}
	if got := l.Find("Buy"); got != MsgNoMatches {
		t.Errorf("Find is case-sensitive, got %q", got)
	}
}

func TestFindIgnoresDates(t *testing.T) {
	l, _ := newList(t, "deadline report /by 12-05-2024 18:00")
	if got := l.Find("2024"); got != MsgNoMatches {
		t.Errorf("Find should match descriptions only, got %q", got)
	}
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	var logs bytes.Buffer
	fs := &failingStorage{tasks: []*task.Task{task.NewToDo("keep me")}}
	l := Open(fs, log.New(&logs))

	if _, err := l.AddCommand("todo new"); err != nil {
		t.Fatalf("save failure must not fail the operation: %v", err)
	}
	if _, err := l.MarkDone(1); err != nil {
		t.Fatal(err)
	}

	if l.Len() != 2 || !l.Tasks()[0].Done {
		t.Errorf("in-memory mutation was rolled back: %v", l.Tasks())
	}
	if fs.saves != 2 {
		t.Errorf("saves = %d, want 2", fs.saves)
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Errorf("save failure not logged: %q", logs.String())
	}
}

func TestOpenRecoversFromLoadFailure(t *testing.T) {
	var logs bytes.Buffer
	l := Open(&brokenStorage{}, log.New(&logs))

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if !strings.Contains(logs.String(), "permission denied") {
		t.Errorf("load failure not logged: %q", logs.String())
	}
	if _, err := l.AddCommand("todo still works"); err != nil {
		t.Fatal(err)
	}
}

func TestOpenLogsMalformedLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, dataPath, []byte("[T][ ] ok\ngarbage\n[Z][ ] unknown\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	l := Open(store.New(fs, dataPath), log.New(&logs))

	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if got := strings.Count(logs.String(), "skipping malformed task line"); got != 1 {
		t.Errorf("expected exactly one malformed-line warning, got %d in %q", got, logs.String())
	}
}

func TestParseIndex(t *testing.T) {
	if got, err := ParseIndex(" 3 "); err != nil || got != 3 {
		t.Errorf("ParseIndex(3) = %d, %v", got, err)
	}
	if got, err := ParseIndex("-1"); err != nil || got != -1 {
		t.Errorf("ParseIndex(-1) = %d, %v; range is checked by the operation", got, err)
	}
	if _, err := ParseIndex("two"); !clierr.HasCode(err, clierr.InvalidArgument) {
		t.Errorf("ParseIndex(two) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestReopenKeepsVeryLongTask(t *testing.T) {
	long := "todo " + strings.Repeat("a", 70000)
	_, st := newList(t, "todo keep one", "todo keep two", long)

	reopened := Open(st, quietLogger())
	if reopened.Len() != 3 {
		t.Fatalf("reopened list has %d tasks, want 3", reopened.Len())
	}
	if _, err := reopened.AddCommand("todo one more"); err != nil {
		t.Fatal(err)
	}
	if got := reload(t, st); len(got) != 4 {
		t.Fatalf("file holds %d tasks after the next add, want 4", len(got))
	}
}

func TestAddRejectsLineBreaks(t *testing.T) {
	l, st := newList(t)

	_, err := l.Add("todo", "a\n[T][X] injected")
	if !clierr.HasCode(err, clierr.InvalidArgument) {
		t.Fatalf("Add = %v, want INVALID_ARGUMENT", err)
	}
	if l.Len() != 0 || len(reload(t, st)) != 0 {
		t.Errorf("rejected task was stored")
	}
}
