package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

const dataPath = "/data/tasks.txt"

func sampleTasks() []*task.Task {
	report := task.NewDeadline("submit report", datetime.New(2024, time.May, 12, 18, 0))
	report.MarkDone()
	return []*task.Task{
		task.NewToDo("buy milk"),
		report,
		task.NewEvent("team sync",
			datetime.New(2024, time.January, 1, 9, 0),
			datetime.New(2024, time.January, 1, 10, 0)),
		task.NewDeadline("odd (by: name", datetime.New(2025, time.March, 3, 7, 30)),
	}
}

func TestLoadCreatesMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)

	tasks, warnings, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	exists, err := afero.Exists(fs, dataPath)
	if err != nil || !exists {
		t.Errorf("expected %s to be created (exists=%v, err=%v)", dataPath, exists, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)
	want := sampleTasks()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, warnings, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Kind != want[i].Kind ||
			got[i].Description != want[i].Description ||
			got[i].Done != want[i].Done ||
			got[i].String() != want[i].String() {
			t.Errorf("task %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSaveWritesRecordLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)

	if err := s.Save(sampleTasks()[:3]); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fs, dataPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "[T][ ] buy milk\n" +
		"[D][X] submit report (by: 12-05-2024 18:00)\n" +
		"[E][ ] team sync (from: 01-01-2024 09:00 to: 01-01-2024 10:00)\n"
	if string(data) != want {
		t.Errorf("file contents:\n%s\nwant:\n%s", data, want)
	}
}

func TestSaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)

	if err := s.Save(sampleTasks()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(nil); err != nil {
		t.Fatal(err)
	}
	data, _ := afero.ReadFile(fs, dataPath)
	if len(data) != 0 {
		t.Errorf("expected empty file after saving no tasks, got %q", data)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[T][ ] buy milk\n" +
		"no brackets at all\n"
	if err := afero.WriteFile(fs, dataPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	tasks, warnings, err := New(fs, dataPath).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "buy milk" {
		t.Fatalf("tasks = %v, want only buy milk", tasks)
	}
	if len(warnings) != 1 || warnings[0].Line != 2 {
		t.Fatalf("warnings = %v, want one for line 2", warnings)
	}
	if !errors.Is(warnings[0].Err, ErrMalformed) {
		t.Errorf("warning error = %v, want ErrMalformed", warnings[0].Err)
	}
}

func TestLoadDropsUnknownTypeSilently(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[Z][ ] mystery\n[T][X] read book\n"
	if err := afero.WriteFile(fs, dataPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	tasks, warnings, err := New(fs, dataPath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unknown type letter must not warn, got %v", warnings)
	}
	if len(tasks) != 1 || !tasks[0].Done || tasks[0].Description != "read book" {
		t.Errorf("tasks = %v", tasks)
	}
}

func TestLoadReadFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	tasks, _, err := New(fs, dataPath).Load()
	if err == nil {
		t.Fatal("expected error from read-only filesystem")
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty slice on failure, got %#v", tasks)
	}
}

func TestSaveFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if err := New(fs, dataPath).Save(sampleTasks()); err == nil {
		t.Fatal("expected error saving to read-only filesystem")
	}
}

func TestDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)
	if err := s.Save(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if exists, _ := afero.Exists(fs, dataPath); exists {
		t.Error("file still exists after Delete")
	}
	if err := s.Delete(); err == nil {
		t.Error("expected error deleting a missing file")
	}
}

func TestLoadLongLine(t *testing.T) {
	s := New(afero.NewMemMapFs(), dataPath)
	long := strings.Repeat("a", 70000)
	want := []*task.Task{task.NewToDo("keep one"), task.NewToDo(long), task.NewToDo("keep two")}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, warnings, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(got) != 3 || got[0].Description != "keep one" || got[1].Description != long || got[2].Description != "keep two" {
		t.Fatalf("loaded %d tasks, want all 3 intact", len(got))
	}
}

func TestLoadCRLF(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[T][ ] buy milk\r\n[D][X] submit (by: 12-05-2024 18:00)\r\n"
	if err := afero.WriteFile(fs, dataPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, warnings, err := New(fs, dataPath).Load()
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Load: %v, warnings %v", err, warnings)
	}
	if len(got) != 2 || got[0].Description != "buy milk" || !got[1].Done {
		t.Fatalf("unexpected tasks: %v", got)
	}
}

func TestSaveKeepsOneLinePerTask(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataPath)

	if err := s.Save([]*task.Task{task.NewToDo("a\n[T][X] injected\r\nmore")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("saved 1 task, loaded %d", len(got))
	}
	if got[0].Done || got[0].Description != "a [T][X] injected more" {
		t.Errorf("task = %q", got[0])
	}
}
