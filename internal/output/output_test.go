package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		json       bool
		table      bool
		configured string
		want       Format
	}{
		{"default", false, false, "", FormatText},
		{"json flag", true, false, "table", FormatJSON},
		{"table flag", false, true, "json", FormatTable},
		{"configured json", false, false, "json", FormatJSON},
		{"configured table", false, false, "table", FormatTable},
		{"configured text", false, false, "text", FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.json, tt.table, tt.configured); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONIndexedTasks(t *testing.T) {
	deadline := task.NewDeadline("submit", datetime.New(2024, time.May, 12, 18, 0))
	deadline.MarkDone()

	var buf bytes.Buffer
	if err := JSON(&buf, Indexed([]*task.Task{task.NewToDo("buy milk"), deadline})); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries", len(decoded))
	}
	if decoded[0]["index"] != float64(1) || decoded[0]["kind"] != "todo" || decoded[0]["done"] != false {
		t.Errorf("first entry = %v", decoded[0])
	}
	if _, ok := decoded[0]["by"]; ok {
		t.Error("todo should omit by")
	}
	if decoded[1]["by"] != "12-05-2024 18:00" || decoded[1]["done"] != true {
		t.Errorf("second entry = %v", decoded[1])
	}
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "ILLEGAL_INDEX", "out of range", map[string]any{"index": 9})

	var resp ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "ILLEGAL_INDEX" || resp.Error != "out of range" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestTaskTable(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	TaskTable(&buf, Indexed([]*task.Task{
		task.NewToDo("buy milk"),
		task.NewEvent("sync", datetime.New(2024, time.January, 1, 9, 0), datetime.New(2024, time.January, 1, 10, 0)),
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "DESCRIPTION") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.Contains(lines[1], "buy milk") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "01-01-2024 09:00 → 01-01-2024 10:00") {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestTaskTableEmpty(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	TaskTable(&buf, nil)
	if strings.TrimSpace(buf.String()) != "No tasks found." {
		t.Errorf("empty table = %q", buf.String())
	}
}

func TestTaskTableKeepsListNumbers(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	TaskTable(&buf, []IndexedTask{{Index: 7, Task: task.NewToDo("water plants")}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "7 ") {
		t.Errorf("table = %q", buf.String())
	}
}

func TestNumbered(t *testing.T) {
	var buf bytes.Buffer
	Numbered(&buf, []IndexedTask{
		{Index: 2, Task: task.NewToDo("b")},
		{Index: 5, Task: task.NewToDo("e")},
	})
	if got, want := buf.String(), "2.[T][ ] b\n5.[T][ ] e\n"; got != want {
		t.Errorf("Numbered = %q, want %q", got, want)
	}
}
