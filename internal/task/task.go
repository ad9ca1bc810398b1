// Package task defines the task model, its construction from free text,
// and its single-line rendering.
package task

import (
	"encoding/json"
	"strings"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
)

// Kind tags the task variant.
type Kind int

const (
	// KindToDo is a plain to-do with no date.
	KindToDo Kind = iota
	// KindDeadline must be done by a point in time.
	KindDeadline
	// KindEvent spans a start and an end time.
	KindEvent
)

var kindNames = map[Kind]string{
	KindToDo:     "todo",
	KindDeadline: "deadline",
	KindEvent:    "event",
}

var kindLetters = map[Kind]byte{
	KindToDo:     'T',
	KindDeadline: 'D',
	KindEvent:    'E',
}

// String returns the command token for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Letter returns the one-letter tag used in rendered lines.
func (k Kind) Letter() byte {
	return kindLetters[k]
}

// MarshalJSON implements json.Marshaler.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ParseKind resolves a command token such as "Deadline" case-insensitively.
func ParseKind(token string) (Kind, error) {
	lower := strings.ToLower(token)
	for k, name := range kindNames {
		if name == lower {
			return k, nil
		}
	}
	return 0, ValidateKind(token)
}

// KindFromLetter maps a rendered type letter back to its Kind.
// ok is false for letters no kind uses.
func KindFromLetter(letter byte) (kind Kind, ok bool) {
	for k, l := range kindLetters {
		if l == letter {
			return k, true
		}
	}
	return 0, false
}

// Task is one entry in a task list.
type Task struct {
	Kind        Kind               `json:"kind"`
	Description string             `json:"description"`
	Done        bool               `json:"done"`
	By          *datetime.DateTime `json:"by,omitempty"`
	From        *datetime.DateTime `json:"from,omitempty"`
	To          *datetime.DateTime `json:"to,omitempty"`
}

// NewToDo creates a pending to-do.
func NewToDo(description string) *Task {
	return &Task{Kind: KindToDo, Description: description}
}

// NewDeadline creates a pending deadline due at by.
func NewDeadline(description string, by datetime.DateTime) *Task {
	return &Task{Kind: KindDeadline, Description: description, By: &by}
}

// NewEvent creates a pending event. to may precede from.
func NewEvent(description string, from, to datetime.DateTime) *Task {
	return &Task{Kind: KindEvent, Description: description, From: &from, To: &to}
}

// String renders the task as "[T][X] description" plus any date suffix.
// The same text is what the data file stores.
func (t *Task) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteByte(t.Kind.Letter())
	b.WriteString("][")
	if t.Done {
		b.WriteByte('X')
	} else {
		b.WriteByte(' ')
	}
	b.WriteString("] ")
	b.WriteString(t.Description)

	switch t.Kind {
	case KindDeadline:
		b.WriteString(" (by: " + stamp(t.By) + ")")
	case KindEvent:
		b.WriteString(" (from: " + stamp(t.From) + " to: " + stamp(t.To) + ")")
	}
	return b.String()
}

func stamp(d *datetime.DateTime) string {
	if d == nil {
		return ""
	}
	return d.String()
}
