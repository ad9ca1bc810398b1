package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
)

// Separators between the description and the dates in a command.
const (
	SeparatorBy   = " /by "
	SeparatorFrom = " /from "
	SeparatorTo   = " /to "
)

// builder constructs a task of one kind from the free text after the type token.
type builder func(details string) (*Task, error)

var builders = map[Kind]builder{
	KindToDo:     buildToDo,
	KindDeadline: buildDeadline,
	KindEvent:    buildEvent,
}

// Build constructs a task of the given kind from its details text, e.g.
// "submit report /by 12-05-2024 18:00" for a deadline.
func Build(kind Kind, details string) (*Task, error) {
	build, ok := builders[kind]
	if !ok {
		return nil, ValidateKind(kind.String())
	}
	details = strings.TrimSpace(details)
	if strings.ContainsAny(details, "\r\n") {
		return nil, ValidateSingleLine(kind)
	}
	return build(details)
}

func buildToDo(details string) (*Task, error) {
	if details == "" {
		return nil, ValidateDescription(KindToDo)
	}
	return NewToDo(details), nil
}

func buildDeadline(details string) (*Task, error) {
	parts := strings.Split(details, SeparatorBy)
	if len(parts) != 2 { //nolint:mnd // name and date
		return nil, ValidateFormat(KindDeadline)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, ValidateDescription(KindDeadline)
	}
	by, err := datetime.Parse(parts[1])
	if err != nil {
		return nil, ValidateDateTime("by", parts[1], err)
	}
	return NewDeadline(name, by), nil
}

func buildEvent(details string) (*Task, error) {
	first := strings.Split(details, SeparatorFrom)
	second := strings.Split(first[len(first)-1], SeparatorTo)
	if len(first) != 2 || len(second) != 2 { //nolint:mnd // name, start and end
		return nil, ValidateFormat(KindEvent)
	}

	name := strings.TrimSpace(first[0])
	if name == "" {
		return nil, ValidateDescription(KindEvent)
	}
	from, err := datetime.Parse(second[0])
	if err != nil {
		return nil, ValidateDateTime("from", second[0], err)
	}
	to, err := datetime.Parse(second[1])
	if err != nil {
		return nil, ValidateDateTime("to", second[1], err)
	}
	return NewEvent(name, from, to), nil
}
