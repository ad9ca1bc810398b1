package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/taskline/internal/datetime"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

// ErrMalformed marks a record line that does not have the [K][F] shape
// or whose date suffix cannot be decoded.
var ErrMalformed = errors.New("malformed record line")

const (
	byMarker   = " (by: "
	fromMarker = " (from: "
	toMarker   = " to: "
)

// lineBreaks flattens CR and LF so one task always occupies one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// EncodeLine renders t as a record line.
func EncodeLine(t *task.Task) string {
	return lineBreaks.Replace(t.String())
}

// DecodeLine parses one record line such as "[D][X] report (by: 12-05-2024 18:00)".
// It returns (nil, nil) when the type letter is not one of T, D or E.
func DecodeLine(line string) (*task.Task, error) {
	parts := strings.SplitN(line, "]", 3) //nolint:mnd // type, flag, tail
	if len(parts) < 3 {                   //nolint:mnd // type, flag, tail
		return nil, fmt.Errorf("%w: expected [type][done] prefix", ErrMalformed)
	}
	if parts[0] == "" || len(parts[1]) < 2 { //nolint:mnd // "[" plus flag
		return nil, fmt.Errorf("%w: empty type or done field", ErrMalformed)
	}

	letter := parts[0][len(parts[0])-1]
	done := parts[1][1] == 'X'
	tail := strings.TrimSpace(parts[2])

	kind, ok := task.KindFromLetter(letter)
	if !ok {
		return nil, nil
	}

	t, err := decodeTail(kind, tail)
	if err != nil {
		return nil, err
	}
	if t.Description == "" {
		return nil, fmt.Errorf("%w: empty description", ErrMalformed)
	}
	t.Done = done
	return t, nil
}

func decodeTail(kind task.Kind, tail string) (*task.Task, error) {
	switch kind {
	case task.KindDeadline:
		desc, rest, err := cutSuffix(tail, byMarker)
		if err != nil {
			return nil, err
		}
		by, err := parseStamp(rest)
		if err != nil {
			return nil, err
		}
		return task.NewDeadline(desc, by), nil

	case task.KindEvent:
		desc, rest, err := cutSuffix(tail, fromMarker)
		if err != nil {
			return nil, err
		}
		start, end, found := strings.Cut(rest, toMarker)
		if !found {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformed, strings.TrimSpace(toMarker))
		}
		from, err := parseStamp(start)
		if err != nil {
			return nil, err
		}
		to, err := parseStamp(end)
		if err != nil {
			return nil, err
		}
		return task.NewEvent(desc, from, to), nil

	default:
		return task.NewToDo(tail), nil
	}
}

// cutSuffix splits tail at the last occurrence of marker and strips the closing
// parenthesis, so descriptions that happen to contain the marker still round-trip.
func cutSuffix(tail, marker string) (desc, inner string, err error) {
	idx := strings.LastIndex(tail, marker)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: missing %q", ErrMalformed, strings.TrimSpace(marker))
	}
	rest := tail[idx+len(marker):]
	if !strings.HasSuffix(rest, ")") {
		return "", "", fmt.Errorf("%w: missing closing parenthesis", ErrMalformed)
	}
	return strings.TrimSpace(tail[:idx]), strings.TrimSuffix(rest, ")"), nil
}

func parseStamp(s string) (datetime.DateTime, error) {
	d, err := datetime.ParseStored(s)
	if err != nil {
		return datetime.DateTime{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return d, nil
}
