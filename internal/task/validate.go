package task

import (
	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
)

var usages = map[Kind]string{
	KindToDo:     "todo <description>",
	KindDeadline: "deadline <description> /by <date> <time>",
	KindEvent:    "event <description> /from <date> <time> /to <date> <time>",
}

// Usage returns the command syntax for a kind.
func Usage(k Kind) string {
	return usages[k]
}

// ValidateKind returns a CLIError for an unrecognised task type token.
func ValidateKind(token string) *clierr.Error {
	return clierr.Newf(clierr.InvalidArgument, "unknown task type %q (expected todo, deadline or event)", token).
		WithDetails(map[string]any{"type": token})
}

// ValidateFormat returns a CLIError for details that do not split into the expected parts.
func ValidateFormat(k Kind) *clierr.Error {
	return clierr.Newf(clierr.InvalidArgument, "the %s format is incorrect; it should be: %s", k, Usage(k)).
		WithDetails(map[string]any{"type": k.String(), "usage": Usage(k)})
}

// ValidateDescription returns a CLIError for an empty task description.
func ValidateDescription(k Kind) *clierr.Error {
	return clierr.Newf(clierr.InvalidArgument, "the description of a %s cannot be empty", k).
		WithDetails(map[string]any{"type": k.String()})
}

// ValidateDateTime returns a CLIError for a date-time that matches no accepted format.
func ValidateDateTime(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidArgument, "invalid %s date-time: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateSingleLine returns a CLIError for details that span several lines.
// A task is stored as exactly one line of the data file.
func ValidateSingleLine(k Kind) *clierr.Error {
	return clierr.Newf(clierr.InvalidArgument, "a %s cannot contain line breaks", k).
		WithDetails(map[string]any{"type": k.String()})
}
