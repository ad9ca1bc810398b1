// Package shell runs the interactive command loop over a task list.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/twiced-technology-gmbh/taskline/internal/clierr"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

// Greeting and farewell lines.
const (
	Greeting = "Hello! What can I do for you? (type 'help' for commands, 'bye' to quit)"
	Farewell = "Bye. Hope to see you again soon!"
	Prompt   = "> "
)

const (
	initialLineBuffer = 64 * 1024
	maxCommandLength  = 16 * 1024 * 1024
)

const helpText = `Commands:
  list                                   show all tasks
  todo <description>                     add a to-do
  deadline <description> /by <when>      add a deadline
  event <description> /from <when> /to <when>
                                         add an event
  mark <n> | unmark <n>                  set or clear the done flag
  delete <n>                             remove a task
  clear                                  remove every task
  find <keyword>                         search descriptions
  bye                                    quit
Dates: DD-MM-YYYY HH:mm, YYYY-MM-DD HH:mm or DD-Mon-YYYY HH:mm.`

// Shell reads commands line by line and writes replies.
type Shell struct {
	list   *tasklist.List
	out    io.Writer
	prompt bool
}

// New creates a Shell over list writing to out. When prompt is set a prompt
// is printed before each command.
func New(list *tasklist.List, out io.Writer, prompt bool) *Shell {
	return &Shell{list: list, out: out, prompt: prompt}
}

// Run greets, then executes commands from in until "bye" or end of input.
func (s *Shell) Run(in io.Reader) error {
	fmt.Fprintln(s.out, Greeting)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxCommandLength)
	for {
		if s.prompt {
			fmt.Fprint(s.out, Prompt)
		}
		if !scanner.Scan() {
			break
		}
		reply, quit := s.Execute(scanner.Text())
		if reply != "" {
			fmt.Fprintln(s.out, reply)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	fmt.Fprintln(s.out, Farewell)
	return nil
}

// Execute runs one command line and returns the reply text.
// quit is true once the user says bye.
func (s *Shell) Execute(line string) (reply string, quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	keyword, rest := line, ""
	if split := strings.IndexFunc(line, unicode.IsSpace); split >= 0 {
		keyword, rest = line[:split], strings.TrimSpace(line[split:])
	}

	var err error
	switch strings.ToLower(keyword) {
	case "bye", "exit", "quit":
		return Farewell, true
	case "help":
		return helpText, false
	case "list":
		return s.list.List(), false
	case "mark":
		reply, err = s.withIndex(rest, s.list.MarkDone)
	case "unmark":
		reply, err = s.withIndex(rest, s.list.MarkUndone)
	case "delete":
		reply, err = s.withIndex(rest, s.list.Delete)
	case "clear":
		s.list.DeleteAll()
		reply = tasklist.MsgCleared
	case "find":
		if rest == "" {
			err = clierr.New(clierr.InvalidArgument, "find needs a keyword")
		} else {
			reply = s.list.Find(rest)
		}
	case "todo", "deadline", "event":
		reply, err = s.list.AddCommand(line)
	default:
		err = clierr.Newf(clierr.InvalidArgument, "I don't know what %q means (try 'help')", keyword)
	}

	if err != nil {
		return FormatError(err), false
	}
	return reply, false
}

func (s *Shell) withIndex(arg string, op func(int) (string, error)) (string, error) {
	if arg == "" {
		return "", clierr.New(clierr.InvalidArgument, "a task number is required")
	}
	index, err := tasklist.ParseIndex(arg)
	if err != nil {
		return "", err
	}
	return op(index)
}

// FormatError renders an operation failure with a message distinct per error kind.
func FormatError(err error) string {
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		return "Something went wrong: " + err.Error()
	}
	switch cliErr.Code {
	case clierr.IllegalIndex:
		return "That task does not exist: " + cliErr.Message
	case clierr.InvalidArgument:
		return "OOPS!!! " + cliErr.Message
	default:
		return cliErr.Message
	}
}
