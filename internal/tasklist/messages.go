package tasklist

import (
	"fmt"

	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

// Fixed confirmation and listing texts.
const (
	MsgListHeader = "Here are the tasks in your list:"
	MsgEmptyList  = "Your list is empty."
	MsgFindHeader = "Here are the matching tasks in your list:"
	MsgNoTasks    = "There are no tasks in your list."
	MsgNoMatches  = "There are no matching tasks in your list."
	MsgAdded      = "Got it. I've added this task:"
	MsgMarked     = "Nice! I've marked this task as done:"
	MsgUnmarked   = "OK, I've marked this task as not done yet:"
	MsgRemoved    = "Noted. I've removed this task:"
	MsgCleared    = "All tasks have been removed."
)

func addedMessage(t *task.Task, count int) string {
	return MsgAdded + "\n  " + t.String() + "\n" + countMessage(count)
}

func countMessage(count int) string {
	return fmt.Sprintf("Now you have %d %s in the list.", count, plural(count))
}

func plural(count int) string {
	if count == 1 {
		return "task"
	}
	return "tasks"
}
