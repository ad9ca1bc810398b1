package task

// MarkDone sets the done flag. Marking a done task again is a no-op.
func (t *Task) MarkDone() {
	t.Done = true
}

// MarkUndone clears the done flag. Idempotent like MarkDone.
func (t *Task) MarkUndone() {
	t.Done = false
}
