// Package todotxt implements the task data model and the line-oriented
// todo.txt codec used by the diff and merge engines.
package todotxt

import "slices"

// Priority is a task priority rank: 0 maps to letter A, 25 to Z.
// Ranks of 26 and above mean "no priority".
type Priority uint8

// NoPriority is the rank of a task without a priority letter.
const NoPriority Priority = 26

// Letter returns the priority letter for ranks 0..25.
func (p Priority) Letter() (byte, bool) {
	if p < NoPriority {
		return 'A' + byte(p), true
	}

	return 0, false
}

// Tag is one key:value pair from a task line. Tags keep their original
// order and keys may repeat.
type Tag struct {
	Key   string
	Value string
}

// Task is one todo.txt entry. Tasks carry no identifier: two tasks are
// "the same" only through the matching relation computed per run, never
// through state stored on the task. Treat values as immutable.
type Task struct {
	Subject       string
	Priority      Priority
	CreateDate    Date
	Completed     bool
	FinishDate    Date
	DueDate       Date
	ThresholdDate Date
	Tags          []Tag
	Recurrence    *Recurrence
}

// Equal reports full structural equality, including the recurrence
// descriptor and tag order.
func (t Task) Equal(other Task) bool {
	if t.Subject != other.Subject ||
		t.Priority != other.Priority ||
		t.CreateDate != other.CreateDate ||
		t.Completed != other.Completed ||
		t.FinishDate != other.FinishDate ||
		t.DueDate != other.DueDate ||
		t.ThresholdDate != other.ThresholdDate {
		return false
	}

	if !slices.Equal(t.Tags, other.Tags) {
		return false
	}

	switch {
	case t.Recurrence == nil && other.Recurrence == nil:
		return true
	case t.Recurrence == nil || other.Recurrence == nil:
		return false
	default:
		return *t.Recurrence == *other.Recurrence
	}
}

// Uncompleted returns a copy of the task with completion state cleared.
func (t Task) Uncompleted() Task {
	t.Completed = false
	t.FinishDate = Date{}

	return t
}
