package changes

import "github.com/calvinalkan/tododiff/internal/todotxt"

// EditKind identifies one kind of semantic edit between two versions of
// a task.
type EditKind int

// Edit kinds, roughly from most to least specific. The classifier
// prefers the composite kinds (recurrence, completion with date,
// strict postponement) and falls back to per-field edits.
const (
	EditCreated EditKind = iota
	EditCopied
	EditRecurredStrict
	EditRecurredFrom
	EditFinishedAt
	EditPostponedStrictBy
	EditFinished
	EditPriority
	EditFinishDate
	EditCreateDate
	EditSubject
	EditDueDate
	EditThresholdDate
	EditTags
)

// Edit is one semantic edit. Only the fields relevant to Kind are set;
// per-field edits carry before and after values.
type Edit struct {
	Kind EditKind

	Date      todotxt.Date // EditRecurredFrom, EditFinishedAt
	Days      int          // EditPostponedStrictBy
	Completed bool         // EditFinished

	PriorityBefore todotxt.Priority
	PriorityAfter  todotxt.Priority

	DateBefore todotxt.Date // EditFinishDate, EditCreateDate, EditDueDate, EditThresholdDate
	DateAfter  todotxt.Date

	SubjectBefore string
	SubjectAfter  string

	TagsRemoved []todotxt.Tag
	TagsAdded   []todotxt.Tag
}

// Created marks a task that did not exist before.
func Created() Edit { return Edit{Kind: EditCreated} }

// Copied marks a non-first chain element that repeats its predecessor.
func Copied() Edit { return Edit{Kind: EditCopied} }

// RecurredStrict marks a recurrence advanced from the previous due date.
func RecurredStrict() Edit { return Edit{Kind: EditRecurredStrict} }

// RecurredFrom marks a recurrence advanced from the given completion
// date.
func RecurredFrom(date todotxt.Date) Edit {
	return Edit{Kind: EditRecurredFrom, Date: date}
}

// FinishedAt marks a completion together with its recorded date.
func FinishedAt(date todotxt.Date) Edit {
	return Edit{Kind: EditFinishedAt, Date: date}
}

// PostponedStrictBy marks a consistent shift of the task's schedule by
// the given number of days.
func PostponedStrictBy(days int) Edit {
	return Edit{Kind: EditPostponedStrictBy, Days: days}
}

// Finished marks a bare completion flag flip.
func Finished(completed bool) Edit {
	return Edit{Kind: EditFinished, Completed: completed}
}

// PriorityEdit records a priority change.
func PriorityEdit(before, after todotxt.Priority) Edit {
	return Edit{Kind: EditPriority, PriorityBefore: before, PriorityAfter: after}
}

// FinishDateEdit records a completion date change.
func FinishDateEdit(before, after todotxt.Date) Edit {
	return Edit{Kind: EditFinishDate, DateBefore: before, DateAfter: after}
}

// CreateDateEdit records a creation date change.
func CreateDateEdit(before, after todotxt.Date) Edit {
	return Edit{Kind: EditCreateDate, DateBefore: before, DateAfter: after}
}

// SubjectEdit records a subject rewrite.
func SubjectEdit(before, after string) Edit {
	return Edit{Kind: EditSubject, SubjectBefore: before, SubjectAfter: after}
}

// DueDateEdit records a due date change.
func DueDateEdit(before, after todotxt.Date) Edit {
	return Edit{Kind: EditDueDate, DateBefore: before, DateAfter: after}
}

// ThresholdDateEdit records a threshold date change.
func ThresholdDateEdit(before, after todotxt.Date) Edit {
	return Edit{Kind: EditThresholdDate, DateBefore: before, DateAfter: after}
}

// TagsEdit records removed and added tags after cancelling pairs common
// to both sides.
func TagsEdit(removed, added []todotxt.Tag) Edit {
	return Edit{Kind: EditTags, TagsRemoved: removed, TagsAdded: added}
}

// IsRecurrence reports whether the edit describes a recurrence step.
func (e Edit) IsRecurrence() bool {
	return e.Kind == EditRecurredStrict || e.Kind == EditRecurredFrom
}

// IsCompletion reports whether the edit completes the task.
func (e Edit) IsCompletion() bool {
	return e.Kind == EditFinishedAt || (e.Kind == EditFinished && e.Completed)
}

// IsPostponement reports whether the edit moves an existing due date.
func (e Edit) IsPostponement() bool {
	return e.Kind == EditPostponedStrictBy ||
		(e.Kind == EditDueDate && !e.DateBefore.IsZero() && !e.DateAfter.IsZero())
}
