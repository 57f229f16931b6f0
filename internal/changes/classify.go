package changes

import (
	"slices"

	"github.com/calvinalkan/tododiff/internal/todotxt"
)

// Between classifies the semantic edits that turn from into to. isFirst
// distinguishes the first element of a recurrence chain, which is
// compared directly against the original task, from later elements:
// only those may be recognized as recurrence steps or copies.
//
// Precedence runs from composite to raw. A recognized recurrence
// absorbs the date fields it explains, a completion-with-date absorbs
// the completion flag and finish date, and a strict postponement
// absorbs the due and threshold shifts. Whatever no composite edit
// explains is reported as per-field edits, subject last.
func Between(from, to todotxt.Task, isFirst bool) []Edit {
	var edits []Edit

	recurred := false

	if !isFirst {
		if edit, ok := recurrenceStep(from, to); ok {
			edits = append(edits, edit)
			recurred = true
		}
	}

	if !recurred && !isFirst {
		edits = append(edits, Copied())
	}

	finishedAt := false
	if !from.Completed && to.Completed && from.FinishDate.IsZero() && !to.FinishDate.IsZero() {
		edits = append(edits, FinishedAt(to.FinishDate))
		finishedAt = true
	}

	postponed := false

	if !recurred && from.DueDate != to.DueDate {
		if days, ok := dueShift(from, to); ok {
			edits = append(edits, PostponedStrictBy(days))
			postponed = true
		}
	}

	if !recurred && !postponed && from.ThresholdDate != to.ThresholdDate {
		edits = append(edits, ThresholdDateEdit(from.ThresholdDate, to.ThresholdDate))
	}

	if !recurred && !postponed && from.DueDate != to.DueDate {
		edits = append(edits, DueDateEdit(from.DueDate, to.DueDate))
	}

	if !finishedAt && from.Completed != to.Completed {
		edits = append(edits, Finished(to.Completed))
	}

	if !finishedAt && from.FinishDate != to.FinishDate {
		edits = append(edits, FinishDateEdit(from.FinishDate, to.FinishDate))
	}

	if from.Priority != to.Priority {
		// Dropping the priority on completion is conventional, so a
		// completion-with-date swallows that particular change.
		if _, hasLetter := to.Priority.Letter(); !(finishedAt && !hasLetter) {
			edits = append(edits, PriorityEdit(from.Priority, to.Priority))
		}
	}

	if !recurred && from.CreateDate != to.CreateDate {
		edits = append(edits, CreateDateEdit(from.CreateDate, to.CreateDate))
	}

	if removed, added := tagDiff(from.Tags, to.Tags); len(removed)+len(added) > 0 {
		edits = append(edits, TagsEdit(removed, added))
	}

	if from.Subject != to.Subject {
		edits = append(edits, SubjectEdit(from.Subject, to.Subject))
	}

	return edits
}

// recurrenceStep recognizes to as one recurrence interval after from.
// Both sides must carry the identical recurrence descriptor and a due
// date, and the shift must be a consistent schedule move. Strict
// recurrences advance from the previous due date, relative ones from
// the new instance's creation date.
func recurrenceStep(from, to todotxt.Task) (Edit, bool) {
	if from.Recurrence == nil || to.Recurrence == nil || *from.Recurrence != *to.Recurrence {
		return Edit{}, false
	}

	if from.DueDate.IsZero() || to.DueDate.IsZero() {
		return Edit{}, false
	}

	if _, ok := dueShift(from, to); !ok {
		return Edit{}, false
	}

	rec := *from.Recurrence
	if rec.Strict {
		if rec.Apply(from.DueDate) == to.DueDate {
			return RecurredStrict(), true
		}

		return Edit{}, false
	}

	if !to.CreateDate.IsZero() && rec.Apply(to.CreateDate) == to.DueDate {
		return RecurredFrom(to.CreateDate), true
	}

	return Edit{}, false
}

// dueShift returns the signed day count both schedule dates moved by,
// if that is well defined: both due dates present, and the threshold
// dates either both absent or moved by the same amount.
func dueShift(from, to todotxt.Task) (int, bool) {
	if from.DueDate.IsZero() || to.DueDate.IsZero() {
		return 0, false
	}

	dueDelta := from.DueDate.DaysUntil(to.DueDate)

	switch {
	case from.ThresholdDate.IsZero() && to.ThresholdDate.IsZero():
		return dueDelta, true
	case !from.ThresholdDate.IsZero() && !to.ThresholdDate.IsZero():
		if from.ThresholdDate.DaysUntil(to.ThresholdDate) == dueDelta {
			return dueDelta, true
		}
	}

	return 0, false
}

// tagDiff cancels tag pairs present on both sides and returns what is
// left, preserving each side's order. Duplicate tags cancel one-for-one.
func tagDiff(from, to []todotxt.Tag) ([]todotxt.Tag, []todotxt.Tag) {
	var removed []todotxt.Tag

	added := slices.Clone(to)

	for _, tag := range from {
		if i := slices.Index(added, tag); i >= 0 {
			added = slices.Delete(added, i, i+1)
			continue
		}

		removed = append(removed, tag)
	}

	return removed, added
}
