// Package render formats a computed changeset as a sectioned, optionally
// colorized plain-text report.
package render

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/calvinalkan/tododiff/internal/changes"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

var (
	newStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	postponedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	removedRunStyle = lipgloss.NewStyle().Background(lipgloss.Color("1"))
	addedRunStyle   = lipgloss.NewStyle().Background(lipgloss.Color("2"))
)

// Changeset renders the report. Sections appear in fixed order (new,
// deleted, completed, changed), each only when non-empty; an empty
// changeset renders as a single "No changes." line.
func Changeset(changeset changes.Changeset, colorize bool) string {
	var report section

	categoryNew, completedNew := partitionNew(changeset.New)
	categoryCompleted := completedEntries(changeset.Changed, completedNew)

	if len(categoryNew) > 0 {
		report.header("New tasks")
		report.blank()

		for _, task := range categoryNew {
			report.taskLine(task, newStyle, colorize)
		}
	}

	if deleted := deletedTasks(changeset.Changed); len(deleted) > 0 {
		report.header("Deleted tasks")
		report.blank()

		for _, task := range deleted {
			report.taskLine(task, deletedStyle, colorize)
		}
	}

	if len(categoryCompleted) > 0 {
		report.header("Completed tasks")

		for _, entry := range categoryCompleted {
			report.blank()

			style := completedStyle
			if entry.HasRecurrence() {
				style = newStyle
			}

			report.taskLine(entry.Original, style, colorize)
			report.editLines(entry, colorize)
		}
	}

	if categoryChanged := changedEntries(changeset.Changed); len(categoryChanged) > 0 {
		report.header("Changed tasks")

		for _, entry := range categoryChanged {
			report.blank()

			if entry.HasPostponement() {
				report.taskLine(entry.Original, postponedStyle, colorize)
			} else {
				report.plainTaskLine(entry.Original)
			}

			report.editLines(entry, colorize)
		}
	}

	if report.empty() {
		return "No changes.\n"
	}

	return report.String()
}

// partitionNew sorts the new tasks by creation date and splits them into
// the pending ones and the already-completed ones, which render as
// created-and-completed entries instead.
func partitionNew(newTasks []todotxt.Task) ([]todotxt.Task, []todotxt.Task) {
	ordered := slices.Clone(newTasks)
	slices.SortStableFunc(ordered, func(a, b todotxt.Task) int {
		return a.CreateDate.Compare(b.CreateDate)
	})

	var pending, completed []todotxt.Task

	for _, task := range ordered {
		if task.Completed {
			completed = append(completed, task)
		} else {
			pending = append(pending, task)
		}
	}

	return pending, completed
}

func deletedTasks(changed []changes.ChangedTask) []todotxt.Task {
	var deleted []todotxt.Task

	for _, entry := range changed {
		if entry.Kind == changes.DeltaDeleted {
			deleted = append(deleted, entry.Original)
		}
	}

	return deleted
}

// completedEntries collects the changed entries that recurred or were
// completed, then appends one synthesized entry per new-and-already-
// completed task, described as created from its uncompleted twin.
func completedEntries(changed []changes.ChangedTask, completedNew []todotxt.Task) []changes.ChangedTask {
	var entries []changes.ChangedTask

	for _, entry := range changed {
		if entry.HasRecurrence() || entry.HasCompletion() {
			entries = append(entries, entry)
		}
	}

	for _, task := range completedNew {
		twin := task.Uncompleted()

		edits := []changes.Edit{changes.Created()}
		edits = append(edits, changes.Between(twin, task, true)...)

		entries = append(entries, changes.ChangedTask{
			Original: twin,
			Kind:     changes.DeltaChanged,
			Edits:    edits,
		})
	}

	return entries
}

func changedEntries(changed []changes.ChangedTask) []changes.ChangedTask {
	var entries []changes.ChangedTask

	for _, entry := range changed {
		if entry.Kind == changes.DeltaDeleted || entry.HasRecurrence() || entry.HasCompletion() {
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

// section accumulates report lines, inserting one blank line between
// consecutive headers.
type section struct {
	lines   []string
	started bool
}

func (s *section) header(title string) {
	if s.started {
		s.blank()
	}

	s.started = true
	s.lines = append(s.lines, title, strings.Repeat("-", len(title)))
}

func (s *section) blank() {
	s.lines = append(s.lines, "")
}

func (s *section) taskLine(task todotxt.Task, style lipgloss.Style, colorize bool) {
	line := task.String()
	if colorize {
		line = style.Render(line)
	}

	s.lines = append(s.lines, " → "+line)
}

func (s *section) plainTaskLine(task todotxt.Task) {
	s.lines = append(s.lines, " → "+task.String())
}

func (s *section) editLines(entry changes.ChangedTask, colorize bool) {
	for _, list := range entry.EditLists() {
		var parts []string
		for i, edit := range list {
			text := editText(edit, colorize)
			if i == 0 {
				text = capitalize(text)
			}

			parts = append(parts, text)
		}

		s.lines = append(s.lines, "    → "+joinList(parts))
	}
}

func (s *section) empty() bool { return len(s.lines) == 0 }

func (s *section) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}

func editText(edit changes.Edit, colorize bool) string {
	switch edit.Kind {
	case changes.EditCreated:
		return "created"
	case changes.EditCopied:
		return "copied"
	case changes.EditRecurredStrict:
		return "recurred (strict)"
	case changes.EditRecurredFrom:
		return fmt.Sprintf("recurred (from %s)", edit.Date)
	case changes.EditFinishedAt:
		return fmt.Sprintf("completed on %s", edit.Date)
	case changes.EditPostponedStrictBy:
		return fmt.Sprintf("postponed (strict) by %d days", edit.Days)
	case changes.EditFinished:
		if edit.Completed {
			return "completed"
		}

		return "uncompleted"
	case changes.EditPriority:
		return priorityText(edit)
	case changes.EditFinishDate:
		return dateFieldText("completion date", edit)
	case changes.EditCreateDate:
		return dateFieldText("creation date", edit)
	case changes.EditSubject:
		return subjectText(edit, colorize)
	case changes.EditDueDate:
		return dueDateText(edit)
	case changes.EditThresholdDate:
		return dateFieldText("threshold date", edit)
	case changes.EditTags:
		return tagsText(edit)
	default:
		return ""
	}
}

func priorityText(edit changes.Edit) string {
	after, hasAfter := edit.PriorityAfter.Letter()

	switch {
	case !hasAfter:
		return "removed priority"
	default:
		if _, hasBefore := edit.PriorityBefore.Letter(); !hasBefore {
			return fmt.Sprintf("added priority (%c)", after)
		}

		return fmt.Sprintf("set priority to (%c)", after)
	}
}

func dateFieldText(field string, edit changes.Edit) string {
	switch {
	case edit.DateAfter.IsZero():
		return "removed " + field
	case edit.DateBefore.IsZero():
		return fmt.Sprintf("added %s %s", field, edit.DateAfter)
	default:
		return fmt.Sprintf("set %s to %s", field, edit.DateAfter)
	}
}

func dueDateText(edit changes.Edit) string {
	switch {
	case edit.DateAfter.IsZero():
		return "removed due date"
	case edit.DateBefore.IsZero():
		return fmt.Sprintf("added due date %s", edit.DateAfter)
	default:
		return fmt.Sprintf("postponed to %s", edit.DateAfter)
	}
}

// subjectText shows a rune-level diff of the subject rewrite when
// colorized, the plain after-value otherwise.
func subjectText(edit changes.Edit, colorize bool) string {
	if !colorize {
		return fmt.Sprintf("set subject to ‘%s’", edit.SubjectAfter)
	}

	var body strings.Builder

	dmp := diffmatchpatch.New()
	for _, diff := range dmp.DiffMain(edit.SubjectBefore, edit.SubjectAfter, false) {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			body.WriteString(removedRunStyle.Render(diff.Text))
		case diffmatchpatch.DiffInsert:
			body.WriteString(addedRunStyle.Render(diff.Text))
		default:
			body.WriteString(diff.Text)
		}
	}

	return fmt.Sprintf("changed subject ‘%s’", body.String())
}

func tagsText(edit changes.Edit) string {
	var out strings.Builder

	writeTagList := func(verb string, tags []todotxt.Tag) {
		if len(tags) == 1 {
			out.WriteString(verb + " tag ")
		} else {
			out.WriteString(verb + " tags ")
		}

		parts := make([]string, len(tags))
		for i, tag := range tags {
			parts[i] = tag.Key + ":" + tag.Value
		}

		out.WriteString(joinList(parts))
	}

	if len(edit.TagsRemoved) > 0 {
		writeTagList("removed", edit.TagsRemoved)
	}

	if len(edit.TagsRemoved) > 0 && len(edit.TagsAdded) > 0 {
		out.WriteString(" and ")
	}

	if len(edit.TagsAdded) > 0 {
		writeTagList("added", edit.TagsAdded)
	}

	return out.String()
}

// joinList joins items prose-style: commas between all but the last
// pair, which gets "and".
func joinList(items []string) string {
	var out strings.Builder

	for i, item := range items {
		switch {
		case i == 0:
		case i == len(items)-1:
			out.WriteString(" and ")
		default:
			out.WriteString(", ")
		}

		out.WriteString(item)
	}

	return out.String()
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
