// Package changes computes the semantic difference between two
// snapshots of a todo.txt task list. Tasks carry no identifiers, so the
// package first reconstructs which old task each new task descends from
// via a stable matching over subject similarity, then classifies each
// matched pair into semantic edits.
package changes

import (
	"slices"

	"github.com/calvinalkan/tododiff/internal/match"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

// DeltaKind says what became of one before-snapshot task.
type DeltaKind int

// Delta kinds.
const (
	DeltaIdentical DeltaKind = iota
	DeltaDeleted
	DeltaChanged
	DeltaRecurred
)

// MatchedTask pairs one before-snapshot task with its fate in the after
// snapshot. To is set for DeltaIdentical and DeltaChanged; Chain holds
// the recurrence instances, due-date order, for DeltaRecurred.
type MatchedTask struct {
	Original todotxt.Task
	Kind     DeltaKind
	To       todotxt.Task
	Chain    []todotxt.Task
}

// Resulting returns the after-snapshot tasks this entry accounts for.
func (m MatchedTask) Resulting() []todotxt.Task {
	switch m.Kind {
	case DeltaIdentical, DeltaChanged:
		return []todotxt.Task{m.To}
	case DeltaRecurred:
		return m.Chain
	default:
		return nil
	}
}

// MatchTasks matches the after snapshot against the before snapshot and
// returns the genuinely new tasks plus one entry per before task, in
// before order.
//
// After the stable matching, tasks left over on the after side are
// folded into recurrence chains where possible: a leftover joins the
// chain of the closest admissible pending recurring task. Chains that
// attracted no leftover collapse into plain changes.
func MatchTasks(from, to []todotxt.Task, allowedDivergence int) ([]todotxt.Task, []MatchedTask) {
	oracle := taskOracle{from: from, to: to, allowedDivergence: allowedDivergence}
	result := match.Match(len(to), len(from), oracle)

	matched := make([]MatchedTask, len(from))

	for target, orig := range from {
		entry := MatchedTask{Original: orig}

		switch proposer := result.ProposerOf[target]; {
		case proposer == match.Unmatched:
			entry.Kind = DeltaDeleted
		case orig.Equal(to[proposer]):
			entry.Kind = DeltaIdentical
			entry.To = to[proposer]
		case orig.Recurrence != nil && !orig.Completed:
			entry.Kind = DeltaRecurred
			entry.Chain = []todotxt.Task{to[proposer]}
		default:
			entry.Kind = DeltaChanged
			entry.To = to[proposer]
		}

		matched[target] = entry
	}

	var newTasks []todotxt.Task

	for proposer, target := range result.TargetOf {
		if target != match.Unmatched {
			continue
		}

		task := to[proposer]

		best := -1

		for i, entry := range matched {
			if entry.Kind != DeltaRecurred || !admissible(entry.Original, task, allowedDivergence) {
				continue
			}

			if best == -1 || closer(task, entry.Original, matched[best].Original) < 0 {
				best = i
			}
		}

		if best >= 0 {
			matched[best].Chain = append(matched[best].Chain, task)
		} else {
			newTasks = append(newTasks, task)
		}
	}

	for i := range matched {
		if matched[i].Kind != DeltaRecurred {
			continue
		}

		if len(matched[i].Chain) == 1 {
			matched[i].Kind = DeltaChanged
			matched[i].To = matched[i].Chain[0]
			matched[i].Chain = nil

			continue
		}

		slices.SortStableFunc(matched[i].Chain, func(a, b todotxt.Task) int {
			return a.DueDate.Compare(b.DueDate)
		})
	}

	return newTasks, matched
}

// EditLists classifies the entry into edit lists, one per resulting
// task: a single list for a plain change, one per chain element for a
// recurrence chain.
func (m MatchedTask) EditLists() [][]Edit {
	switch m.Kind {
	case DeltaChanged:
		return [][]Edit{Between(m.Original, m.To, true)}
	case DeltaRecurred:
		lists := make([][]Edit, len(m.Chain))

		prev := m.Original
		for i, task := range m.Chain {
			lists[i] = Between(prev, task, i == 0)
			prev = task
		}

		return lists
	default:
		return nil
	}
}

// ChainLink is one recurrence instance together with the edits that
// produce it from its predecessor in the chain.
type ChainLink struct {
	Task  todotxt.Task
	Edits []Edit
}

// ChangedTask is one before-snapshot task that did not survive
// unchanged. Edits is set for DeltaChanged, Chain for DeltaRecurred,
// and DeltaDeleted entries carry neither.
type ChangedTask struct {
	Original todotxt.Task
	Kind     DeltaKind
	Edits    []Edit
	Chain    []ChainLink
}

// EditLists returns the entry's edit lists: one for a plain change, one
// per chain element for a recurrence.
func (c ChangedTask) EditLists() [][]Edit {
	switch c.Kind {
	case DeltaChanged:
		return [][]Edit{c.Edits}
	case DeltaRecurred:
		lists := make([][]Edit, len(c.Chain))
		for i, link := range c.Chain {
			lists[i] = link.Edits
		}

		return lists
	default:
		return nil
	}
}

// HasRecurrence reports whether any edit is a recurrence step.
func (c ChangedTask) HasRecurrence() bool { return c.anyEdit(Edit.IsRecurrence) }

// HasCompletion reports whether any edit completes the task.
func (c ChangedTask) HasCompletion() bool { return c.anyEdit(Edit.IsCompletion) }

// HasPostponement reports whether any edit moves an existing due date.
func (c ChangedTask) HasPostponement() bool { return c.anyEdit(Edit.IsPostponement) }

func (c ChangedTask) anyEdit(pred func(Edit) bool) bool {
	for _, list := range c.EditLists() {
		if slices.ContainsFunc(list, pred) {
			return true
		}
	}

	return false
}

// Changeset is the public result of a two-snapshot comparison. Tasks
// that survived untouched are omitted from Changed.
type Changeset struct {
	New     []todotxt.Task
	Changed []ChangedTask
}

// Empty reports whether the comparison found nothing to report.
func (c Changeset) Empty() bool {
	return len(c.New) == 0 && len(c.Changed) == 0
}

// ComputeChangeset diffs two snapshots of a task list. allowedDivergence
// is the matching tolerance in percent: 0 matches only identical
// subjects, 100 matches anything.
func ComputeChangeset(from, to []todotxt.Task, allowedDivergence int) Changeset {
	newTasks, matched := MatchTasks(from, to, allowedDivergence)

	changeset := Changeset{New: newTasks}

	for _, entry := range matched {
		switch entry.Kind {
		case DeltaIdentical:
			continue
		case DeltaDeleted:
			changeset.Changed = append(changeset.Changed, ChangedTask{
				Original: entry.Original,
				Kind:     DeltaDeleted,
			})
		case DeltaChanged:
			changeset.Changed = append(changeset.Changed, ChangedTask{
				Original: entry.Original,
				Kind:     DeltaChanged,
				Edits:    Between(entry.Original, entry.To, true),
			})
		case DeltaRecurred:
			links := make([]ChainLink, len(entry.Chain))

			prev := entry.Original
			for i, task := range entry.Chain {
				links[i] = ChainLink{Task: task, Edits: Between(prev, task, i == 0)}
				prev = task
			}

			changeset.Changed = append(changeset.Changed, ChangedTask{
				Original: entry.Original,
				Kind:     DeltaRecurred,
				Chain:    links,
			})
		}
	}

	return changeset
}
