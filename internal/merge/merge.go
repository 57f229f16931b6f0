// Package merge implements a three-way semantic merge of todo.txt task
// lists: two descendant snapshots are each diffed against their common
// ancestor, and the per-task deltas are combined. A task changed on one
// side only merges cleanly; a task changed on both sides is a conflict.
package merge

import (
	"slices"
	"strings"

	"github.com/calvinalkan/tododiff/internal/changes"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

// ResultKind says whether one merge entry resolved cleanly.
type ResultKind int

// Merge entry kinds.
const (
	Merged ResultKind = iota
	Conflict
)

// Result is one entry of the merged task list. Merged entries carry the
// surviving task; Conflict entries carry the ancestor plus, per side,
// the resulting tasks and the edit lists that produced them.
type Result struct {
	Kind ResultKind

	Task todotxt.Task

	Ancestor   todotxt.Task
	Left       []todotxt.Task
	Right      []todotxt.Task
	LeftEdits  [][]changes.Edit
	RightEdits [][]changes.Edit
}

// ThreeWay merges left and right against their common ancestor. Both
// sides are matched against the identical ancestor list, so the two
// delta streams line up index by index.
func ThreeWay(from, left, right []todotxt.Task, allowedDivergence int) []Result {
	newLeft, matchedLeft := changes.MatchTasks(from, left, allowedDivergence)
	newRight, matchedRight := changes.MatchTasks(from, right, allowedDivergence)

	var results []Result

	for i := range matchedLeft {
		leftEntry, rightEntry := matchedLeft[i], matchedRight[i]

		switch {
		case leftEntry.Kind == changes.DeltaIdentical && rightEntry.Kind == changes.DeltaIdentical:
			results = append(results, Result{Kind: Merged, Task: leftEntry.Original})
		case leftEntry.Kind == changes.DeltaIdentical:
			for _, task := range rightEntry.Resulting() {
				results = append(results, Result{Kind: Merged, Task: task})
			}
		case rightEntry.Kind == changes.DeltaIdentical:
			for _, task := range leftEntry.Resulting() {
				results = append(results, Result{Kind: Merged, Task: task})
			}
		default:
			results = append(results, Result{
				Kind:       Conflict,
				Ancestor:   leftEntry.Original,
				Left:       leftEntry.Resulting(),
				Right:      rightEntry.Resulting(),
				LeftEdits:  leftEntry.EditLists(),
				RightEdits: rightEntry.EditLists(),
			})
		}
	}

	for _, task := range dedupNew(newLeft, newRight) {
		results = append(results, Result{Kind: Merged, Task: task})
	}

	return results
}

// dedupNew combines the new tasks of both sides: tasks appearing on
// both collapse to one copy, then the left-only and right-only
// remainders follow. Duplicates collapse one-for-one.
func dedupNew(left, right []todotxt.Task) []todotxt.Task {
	rightRest := slices.Clone(right)

	var common, leftOnly []todotxt.Task

	for _, task := range left {
		if i := slices.IndexFunc(rightRest, task.Equal); i >= 0 {
			rightRest = slices.Delete(rightRest, i, i+1)
			common = append(common, task)

			continue
		}

		leftOnly = append(leftOnly, task)
	}

	merged := append(common, leftOnly...)

	return append(merged, rightRest...)
}

// Successful reports whether the merge resolved without conflicts.
func Successful(results []Result) bool {
	for _, result := range results {
		if result.Kind == Conflict {
			return false
		}
	}

	return true
}

// Extract returns the merged task list, or ok=false if any conflict
// remains.
func Extract(results []Result) ([]todotxt.Task, bool) {
	var tasks []todotxt.Task

	for _, result := range results {
		if result.Kind == Conflict {
			return nil, false
		}

		tasks = append(tasks, result.Task)
	}

	return tasks, true
}

// Encode serializes the merge into task-list text. Conflicts use
// five-marker blocks: left-side lines between "<<<<<" and "|||||", the
// ancestor line, then right-side lines between "=====" and ">>>>>".
func Encode(results []Result) string {
	var lines []string

	for _, result := range results {
		if result.Kind == Merged {
			lines = append(lines, result.Task.String())
			continue
		}

		lines = append(lines, "<<<<<")
		for _, task := range result.Left {
			lines = append(lines, task.String())
		}

		lines = append(lines, "|||||", result.Ancestor.String(), "=====")
		for _, task := range result.Right {
			lines = append(lines, task.String())
		}

		lines = append(lines, ">>>>>")
	}

	return strings.Join(lines, "\n")
}
