package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/tododiff/internal/changes"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

func tasks(t *testing.T, lines ...string) []todotxt.Task {
	t.Helper()

	parsed := make([]todotxt.Task, len(lines))

	for i, line := range lines {
		task, err := todotxt.ParseTask(line)
		if err != nil {
			t.Fatalf("ParseTask(%q) failed: %v", line, err)
		}

		parsed[i] = task
	}

	return parsed
}

func renderDiff(t *testing.T, from, to []todotxt.Task, divergence int) string {
	t.Helper()

	return Changeset(changes.ComputeChangeset(from, to, divergence), false)
}

func TestChangesetNoChanges(t *testing.T) {
	t.Parallel()

	snapshot := tasks(t, "do a thing")

	if got := renderDiff(t, snapshot, snapshot, 50); got != "No changes.\n" {
		t.Errorf("report = %q", got)
	}
}

func TestChangesetAllSections(t *testing.T) {
	t.Parallel()

	from := tasks(t,
		"do a thing",
		"delete me",
		"(A) 2020-04-01 pay rent due:2020-05-01",
		"water plants",
	)
	to := tasks(t,
		"do a thing",
		"x 2020-04-08 water plants",
		"(A) 2020-04-01 pay rent due:2020-05-08",
		"new task here",
		"x 2020-04-09 done thing",
	)

	want := "New tasks\n" +
		"---------\n" +
		"\n" +
		" → new task here\n" +
		"\n" +
		"Deleted tasks\n" +
		"-------------\n" +
		"\n" +
		" → delete me\n" +
		"\n" +
		"Completed tasks\n" +
		"---------------\n" +
		"\n" +
		" → water plants\n" +
		"    → Completed on 2020-04-08\n" +
		"\n" +
		" → done thing\n" +
		"    → Created and completed on 2020-04-09\n" +
		"\n" +
		"Changed tasks\n" +
		"-------------\n" +
		"\n" +
		" → (A) 2020-04-01 pay rent due:2020-05-01\n" +
		"    → Postponed (strict) by 7 days\n"

	got := renderDiff(t, from, to, 20)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestChangesetNewTasksSortedByCreationDate(t *testing.T) {
	t.Parallel()

	got := renderDiff(t,
		nil,
		tasks(t, "2020-04-09 beta", "2020-04-07 alpha", "gamma"),
		0)

	want := "New tasks\n" +
		"---------\n" +
		"\n" +
		" → gamma\n" +
		" → 2020-04-07 alpha\n" +
		" → 2020-04-09 beta\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestChangesetCompletedNewTasksSortedByCreationDate(t *testing.T) {
	t.Parallel()

	got := renderDiff(t,
		nil,
		tasks(t, "x 2020-02-02 2020-01-05 beta", "x 2020-02-01 2020-01-01 alpha"),
		0)

	want := "Completed tasks\n" +
		"---------------\n" +
		"\n" +
		" → 2020-01-01 alpha\n" +
		"    → Created and completed on 2020-02-01\n" +
		"\n" +
		" → 2020-01-05 beta\n" +
		"    → Created and completed on 2020-02-02\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestChangesetRecurrenceChain(t *testing.T) {
	t.Parallel()

	got := renderDiff(t,
		tasks(t, "2018-04-08 foo due:2018-04-08 rec:1d"),
		tasks(t,
			"x 2018-04-08 2018-04-08 foo due:2018-04-08 rec:1d",
			"x 2018-04-08 2018-04-08 foo due:2018-04-09 rec:1d",
			"2018-04-08 foo due:2018-04-10 rec:1d",
		),
		50)

	want := "Completed tasks\n" +
		"---------------\n" +
		"\n" +
		" → 2018-04-08 foo due:2018-04-08 rec:1d\n" +
		"    → Completed on 2018-04-08\n" +
		"    → Recurred (from 2018-04-08)\n" +
		"    → Copied, postponed (strict) by 1 days, uncompleted and removed completion date\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestChangesetTagPhrasing(t *testing.T) {
	t.Parallel()

	got := renderDiff(t,
		tasks(t, "foo a:1 b:2 c:3"),
		tasks(t, "foo d:4"),
		0)

	want := "Changed tasks\n" +
		"-------------\n" +
		"\n" +
		" → foo a:1 b:2 c:3\n" +
		"    → Removed tags a:1, b:2 and c:3 and added tag d:4\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestChangesetSubjectWithoutColor(t *testing.T) {
	t.Parallel()

	got := renderDiff(t,
		tasks(t, "do a thing"),
		tasks(t, "do an thing"),
		40)

	want := "Changed tasks\n" +
		"-------------\n" +
		"\n" +
		" → do a thing\n" +
		"    → Set subject to ‘do an thing’\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}
