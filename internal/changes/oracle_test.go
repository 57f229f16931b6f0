package changes

import (
	"testing"

	"github.com/calvinalkan/tododiff/internal/todotxt"
)

func task(t *testing.T, line string) todotxt.Task {
	t.Helper()

	parsed, err := todotxt.ParseTask(line)
	if err != nil {
		t.Fatalf("ParseTask(%q) failed: %v", line, err)
	}

	return parsed
}

func tasks(t *testing.T, lines ...string) []todotxt.Task {
	t.Helper()

	parsed := make([]todotxt.Task, len(lines))
	for i, line := range lines {
		parsed[i] = task(t, line)
	}

	return parsed
}

func TestAdmissible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate  string
		reference  string
		divergence int
		want       bool
	}{
		{"do a thing", "do a thing", 0, true},
		{"x do a thing", "do a thing", 0, true},
		{"do an thing", "do a thing", 0, false},
		{"do an thing", "do a thing", 30, true},
		{"what is this ?", "do a thing", 30, false},
		{"what is this ?", "do a thing", 100, true},
		// Rune length, not byte length, scales the tolerance.
		{"héllo wörld", "héllo wörld", 0, true},
	}

	for _, testCase := range tests {
		got := admissible(task(t, testCase.candidate), task(t, testCase.reference), testCase.divergence)
		if got != testCase.want {
			t.Errorf("admissible(%q, %q, %d) = %v, want %v",
				testCase.candidate, testCase.reference, testCase.divergence, got, testCase.want)
		}
	}
}

func TestAdmissibleMonotonicInDivergence(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"do an thing", "do a thing"},
		{"what is this ?", "do a thing"},
		{"x do a thing", "do a thing"},
		{"héllo wörld!", "héllo wörld"},
		{"completely different", "do a thing"},
	}

	for _, pair := range pairs {
		candidate, reference := task(t, pair[0]), task(t, pair[1])

		admitted := false

		for divergence := 0; divergence <= 100; divergence++ {
			got := admissible(candidate, reference, divergence)
			if admitted && !got {
				t.Errorf("admissible(%q, %q, %d) = false after true at a lower divergence",
					pair[0], pair[1], divergence)
			}

			admitted = admitted || got
		}
	}
}

func TestCloser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reference string
		left      string
		right     string
	}{
		{"do a thing", "do a thing", "do an thing"},
		{"do a thing", "do an thing", "do a thingie"},
		{"do a thing", "x do a thing", "do any thing"},
	}

	for _, testCase := range tests {
		got := closer(task(t, testCase.reference), task(t, testCase.left), task(t, testCase.right))
		if got >= 0 {
			t.Errorf("closer(%q, %q, %q) = %d, want negative",
				testCase.reference, testCase.left, testCase.right, got)
		}
	}

	if got := closer(task(t, "do a thing"), task(t, "do an thing"), task(t, "do aX thing")); got != 0 {
		t.Errorf("equidistant subjects must tie, got %d", got)
	}
}
