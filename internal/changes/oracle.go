package changes

import (
	"github.com/agnivade/levenshtein"

	"github.com/calvinalkan/tododiff/internal/todotxt"
)

// admissible reports whether candidate is similar enough to reference to
// be considered the same underlying task. The test is scale-invariant:
// the Levenshtein distance between the subjects may be at most
// allowedDivergence percent of the reference subject's rune length.
func admissible(candidate, reference todotxt.Task, allowedDivergence int) bool {
	refLen := len([]rune(reference.Subject))

	// The distance is bounded below by the length difference, which is
	// much cheaper to check.
	gap := len([]rune(candidate.Subject)) - refLen
	if gap < 0 {
		gap = -gap
	}

	if 100*gap > allowedDivergence*refLen {
		return false
	}

	distance := levenshtein.ComputeDistance(candidate.Subject, reference.Subject)

	return 100*distance <= allowedDivergence*refLen
}

// closer orders left and right by subject distance to reference:
// negative if left is closer, positive if right is, zero on a tie.
func closer(reference, left, right todotxt.Task) int {
	return levenshtein.ComputeDistance(left.Subject, reference.Subject) -
		levenshtein.ComputeDistance(right.Subject, reference.Subject)
}

// taskOracle adapts the similarity measure to the matching engine.
// Proposers are the after-snapshot tasks, targets the before-snapshot
// ones.
type taskOracle struct {
	from              []todotxt.Task
	to                []todotxt.Task
	allowedDivergence int
}

func (o taskOracle) Admissible(proposer, target int) bool {
	return admissible(o.to[proposer], o.from[target], o.allowedDivergence)
}

func (o taskOracle) Perfect(proposer, target int) bool {
	return o.to[proposer].Equal(o.from[target])
}

func (o taskOracle) CompareForProposer(proposer, left, right int) int {
	return closer(o.to[proposer], o.from[left], o.from[right])
}

func (o taskOracle) CompareForTarget(target, left, right int) int {
	return closer(o.from[target], o.to[left], o.to[right])
}
