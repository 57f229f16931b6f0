// Package match implements an extended stable marriage matching between
// two indexed sets, proposers and targets. The extension over the
// classic algorithm: preference lists may be partial (a proposer only
// ranks admissible targets), perfect pairs are bound up front and locked,
// and unmatched members on both sides are legal outcomes.
package match

import "sort"

// Unmatched marks a slot with no partner in a Result.
const Unmatched = -1

// Oracle ranks proposers and targets for Match. All methods take indices
// into the caller's proposer and target sets.
type Oracle interface {
	// Admissible reports whether the proposer may be matched with the
	// target at all.
	Admissible(proposer, target int) bool

	// Perfect reports whether the pair is an exact match. Perfect pairs
	// are bound before the proposal rounds and never broken.
	Perfect(proposer, target int) bool

	// CompareForProposer orders two targets from the proposer's point of
	// view: negative if left is preferred, positive if right is, zero if
	// the proposer has no preference.
	CompareForProposer(proposer, left, right int) int

	// CompareForTarget orders two proposers from the target's point of
	// view, with the same sign convention.
	CompareForTarget(target, left, right int) int
}

// Result holds a stable matching. TargetOf[p] is the target matched to
// proposer p and ProposerOf[t] the proposer matched to target t, with
// Unmatched for slots left alone.
type Result struct {
	TargetOf   []int
	ProposerOf []int
}

// Match computes a stable matching between numProposers proposers and
// numTargets targets.
//
// The run is deterministic: preference lists are built in target order
// with a stable sort, perfect pairs bind the lowest-index combination
// first, and a target keeps its current partner unless a strictly
// preferred proposer shows up. Stability holds in the usual sense: no
// admissible proposer/target pair both strictly prefer each other over
// their assigned partners.
func Match(numProposers, numTargets int, oracle Oracle) Result {
	result := Result{
		TargetOf:   filled(numProposers, Unmatched),
		ProposerOf: filled(numTargets, Unmatched),
	}

	prefs := make([][]int, numProposers)
	for p := range numProposers {
		for t := range numTargets {
			if oracle.Admissible(p, t) {
				prefs[p] = append(prefs[p], t)
			}
		}

		sort.SliceStable(prefs[p], func(i, j int) bool {
			return oracle.CompareForProposer(p, prefs[p][i], prefs[p][j]) < 0
		})
	}

	// Perfect pairs are settled first and locked: no later proposal may
	// displace either side.
	locked := make([]bool, numTargets)

	for p := range numProposers {
		for _, t := range prefs[p] {
			if locked[t] || !oracle.Perfect(p, t) {
				continue
			}

			result.TargetOf[p] = t
			result.ProposerOf[t] = p
			locked[t] = true
			prefs[p] = nil

			break
		}
	}

	for {
		proposer := nextFree(result.TargetOf, prefs)
		if proposer == Unmatched {
			return result
		}

		target := prefs[proposer][0]
		prefs[proposer] = prefs[proposer][1:]

		if locked[target] {
			continue
		}

		current := result.ProposerOf[target]
		switch {
		case current == Unmatched:
			result.TargetOf[proposer] = target
			result.ProposerOf[target] = proposer
		case oracle.CompareForTarget(target, proposer, current) < 0:
			// The target trades up; its former partner re-enters the
			// pool with the rest of its list intact.
			result.TargetOf[current] = Unmatched
			result.TargetOf[proposer] = target
			result.ProposerOf[target] = proposer
		}
	}
}

// nextFree returns the lowest-index proposer that is unmatched and still
// has targets left to propose to.
func nextFree(targetOf []int, prefs [][]int) int {
	for p, t := range targetOf {
		if t == Unmatched && len(prefs[p]) > 0 {
			return p
		}
	}

	return Unmatched
}

func filled(n, value int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = value
	}

	return out
}
