// Package closure implements check_done: after a move appends lines,
// closure detection tries to unify each live target's goal (its
// Formula) against every live hypothesis's formula, and folds a success
// into the owning hydra node's proved set. Ported from the check_done pattern
// described in spec.md §4.6.
package closure

import (
	"github.com/proofdroid/prover/pkg/hydra"
	"github.com/proofdroid/prover/pkg/subst"
	"github.com/proofdroid/prover/pkg/tableau"
	"github.com/proofdroid/prover/pkg/unify"
)

// Check runs one closure pass: for every live, non-dead target line,
// try every live, non-dead hypothesis as a unification partner for the
// target's Formula (the goal itself). Hypotheses are not checked
// against each other. A successful unification is recorded on the
// target line via Unifications for diagnostics.
//
// After recording unifications, Check asks whether the current hydra
// leaf's targets are now all discharged under some single consistent
// assumption set; if so it absorbs that set into the leaf via
// AddAssumption. Returns true once the whole tree (Tree.Proved) has
// collapsed to an unconditional proof.
func Check(tab *tableau.Tableau, tree *hydra.Tree) bool {
	recordUnifications(tab)

	leaf := tree.Get(tree.CurrentLeaf())
	if assumption, ok := dischargingAssumption(tab, leaf.Targets); ok {
		leaf.AddAssumption(assumption)
	}

	return tree.Proved()
}

func recordUnifications(tab *tableau.Tableau) {
	for i := range tab.Lines {
		line := tab.Get(i)
		if !line.Active || line.Dead {
			continue
		}
		if !line.Target {
			continue // only targets are discharged by closure
		}
		// A target's Formula is the goal itself (Negation caches its
		// negation for modus tollens); discharge looks for a
		// hypothesis asserting that same goal directly.
		goal := line.Formula
		for j := range tab.Lines {
			if j == i {
				continue
			}
			hyp := tab.Get(j)
			if hyp.Target || !hyp.Active || hyp.Dead {
				continue
			}
			if !tableau.AssumptionsCompatible(line.Assumptions, hyp.Assumptions) {
				continue
			}
			if !tableau.RestrictionsCompatible(line.Restrictions, hyp.Restrictions) {
				continue
			}
			if s, ok := unify.Unify(goal, hyp.Formula, subst.New()); ok {
				line.Unifications = append(line.Unifications, tableau.Unification{PriorLine: j, Subst: s})
			}
		}
	}
}

// dischargingAssumption looks for a single assumption set under which
// every target index in targets has at least one recorded
// unification, returning the combined (sorted, deduplicated) set.
func dischargingAssumption(tab *tableau.Tableau, targets []int) ([]int, bool) {
	if len(targets) == 0 {
		return nil, false
	}
	for _, idx := range targets {
		line := tab.Get(idx)
		if line == nil || len(line.Unifications) == 0 {
			return nil, false
		}
	}
	return searchAssumption(tab, targets, 0, nil)
}

// searchAssumption tries every recorded unification for targets[i],
// backtracking over the combined assumption set built so far. Picking
// the unification with the fewest assumptions independently per
// target can commit to a choice that is pairwise incompatible with
// every choice for a later target, even though some non-minimal pick
// for the earlier target would have been jointly consistent; trying
// every candidate (and backing out of a dead end) finds that
// combination when it exists instead of reporting the branch stuck.
func searchAssumption(tab *tableau.Tableau, targets []int, i int, combined []int) ([]int, bool) {
	if i == len(targets) {
		return combined, true
	}
	line := tab.Get(targets[i])
	for _, u := range line.Unifications {
		hyp := tab.Get(u.PriorLine)
		if !tableau.AssumptionsCompatible(combined, hyp.Assumptions) {
			continue
		}
		next := tableau.CombineAssumptions(combined, hyp.Assumptions)
		if result, ok := searchAssumption(tab, targets, i+1, next); ok {
			return result, true
		}
	}
	return nil, false
}
