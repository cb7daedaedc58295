// Package waterfall implements the fixed-priority scheduler loop of
// spec.md §4.7: a cleanup fixed point run to exhaustion, a single
// reasoning-layer move attempted per pass (modus ponens then modus
// tollens, filtered by constant-set subset and already_applied
// bookkeeping), and closure detection after every successful move.
// Ported from the pseudocode in spec.md §4.7; the (impl, target) pair
// bookkeeping lives on the implication line's AppliedUnits map rather
// than a separate scheduler-owned set, since spec.md §5 requires moves
// to commit atomically and AppliedUnits already travels with the line
// it describes.
package waterfall

import (
	"time"

	"github.com/proofdroid/prover/pkg/closure"
	"github.com/proofdroid/prover/pkg/diag"
	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/hydra"
	"github.com/proofdroid/prover/pkg/moves"
	"github.com/proofdroid/prover/pkg/tableau"
)

// Budget bounds a single Run call. A zero field means unbounded along
// that dimension, matching spec.md §5's "configurable move-count or
// wall-clock budget checked at the top of each waterfall iteration".
type Budget struct {
	MaxPasses int
	MaxWall   time.Duration
}

// Result is the terminal state a Run reaches.
type Result int

const (
	Proved Result = iota
	Stuck
	BudgetExceeded
)

func (r Result) String() string {
	switch r {
	case Proved:
		return "proved"
	case Stuck:
		return "stuck"
	case BudgetExceeded:
		return "budget-exceeded"
	default:
		return "unknown"
	}
}

// Scheduler owns the loop; it never holds state the tableau, hydra
// tree, or moves engine do not already own, matching spec.md §5's
// "single logical prover instance" rule.
type Scheduler struct {
	Tab    *tableau.Tableau
	Hydra  *hydra.Tree
	Moves  *moves.Engine
	Log    *diag.Logger
	Budget Budget

	waterMark int
}

// New returns a Scheduler. A nil Logger is replaced with a no-op sink.
func New(tab *tableau.Tableau, tree *hydra.Tree, eng *moves.Engine, log *diag.Logger, budget Budget) *Scheduler {
	if log == nil {
		log = diag.Noop()
	}
	return &Scheduler{Tab: tab, Hydra: tree, Moves: eng, Log: log, Budget: budget}
}

// Run drives the loop to a terminal Result.
func (s *Scheduler) Run() Result {
	start := time.Now()
	pass := 0
	for {
		if s.Budget.MaxPasses > 0 && pass >= s.Budget.MaxPasses {
			s.Log.BudgetExceeded("move-count")
			return BudgetExceeded
		}
		if s.Budget.MaxWall > 0 && time.Since(start) > s.Budget.MaxWall {
			s.Log.BudgetExceeded("wall-clock")
			return BudgetExceeded
		}

		s.cleanup()
		if closure.Check(s.Tab, s.Hydra) {
			s.Log.Proved(pass)
			return Proved
		}

		if !s.reasoningPass() {
			s.Log.Stuck(pass)
			return Stuck
		}
		pass++
	}
}

// Cleanup runs one cleanup fixed point directly, without a reasoning
// move. Exposed for callers that append lines outside Run (the library
// loader's "each becomes a tableau line followed by cleanup_moves",
// spec.md §6) and need the tableau normalized before or between Run
// calls.
func (s *Scheduler) Cleanup() {
	s.cleanup()
}

// cleanup runs the fixed-priority cleanup ordering (Skolemize, ME, CP,
// SC, NI, SDI, SCI, DI, CI) to a fixed point over lines from the
// scheduler's water mark onward, then reruns duplicate-line elimination
// and left-to-right orientation analysis, per spec.md §4.7.
func (s *Scheduler) cleanup() {
	for {
		changed := false
		for i := s.waterMark; i < s.Tab.Len(); i++ {
			line := s.Tab.Get(i)
			if line == nil || !line.Active || line.Dead {
				continue
			}
			if s.cleanupOne(i) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	s.waterMark = s.Tab.Len()
	s.eliminateDuplicates()
	s.orientEqualities()
}

// CleanupDefinition runs only Skolemize and Material Equivalence to a
// fixed point over line i, the reduced cleanup pass spec.md §6 reserves
// for definition records loaded by the library loader (as opposed to
// the full cleanup ordering theorem records get).
func (s *Scheduler) CleanupDefinition(i int) {
	for {
		line := s.Tab.Get(i)
		if line == nil || !line.Active || line.Dead {
			return
		}
		if s.Moves.Skolemize(i) {
			s.Log.AppliedMove("Skolemize", []int{i}, nil)
			continue
		}
		if s.Moves.MaterialEquivalence(i) {
			s.Log.AppliedMove("ME", []int{i}, nil)
			continue
		}
		return
	}
}

func (s *Scheduler) cleanupOne(i int) bool {
	type step struct {
		name string
		run  func(int) bool
	}
	steps := []step{
		{"Skolemize", s.Moves.Skolemize},
		{"ME", s.Moves.MaterialEquivalence},
		{"CP", s.Moves.ConditionalPremise},
		{"SC", s.Moves.SplitConjunction},
		{"NI", s.Moves.NegatedImplication},
		{"SDI", s.Moves.SplitDisjunctiveImplication},
		{"SCI", s.Moves.SplitConjunctiveImplication},
		{"DI", s.Moves.DisjunctiveIdempotence},
		{"CI", s.Moves.ConjunctiveIdempotence},
	}
	for _, st := range steps {
		if st.run(i) {
			s.Log.AppliedMove(st.name, []int{i}, nil)
			return true
		}
	}
	return false
}

// reasoningPass tries every (target, impl) pair at the current hydra
// leaf once, in order, attempting ponens then tollens. It commits to
// the first pair that fires, runs cleanup, and reports whether any
// move was made.
func (s *Scheduler) reasoningPass() bool {
	leaf := s.Hydra.Get(s.Hydra.CurrentLeaf())
	impls := s.gatherImplications()

	for _, target := range leaf.Targets {
		targetLine := s.Tab.Get(target)
		if targetLine == nil || !targetLine.Active || targetLine.Dead {
			continue
		}
		for _, impl := range impls {
			implLine := s.Tab.Get(impl)
			if implLine == nil || !implLine.Active || implLine.Dead {
				continue
			}
			if implLine.AppliedUnits[[2]int{impl, target}] {
				continue
			}
			if !formula.ConstantsSubset(targetLine.Constants, implLine.Constants) {
				continue
			}

			if s.Moves.ModusPonensTollens(impl, []int{target}, true, nil) {
				implLine.AppliedUnits[[2]int{impl, target}] = true
				s.Log.AppliedMove("MP", []int{impl, target}, nil)
				s.cleanup()
				return true
			}
			if s.Moves.ModusPonensTollens(impl, []int{target}, false, nil) {
				implLine.AppliedUnits[[2]int{impl, target}] = true
				s.Log.AppliedMove("MT", []int{impl, target}, nil)
				s.cleanup()
				return true
			}
			implLine.AppliedUnits[[2]int{impl, target}] = true
			s.Log.RejectedMove("MPT", []int{impl, target}, "neither ponens nor tollens unified")
		}
	}
	return false
}

// gatherImplications returns the live hypothesis lines whose peeled
// matrix is an implication, the candidate pool for the reasoning layer.
func (s *Scheduler) gatherImplications() []int {
	var out []int
	for i := 0; i < s.Tab.Len(); i++ {
		line := s.Tab.Get(i)
		if line == nil || line.Target || !line.Active || line.Dead {
			continue
		}
		matrix := formula.UnwrapSpecial(line.Formula)
		if matrix.IsImplication() {
			out = append(out, i)
		}
	}
	return out
}

// eliminateDuplicates kills later lines whose formula is structurally
// equal to an earlier live line's, under compatible assumptions and
// restrictions, keeping the tableau from growing with redundant copies
// every time a move re-derives something already present.
func (s *Scheduler) eliminateDuplicates() {
	live := s.Tab.LiveLines()
	for i := 0; i < len(live); i++ {
		a := s.Tab.Get(live[i])
		if a == nil || a.Dead {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			b := s.Tab.Get(live[j])
			if b == nil || b.Dead || b.Target != a.Target {
				continue
			}
			if !formula.Equal(a.Formula, b.Formula) {
				continue
			}
			if !tableau.AssumptionsCompatible(a.Assumptions, b.Assumptions) {
				continue
			}
			if !tableau.RestrictionsCompatible(a.Restrictions, b.Restrictions) {
				continue
			}
			b.Dead = true
			b.Active = false
		}
	}
}

// orientEqualities canonicalizes every live equality hypothesis p = q so
// the structurally deeper term is on the left, guaranteeing
// EqualityRewrite always substitutes a deeper subterm for a shallower
// one and so cannot loop rewriting p to q and back to p.
func (s *Scheduler) orientEqualities() {
	for i := 0; i < s.Tab.Len(); i++ {
		line := s.Tab.Get(i)
		if line == nil || line.Target || !line.Active || line.Dead {
			continue
		}
		matrix, specials := formula.SplitSpecial(line.Formula)
		if matrix.Type != formula.Application || len(matrix.Children) != 3 || matrix.Children[0].Symbol != formula.SymbolEquals {
			continue
		}
		lhs, rhs := matrix.Children[1], matrix.Children[2]
		if formula.MaxTermDepth(lhs) >= formula.MaxTermDepth(rhs) {
			continue
		}
		swapped := formula.NewEquals(formula.DeepCopy(rhs), formula.DeepCopy(lhs))
		line.Formula = formula.ReapplySpecial(specials, swapped)
	}
}
